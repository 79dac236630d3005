package analyzing

import (
	"math"
	"sort"
	"time"

	"github.com/vfg2006/pos-analytics-api/internal/domain"
	"github.com/vfg2006/pos-analytics-api/pkg/utils"
)

// Número de produtos exibidos individualmente antes do agrupamento em "Others"
const topProductEntries = 5

// Rótulo da entrada que agrupa a receita dos produtos fora do top 5
const othersLabel = "Others"

// Nomes dos meses exibidos na série mensal de receita
var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// orderedAccumulator acumula valores por chave preservando a ordem de inserção
// das chaves, para as séries do dashboard não dependerem da ordem de iteração
// de mapas
type orderedAccumulator struct {
	keys   []string
	totals map[string]float64
}

func newOrderedAccumulator() *orderedAccumulator {
	return &orderedAccumulator{totals: make(map[string]float64)}
}

func (a *orderedAccumulator) Add(key string, value float64) {
	if _, ok := a.totals[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.totals[key] += value
}

func (a *orderedAccumulator) GrandTotal() float64 {
	total := 0.0
	for _, v := range a.totals {
		total += v
	}
	return total
}

// CategoryRevenueDistribution agrega a receita das vendas filtradas por
// categoria de produto. Itens cujo produto não existe mais no catálogo são
// ignorados silenciosamente; com total zero os percentuais ficam em 0%.
func (s *Service) CategoryRevenueDistribution(
	sales []*domain.Sale,
	products []*domain.Product,
) []*domain.CategoryRevenue {
	catalog := indexProducts(products)

	acc := newOrderedAccumulator()
	for _, sale := range sales {
		if sale == nil {
			continue
		}
		for _, item := range sale.SaleItems {
			product, ok := catalog[item.ProductID]
			if !ok {
				// Produto removido do catálogo após a venda
				continue
			}
			acc.Add(product.Category, item.PriceAtSale*float64(item.Quantity))
		}
	}

	grandTotal := acc.GrandTotal()

	distribution := make([]*domain.CategoryRevenue, 0, len(acc.keys))
	for _, category := range acc.keys {
		revenue := acc.totals[category]
		distribution = append(distribution, &domain.CategoryRevenue{
			Category:   category,
			Revenue:    utils.RoundWithTwoDecimalPlace(revenue),
			Percentage: percentageOf(revenue, grandTotal),
		})
	}

	return distribution
}

// ProductRevenueContribution agrega a receita por nome de produto e devolve os
// 5 maiores em ordem decrescente, com o restante agrupado em uma única entrada
// "Others". Os valores absolutos são truncados para baixo.
func (s *Service) ProductRevenueContribution(
	sales []*domain.Sale,
	products []*domain.Product,
) []*domain.ProductRevenue {
	catalog := indexProducts(products)

	acc := newOrderedAccumulator()
	for _, sale := range sales {
		if sale == nil {
			continue
		}
		for _, item := range sale.SaleItems {
			product, ok := catalog[item.ProductID]
			if !ok {
				continue
			}
			acc.Add(product.Name, item.PriceAtSale*float64(item.Quantity))
		}
	}

	grandTotal := acc.GrandTotal()

	names := make([]string, len(acc.keys))
	copy(names, acc.keys)
	sort.SliceStable(names, func(i, j int) bool {
		return acc.totals[names[i]] > acc.totals[names[j]]
	})

	contribution := make([]*domain.ProductRevenue, 0, topProductEntries+1)
	othersRevenue := 0.0

	for i, name := range names {
		revenue := acc.totals[name]
		if i < topProductEntries {
			contribution = append(contribution, &domain.ProductRevenue{
				ProductName: name,
				Revenue:     math.Floor(revenue),
				Percentage:  percentageOf(revenue, grandTotal),
			})
			continue
		}
		othersRevenue += revenue
	}

	if len(names) > topProductEntries {
		contribution = append(contribution, &domain.ProductRevenue{
			ProductName: othersLabel,
			Revenue:     math.Floor(othersRevenue),
			Percentage:  percentageOf(othersRevenue, grandTotal),
		})
	}

	return contribution
}

// MonthlyRevenueSeries agrega o total das vendas por mês do calendário. A
// ordem da série segue a primeira ocorrência de cada mês nas vendas filtradas,
// sem ordenação posterior.
func (s *Service) MonthlyRevenueSeries(sales []*domain.Sale) []*domain.MonthlyRevenuePoint {
	acc := newOrderedAccumulator()
	for _, sale := range sales {
		if sale == nil {
			continue
		}
		acc.Add(monthLabel(sale.CreatedAt), sale.Total)
	}

	series := make([]*domain.MonthlyRevenuePoint, 0, len(acc.keys))
	for _, month := range acc.keys {
		series = append(series, &domain.MonthlyRevenuePoint{
			Month:   month,
			Revenue: utils.RoundWithTwoDecimalPlace(acc.totals[month]),
		})
	}

	return series
}

// monthLabel devolve o nome do mês do instante, ex: "Janeiro"
func monthLabel(t time.Time) string {
	return monthNames[t.Month()-1]
}

// percentageOf calcula o percentual de uma parte sobre o total, com total zero
// travado em 0% para nunca propagar NaN
func percentageOf(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(part / total * 100)
}

// indexProducts monta o índice do catálogo por ID para resolver os itens de venda
func indexProducts(products []*domain.Product) map[string]*domain.Product {
	catalog := make(map[string]*domain.Product, len(products))
	for _, product := range products {
		if product == nil {
			continue
		}
		catalog[product.ID] = product
	}
	return catalog
}

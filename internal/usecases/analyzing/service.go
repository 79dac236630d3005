// Package analyzing contém o motor de análise de consumo do dashboard: estima
// taxas de consumo por produto, classifica tendências e sugere quantidades de
// reposição, além de calcular as séries agregadas de receita.
package analyzing

import (
	"math"
	"sort"
	"time"

	"github.com/vfg2006/pos-analytics-api/internal/domain"
)

const (
	// Divisores fixos das janelas de consumo. A taxa diária sempre divide por
	// 30 e a semanal por 7, mesmo quando a janela tem menos dias decorridos,
	// o que também elimina qualquer divisão por zero.
	monthWindowDays = 30.0
	weekWindowDays  = 7.0

	// Margem de segurança aplicada sobre o consumo mensal na sugestão de reposição
	safetyMargin = 1.2

	// Limiares de classificação de tendência. As comparações são estritas:
	// recent == older*1.1 ainda é estável.
	risingThreshold  = 1.1
	fallingThreshold = 0.9
)

// Service implementa a interface ConsumptionAnalyzer. A análise é uma função
// pura das entradas: sem estado compartilhado, sem I/O e sem bloqueio.
type Service struct{}

// NewService cria uma nova instância do motor de análise
func NewService() ConsumptionAnalyzer {
	return &Service{}
}

// consumptionWindow acumula as quantidades vendidas de um produto nas janelas
// de análise: o último mês calendário, os últimos 7 dias e a faixa entre eles
type consumptionWindow struct {
	monthQuantity int // itens com timestamp >= um mês atrás
	weekQuantity  int // itens com timestamp >= 7 dias atrás
	olderQuantity int // itens do mês anteriores à janela semanal
}

// AnalyzeConsumption estima o consumo de cada produto do catálogo.
//
// A análise sempre olha para trás a partir de "now", independente do período
// de exibição selecionado no dashboard, para que as sugestões de reposição
// não mudem conforme o gráfico que o usuário está vendo. Por isso recebe o
// histórico COMPLETO de vendas, não o subconjunto filtrado.
func (s *Service) AnalyzeConsumption(
	products []*domain.Product,
	history []*domain.Sale,
	now time.Time,
) []*domain.ConsumptionAnalysis {
	// Um mês calendário atrás (aritmética de mês/dia, não 30 dias corridos)
	oneMonthAgo := now.AddDate(0, -1, 0)
	oneWeekAgo := now.Add(-weekWindowDays * 24 * time.Hour)

	windows := make(map[string]*consumptionWindow)
	for _, sale := range history {
		if sale == nil {
			continue
		}

		inMonth := !sale.CreatedAt.Before(oneMonthAgo)
		inWeek := !sale.CreatedAt.Before(oneWeekAgo)
		if !inMonth && !inWeek {
			continue
		}

		for _, item := range sale.SaleItems {
			window, ok := windows[item.ProductID]
			if !ok {
				window = &consumptionWindow{}
				windows[item.ProductID] = window
			}

			if inMonth {
				window.monthQuantity += item.Quantity
				if !inWeek {
					window.olderQuantity += item.Quantity
				}
			}
			if inWeek {
				window.weekQuantity += item.Quantity
			}
		}
	}

	analyses := make([]*domain.ConsumptionAnalysis, 0, len(products))
	for _, product := range products {
		if product == nil {
			continue
		}

		window := windows[product.ID]
		if window == nil {
			// Produto sem nenhuma venda no histórico
			window = &consumptionWindow{}
		}

		dailyRate := float64(window.monthQuantity) / monthWindowDays
		weeklyRate := float64(window.weekQuantity) / weekWindowDays
		suggested := math.Ceil(float64(window.monthQuantity) * safetyMargin)

		analyses = append(analyses, &domain.ConsumptionAnalysis{
			ProductName:        product.Name,
			DailyConsumption:   roundQuantity(dailyRate),
			WeeklyConsumption:  roundQuantity(weeklyRate),
			MonthlyConsumption: roundQuantity(float64(window.monthQuantity)),
			SuggestedQuantity:  roundQuantity(suggested),
			Trend:              classifyTrend(window.weekQuantity, window.olderQuantity),
		})
	}

	// Ordenação estável: empates preservam a ordem do catálogo
	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].SuggestedQuantity > analyses[j].SuggestedQuantity
	})

	return analyses
}

// classifyTrend compara o consumo da última semana com o das semanas
// anteriores do mês. Sem histórico nos dois lados a tendência é estável;
// consumo novo sem histórico anterior é crescente.
func classifyTrend(recent, older int) domain.Trend {
	recentQty := float64(recent)
	olderQty := float64(older)

	switch {
	case recentQty > olderQty*risingThreshold:
		return domain.TrendRising
	case recentQty < olderQty*fallingThreshold:
		return domain.TrendFalling
	default:
		return domain.TrendStable
	}
}

// roundQuantity aplica o arredondamento de exibição das quantidades: valores
// abaixo de 1 sobem para 1 e os demais arredondam meio para cima. Nenhuma
// quantidade exibida no dashboard pode ser zero.
func roundQuantity(value float64) int {
	if value < 1 {
		return 1
	}

	floor := math.Floor(value)
	if value-floor < 0.5 {
		return int(floor)
	}
	return int(floor) + 1
}

package analyzing

import (
	"time"

	"github.com/vfg2006/pos-analytics-api/internal/domain"
)

// ConsumptionAnalyzer define a interface do motor de análise de consumo e das
// séries agregadas de receita do dashboard
type ConsumptionAnalyzer interface {
	// AnalyzeConsumption estima a velocidade de consumo de cada produto do
	// catálogo a partir do histórico completo de vendas, classificando a
	// tendência e sugerindo a quantidade de reposição. A lista retornada vem
	// ordenada de forma decrescente e estável por quantidade sugerida.
	AnalyzeConsumption(products []*domain.Product, history []*domain.Sale, now time.Time) []*domain.ConsumptionAnalysis

	// CategoryRevenueDistribution agrega a receita das vendas filtradas por
	// categoria de produto, com percentual sobre o total
	CategoryRevenueDistribution(sales []*domain.Sale, products []*domain.Product) []*domain.CategoryRevenue

	// ProductRevenueContribution agrega a receita por produto: os 5 maiores
	// mais uma entrada "Others" com o restante
	ProductRevenueContribution(sales []*domain.Sale, products []*domain.Product) []*domain.ProductRevenue

	// MonthlyRevenueSeries agrega o total das vendas filtradas por mês do
	// calendário, na ordem da primeira ocorrência
	MonthlyRevenueSeries(sales []*domain.Sale) []*domain.MonthlyRevenuePoint
}

package analyzing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/pos-analytics-api/internal/domain"
)

func TestCategoryRevenueDistribution(t *testing.T) {
	service := &Service{}

	products := []*domain.Product{
		productWith("P1", "Café Expresso", "Bebidas", 8.0),
		productWith("P2", "Suco de Laranja", "Bebidas", 10.0),
		productWith("P3", "Coxinha", "Salgados", 8.5),
	}

	sales := []*domain.Sale{
		saleAt(analysisReference,
			domain.SaleItem{ProductID: "P1", Quantity: 5, PriceAtSale: 8.0},   // 40 em Bebidas
			domain.SaleItem{ProductID: "P3", Quantity: 4, PriceAtSale: 8.5},   // 34 em Salgados
		),
		saleAt(analysisReference,
			domain.SaleItem{ProductID: "P2", Quantity: 2, PriceAtSale: 10.0},  // 20 em Bebidas
			domain.SaleItem{ProductID: "GHOST", Quantity: 9, PriceAtSale: 99}, // produto removido, ignorado
		),
	}

	distribution := service.CategoryRevenueDistribution(sales, products)

	assert.Len(t, distribution, 2)

	assert.Equal(t, "Bebidas", distribution[0].Category)
	assert.Equal(t, 60.0, distribution[0].Revenue)
	assert.Equal(t, 63.83, distribution[0].Percentage)

	assert.Equal(t, "Salgados", distribution[1].Category)
	assert.Equal(t, 34.0, distribution[1].Revenue)
	assert.Equal(t, 36.17, distribution[1].Percentage)

	// A soma dos percentuais fecha em 100
	assert.InDelta(t, 100.0, distribution[0].Percentage+distribution[1].Percentage, 0.01)
}

func TestCategoryRevenueDistribution_TotalZero(t *testing.T) {
	service := &Service{}

	products := []*domain.Product{
		productWith("P1", "Brinde", "Promoções", 0.0),
	}

	sales := []*domain.Sale{
		saleAt(analysisReference, domain.SaleItem{ProductID: "P1", Quantity: 3, PriceAtSale: 0.0}),
	}

	distribution := service.CategoryRevenueDistribution(sales, products)

	// Com receita total zero o percentual trava em 0, sem NaN
	assert.Len(t, distribution, 1)
	assert.Equal(t, 0.0, distribution[0].Revenue)
	assert.Equal(t, 0.0, distribution[0].Percentage)
}

func TestProductRevenueContribution_Top5MaisOthers(t *testing.T) {
	service := &Service{}

	products := []*domain.Product{
		productWith("P1", "Produto 1", "Cat", 1.0),
		productWith("P2", "Produto 2", "Cat", 1.0),
		productWith("P3", "Produto 3", "Cat", 1.0),
		productWith("P4", "Produto 4", "Cat", 1.0),
		productWith("P5", "Produto 5", "Cat", 1.0),
		productWith("P6", "Produto 6", "Cat", 1.0),
		productWith("P7", "Produto 7", "Cat", 1.0),
	}

	// Receitas: P1=700.5, P2=600.5, P3=500, P4=400, P5=300, P6=200.7, P7=100.7
	sales := []*domain.Sale{
		saleAt(analysisReference,
			domain.SaleItem{ProductID: "P1", Quantity: 1, PriceAtSale: 700.5},
			domain.SaleItem{ProductID: "P2", Quantity: 1, PriceAtSale: 600.5},
			domain.SaleItem{ProductID: "P3", Quantity: 1, PriceAtSale: 500},
			domain.SaleItem{ProductID: "P4", Quantity: 1, PriceAtSale: 400},
			domain.SaleItem{ProductID: "P5", Quantity: 1, PriceAtSale: 300},
			domain.SaleItem{ProductID: "P6", Quantity: 1, PriceAtSale: 200.7},
			domain.SaleItem{ProductID: "P7", Quantity: 1, PriceAtSale: 100.7},
		),
	}

	contribution := service.ProductRevenueContribution(sales, products)

	// 5 produtos mais a entrada "Others"
	assert.Len(t, contribution, 6)

	assert.Equal(t, "Produto 1", contribution[0].ProductName)
	// Valores absolutos truncados para baixo
	assert.Equal(t, 700.0, contribution[0].Revenue)

	assert.Equal(t, "Produto 2", contribution[1].ProductName)
	assert.Equal(t, 600.0, contribution[1].Revenue)

	assert.Equal(t, "Produto 5", contribution[4].ProductName)
	assert.Equal(t, 300.0, contribution[4].Revenue)

	others := contribution[5]
	assert.Equal(t, "Others", others.ProductName)
	// 200.7 + 100.7 = 301.4, truncado para 301
	assert.Equal(t, 301.0, others.Revenue)
	assert.Greater(t, others.Percentage, 0.0)
}

func TestProductRevenueContribution_MenosDeCincoProdutos(t *testing.T) {
	service := &Service{}

	products := []*domain.Product{
		productWith("P1", "Produto 1", "Cat", 1.0),
		productWith("P2", "Produto 2", "Cat", 1.0),
	}

	sales := []*domain.Sale{
		saleAt(analysisReference,
			domain.SaleItem{ProductID: "P1", Quantity: 1, PriceAtSale: 50},
			domain.SaleItem{ProductID: "P2", Quantity: 1, PriceAtSale: 150},
		),
	}

	contribution := service.ProductRevenueContribution(sales, products)

	// Sem entrada "Others" quando todos cabem no top 5
	assert.Len(t, contribution, 2)
	assert.Equal(t, "Produto 2", contribution[0].ProductName)
	assert.Equal(t, "Produto 1", contribution[1].ProductName)
}

func TestMonthlyRevenueSeries_OrdemDePrimeiraOcorrencia(t *testing.T) {
	service := &Service{}

	march := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	january := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

	sales := []*domain.Sale{
		saleAt(march, domain.SaleItem{ProductID: "P1", Quantity: 1, PriceAtSale: 100}),
		saleAt(january, domain.SaleItem{ProductID: "P1", Quantity: 1, PriceAtSale: 40}),
		saleAt(march.AddDate(0, 0, 5), domain.SaleItem{ProductID: "P1", Quantity: 1, PriceAtSale: 60}),
	}

	series := service.MonthlyRevenueSeries(sales)

	// A série segue a ordem da primeira ocorrência, não a ordem do calendário
	assert.Len(t, series, 2)
	assert.Equal(t, "Março", series[0].Month)
	assert.Equal(t, 160.0, series[0].Revenue)
	assert.Equal(t, "Janeiro", series[1].Month)
	assert.Equal(t, 40.0, series[1].Revenue)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Janeiro", monthLabel(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Dezembro", monthLabel(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}

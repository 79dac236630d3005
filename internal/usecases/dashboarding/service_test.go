package dashboarding

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/pos-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/pos-analytics-api/internal/domain"
	"github.com/vfg2006/pos-analytics-api/internal/usecases/analyzing"
	"go.uber.org/mock/gomock"
)

// Sábado, 15 de junho de 2024
var dashboardReference = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return dashboardReference
}

func newTestService(t *testing.T) (Dashboarder, *mocks.MockProductRepository, *mocks.MockSaleRepository, *mocks.MockConsumptionSnapshotRepository) {
	ctrl := gomock.NewController(t)
	productRepo := mocks.NewMockProductRepository(ctrl)
	saleRepo := mocks.NewMockSaleRepository(ctrl)
	snapshotRepo := mocks.NewMockConsumptionSnapshotRepository(ctrl)

	service := NewServiceWithClock(productRepo, saleRepo, snapshotRepo, analyzing.NewService(), fixedClock)

	return service, productRepo, saleRepo, snapshotRepo
}

func saleOn(createdAt time.Time, productID string, quantity int, price float64) *domain.Sale {
	return &domain.Sale{
		ID:            "S-" + createdAt.Format("20060102"),
		CreatedAt:     createdAt,
		Total:         float64(quantity) * price,
		PaymentMethod: domain.PaymentMethodCard,
		SaleItems: []domain.SaleItem{
			{ProductID: productID, Quantity: quantity, PriceAtSale: price},
		},
	}
}

func TestGetDashboardInsights_SeletorInvalido(t *testing.T) {
	service, _, _, _ := newTestService(t)

	insights, err := service.GetDashboardInsights(domain.PeriodSelector("quinzenal"), domain.DateRange{})

	assert.Nil(t, insights)
	assert.EqualError(t, err, "seletor de período inválido: quinzenal")
}

func TestGetDashboardInsights_DadosAindaNaoCarregados(t *testing.T) {
	service, productRepo, saleRepo, _ := newTestService(t)

	productRepo.EXPECT().ListProducts().Return(nil, nil)
	saleRepo.EXPECT().ListSales(domain.DateRange{}).Return(nil, nil)

	insights, err := service.GetDashboardInsights(domain.PeriodAll, domain.DateRange{})

	// Sem catálogo ou vendas carregados não há o que exibir nem erro a reportar
	assert.Nil(t, insights)
	assert.NoError(t, err)
}

func TestGetDashboardInsights_ErroAoListarVendas(t *testing.T) {
	service, productRepo, saleRepo, _ := newTestService(t)

	productRepo.EXPECT().ListProducts().Return([]*domain.Product{}, nil)
	saleRepo.EXPECT().ListSales(domain.DateRange{}).Return(nil, errors.New("conexão recusada"))

	insights, err := service.GetDashboardInsights(domain.PeriodAll, domain.DateRange{})

	assert.Nil(t, insights)
	assert.EqualError(t, err, "erro ao listar vendas: conexão recusada")
}

func TestGetDashboardInsights_FiltroNaoAfetaAnaliseDeConsumo(t *testing.T) {
	service, productRepo, saleRepo, _ := newTestService(t)

	products := []*domain.Product{
		{ID: "P1", Name: "Café Expresso", Category: "Bebidas", SellingPrice: 8.0},
	}

	// Uma venda hoje e outra fora da janela diária, mas dentro da mensal
	today := saleOn(dashboardReference.Add(-2*time.Hour), "P1", 2, 8.0)
	older := saleOn(dashboardReference.AddDate(0, 0, -10), "P1", 4, 8.0)

	productRepo.EXPECT().ListProducts().Return(products, nil)
	saleRepo.EXPECT().ListSales(domain.DateRange{}).Return([]*domain.Sale{today, older}, nil)

	insights, err := service.GetDashboardInsights(domain.PeriodDaily, domain.DateRange{})

	assert.NoError(t, err)
	assert.NotNil(t, insights)

	// A análise de consumo enxerga o histórico completo
	assert.Len(t, insights.Consumption, 1)
	assert.Equal(t, 6, insights.Consumption[0].MonthlyConsumption)

	// As séries de receita respeitam o filtro diário
	assert.Len(t, insights.MonthlyRevenue, 1)
	assert.Equal(t, 16.0, insights.MonthlyRevenue[0].Revenue)
	assert.Len(t, insights.CategoryRevenue, 1)
	assert.Equal(t, 16.0, insights.CategoryRevenue[0].Revenue)
}

func TestGetDashboardInsights_IntervaloCustomizadoNormalizaOFim(t *testing.T) {
	service, productRepo, saleRepo, _ := newTestService(t)

	products := []*domain.Product{
		{ID: "P1", Name: "Café Expresso", Category: "Bebidas", SellingPrice: 8.0},
	}

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 10, 10, 30, 0, 0, time.UTC)

	// Venda na noite do último dia do intervalo, depois do instante bruto do fim
	lastEvening := saleOn(time.Date(2024, 6, 10, 21, 0, 0, 0, time.UTC), "P1", 1, 8.0)

	productRepo.EXPECT().ListProducts().Return(products, nil)
	saleRepo.EXPECT().ListSales(domain.DateRange{}).Return([]*domain.Sale{lastEvening}, nil)

	insights, err := service.GetDashboardInsights(domain.PeriodCustom, domain.DateRange{Start: &start, End: &end})

	assert.NoError(t, err)
	assert.NotNil(t, insights)

	// O fim é estendido para o último instante do dia e a venda da noite entra
	assert.Equal(t, time.Date(2024, 6, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC), *insights.Range.End)
	assert.Len(t, insights.MonthlyRevenue, 1)
	assert.Equal(t, 8.0, insights.MonthlyRevenue[0].Revenue)
}

func TestGetConsumptionAnalysis(t *testing.T) {
	service, productRepo, saleRepo, _ := newTestService(t)

	products := []*domain.Product{
		{ID: "P1", Name: "Café Expresso", Category: "Bebidas", SellingPrice: 8.0},
	}
	history := []*domain.Sale{
		saleOn(dashboardReference.AddDate(0, 0, -3), "P1", 10, 8.0),
	}

	productRepo.EXPECT().ListProducts().Return(products, nil)
	saleRepo.EXPECT().ListSales(domain.DateRange{}).Return(history, nil)

	analyses, err := service.GetConsumptionAnalysis()

	assert.NoError(t, err)
	assert.Len(t, analyses, 1)
	assert.Equal(t, "Café Expresso", analyses[0].ProductName)
	assert.Equal(t, 10, analyses[0].MonthlyConsumption)
}

func TestGetConsumptionSnapshot(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(snapshotRepo *mocks.MockConsumptionSnapshotRepository)
		validate func(t *testing.T, entry *domain.ConsumptionSnapshotEntry, err error)
	}{
		{
			name: "Deve devolver o snapshot mais recente",
			setup: func(snapshotRepo *mocks.MockConsumptionSnapshotRepository) {
				snapshotRepo.EXPECT().GetLatest().Return(&domain.ConsumptionSnapshotEntry{
					Date: time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
				}, nil)
			},
			validate: func(t *testing.T, entry *domain.ConsumptionSnapshotEntry, err error) {
				assert.NoError(t, err)
				assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), entry.Date)
			},
		},
		{
			name: "Deve devolver nil quando nenhum snapshot existe",
			setup: func(snapshotRepo *mocks.MockConsumptionSnapshotRepository) {
				snapshotRepo.EXPECT().GetLatest().Return(nil, nil)
			},
			validate: func(t *testing.T, entry *domain.ConsumptionSnapshotEntry, err error) {
				assert.NoError(t, err)
				assert.Nil(t, entry)
			},
		},
		{
			name: "Deve propagar erro do repositório",
			setup: func(snapshotRepo *mocks.MockConsumptionSnapshotRepository) {
				snapshotRepo.EXPECT().GetLatest().Return(nil, errors.New("conexão recusada"))
			},
			validate: func(t *testing.T, entry *domain.ConsumptionSnapshotEntry, err error) {
				assert.Nil(t, entry)
				assert.EqualError(t, err, "erro ao buscar snapshot de consumo: conexão recusada")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _, snapshotRepo := newTestService(t)
			tt.setup(snapshotRepo)

			entry, err := service.GetConsumptionSnapshot()
			tt.validate(t, entry, err)
		})
	}
}

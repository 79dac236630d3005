package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/pos-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/pos-analytics-api/internal/config"
	"github.com/vfg2006/pos-analytics-api/internal/domain"
	"github.com/vfg2006/pos-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/pos-analytics-api/internal/usecases/perioding"
	"go.uber.org/mock/gomock"
)

func newTestSyncService(t *testing.T, appConfig *config.Config) (*ConsumptionSyncService, *mocks.MockProductRepository, *mocks.MockSaleRepository, *mocks.MockConsumptionSnapshotRepository) {
	ctrl := gomock.NewController(t)
	productRepo := mocks.NewMockProductRepository(ctrl)
	saleRepo := mocks.NewMockSaleRepository(ctrl)
	snapshotRepo := mocks.NewMockConsumptionSnapshotRepository(ctrl)

	service := NewConsumptionSyncService(productRepo, saleRepo, snapshotRepo, analyzing.NewService(), appConfig)

	return service, productRepo, saleRepo, snapshotRepo
}

func syncTestConfig() *config.Config {
	return &config.Config{
		ConsumptionSync: config.ConsumptionSync{
			CronSchedule:  "0 3 * * *",
			LookbackDays:  60,
			RetentionDays: 90,
			Enabled:       true,
		},
	}
}

func TestSyncConsumptionSnapshot(t *testing.T) {
	products := []*domain.Product{
		{ID: "P1", Name: "Café Expresso", Category: "Bebidas", SellingPrice: 8.0},
	}

	tests := []struct {
		name  string
		setup func(productRepo *mocks.MockProductRepository, saleRepo *mocks.MockSaleRepository, snapshotRepo *mocks.MockConsumptionSnapshotRepository)
	}{
		{
			name: "Deve calcular a análise e persistir o snapshot do dia",
			setup: func(productRepo *mocks.MockProductRepository, saleRepo *mocks.MockSaleRepository, snapshotRepo *mocks.MockConsumptionSnapshotRepository) {
				productRepo.EXPECT().ListProducts().Return(products, nil)

				saleRepo.EXPECT().ListSales(gomock.Any()).DoAndReturn(func(r domain.DateRange) ([]*domain.Sale, error) {
					// A busca recorta o histórico pela janela de lookback
					assert.NotNil(t, r.Start)
					assert.Nil(t, r.End)
					assert.Equal(t, perioding.StartOfDay(time.Now().AddDate(0, 0, -60)), *r.Start)
					return []*domain.Sale{
						{
							ID:            "S1",
							CreatedAt:     time.Now().AddDate(0, 0, -2),
							PaymentMethod: domain.PaymentMethodCard,
							SaleItems: []domain.SaleItem{
								{ProductID: "P1", Quantity: 10, PriceAtSale: 8.0},
							},
						},
					}, nil
				})

				snapshotRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(entry *domain.ConsumptionSnapshotEntry) error {
					assert.Equal(t, perioding.StartOfDay(time.Now()), entry.Date)
					assert.Len(t, entry.Analyses, 1)
					assert.Equal(t, 10, entry.Analyses[0].MonthlyConsumption)
					return nil
				})

				snapshotRepo.EXPECT().DeleteOlderThan(90).Return(int64(2), nil)
			},
		},
		{
			name: "Sem produtos cadastrados não deve gerar snapshot",
			setup: func(productRepo *mocks.MockProductRepository, saleRepo *mocks.MockSaleRepository, snapshotRepo *mocks.MockConsumptionSnapshotRepository) {
				productRepo.EXPECT().ListProducts().Return([]*domain.Product{}, nil)
			},
		},
		{
			name: "Erro ao listar produtos interrompe a sincronização",
			setup: func(productRepo *mocks.MockProductRepository, saleRepo *mocks.MockSaleRepository, snapshotRepo *mocks.MockConsumptionSnapshotRepository) {
				productRepo.EXPECT().ListProducts().Return(nil, errors.New("conexão recusada"))
			},
		},
		{
			name: "Erro ao listar vendas interrompe a sincronização",
			setup: func(productRepo *mocks.MockProductRepository, saleRepo *mocks.MockSaleRepository, snapshotRepo *mocks.MockConsumptionSnapshotRepository) {
				productRepo.EXPECT().ListProducts().Return(products, nil)
				saleRepo.EXPECT().ListSales(gomock.Any()).Return(nil, errors.New("conexão recusada"))
			},
		},
		{
			name: "Erro ao salvar o snapshot não remove os antigos",
			setup: func(productRepo *mocks.MockProductRepository, saleRepo *mocks.MockSaleRepository, snapshotRepo *mocks.MockConsumptionSnapshotRepository) {
				productRepo.EXPECT().ListProducts().Return(products, nil)
				saleRepo.EXPECT().ListSales(gomock.Any()).Return([]*domain.Sale{}, nil)
				snapshotRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(errors.New("conexão recusada"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, productRepo, saleRepo, snapshotRepo := newTestSyncService(t, syncTestConfig())
			tt.setup(productRepo, saleRepo, snapshotRepo)

			service.syncConsumptionSnapshot()
		})
	}
}

func TestSyncConsumptionSnapshot_NaoExecutaEmParalelo(t *testing.T) {
	service, _, _, _ := newTestSyncService(t, syncTestConfig())

	// Com a flag marcada a nova execução retorna sem tocar nos repositórios
	service.syncMutex.Lock()
	service.syncRunning = true
	service.syncMutex.Unlock()

	service.syncConsumptionSnapshot()
}

func TestStart_DesabilitadoNaoAgenda(t *testing.T) {
	appConfig := syncTestConfig()
	appConfig.ConsumptionSync.Enabled = false

	service, _, _, _ := newTestSyncService(t, appConfig)

	err := service.Start(context.Background())

	assert.NoError(t, err)
	assert.Len(t, service.scheduler.Jobs(), 0)
}

func TestGetStatus(t *testing.T) {
	service, _, _, _ := newTestSyncService(t, syncTestConfig())

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, 60, status["sync_lookback_days"])
	assert.Equal(t, 90, status["retention_days"])
}

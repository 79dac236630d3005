// Package dashboarding orquestra o carregamento dos dados do dashboard:
// resolve o período, busca catálogo e vendas e aciona o motor de análise
package dashboarding

import (
	"fmt"
	"time"

	"github.com/vfg2006/pos-analytics-api/infrastructure/repository"
	"github.com/vfg2006/pos-analytics-api/internal/domain"
	"github.com/vfg2006/pos-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/pos-analytics-api/internal/usecases/perioding"
)

type Dashboarder interface {
	// GetDashboardInsights monta a resposta completa do dashboard para o
	// seletor de período informado. Para o seletor "custom" o intervalo vem do
	// chamador; os demais são resolvidos a partir do instante atual.
	// Retorna (nil, nil) enquanto catálogo ou vendas ainda não carregaram.
	GetDashboardInsights(selector domain.PeriodSelector, customRange domain.DateRange) (*domain.DashboardInsights, error)

	// GetConsumptionAnalysis calcula a análise de consumo sobre o histórico
	// completo de vendas, sem filtro de período
	GetConsumptionAnalysis() ([]*domain.ConsumptionAnalysis, error)

	// GetConsumptionSnapshot devolve o snapshot diário mais recente persistido
	// pelo job de sincronização, ou nil se nenhum existir
	GetConsumptionSnapshot() (*domain.ConsumptionSnapshotEntry, error)
}

type service struct {
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	snapshotRepo repository.ConsumptionSnapshotRepository
	analyzer     analyzing.ConsumptionAnalyzer
	nowFn        func() time.Time
}

func NewService(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	snapshotRepo repository.ConsumptionSnapshotRepository,
	analyzer analyzing.ConsumptionAnalyzer,
) Dashboarder {
	return &service{
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		snapshotRepo: snapshotRepo,
		analyzer:     analyzer,
		nowFn:        time.Now,
	}
}

// NewServiceWithClock permite fixar o relógio nos testes
func NewServiceWithClock(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	snapshotRepo repository.ConsumptionSnapshotRepository,
	analyzer analyzing.ConsumptionAnalyzer,
	nowFn func() time.Time,
) Dashboarder {
	return &service{
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		snapshotRepo: snapshotRepo,
		analyzer:     analyzer,
		nowFn:        nowFn,
	}
}

func (s *service) GetDashboardInsights(selector domain.PeriodSelector, customRange domain.DateRange) (*domain.DashboardInsights, error) {
	if !selector.IsValid() {
		return nil, fmt.Errorf("seletor de período inválido: %s", selector)
	}

	now := s.nowFn()

	dateRange := perioding.Resolve(selector, now)
	if selector == domain.PeriodCustom {
		dateRange = normalizeCustomRange(customRange)
	}

	products, err := s.productRepo.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}

	// O histórico completo alimenta a análise de consumo; o filtro de período
	// vale apenas para as séries de receita exibidas
	history, err := s.saleRepo.ListSales(domain.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}

	if products == nil || history == nil {
		return nil, nil
	}

	filtered := perioding.FilterSalesByRange(history, dateRange)

	return &domain.DashboardInsights{
		Range:           dateRange,
		Consumption:     s.analyzer.AnalyzeConsumption(products, history, now),
		CategoryRevenue: s.analyzer.CategoryRevenueDistribution(filtered, products),
		ProductRevenue:  s.analyzer.ProductRevenueContribution(filtered, products),
		MonthlyRevenue:  s.analyzer.MonthlyRevenueSeries(filtered),
	}, nil
}

func (s *service) GetConsumptionAnalysis() ([]*domain.ConsumptionAnalysis, error) {
	products, err := s.productRepo.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}

	history, err := s.saleRepo.ListSales(domain.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}

	if products == nil || history == nil {
		return nil, nil
	}

	return s.analyzer.AnalyzeConsumption(products, history, s.nowFn()), nil
}

func (s *service) GetConsumptionSnapshot() (*domain.ConsumptionSnapshotEntry, error) {
	entry, err := s.snapshotRepo.GetLatest()
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar snapshot de consumo: %w", err)
	}

	return entry, nil
}

// normalizeCustomRange estende o fim do intervalo customizado para o último
// instante do dia, para que a seleção inclua o dia final inteiro
func normalizeCustomRange(r domain.DateRange) domain.DateRange {
	if r.End == nil {
		return r
	}

	end := perioding.EndOfDay(*r.End)
	return domain.DateRange{Start: r.Start, End: &end}
}

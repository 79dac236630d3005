package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/pos-analytics-api/infrastructure/repository"
	"github.com/vfg2006/pos-analytics-api/internal/config"
	"github.com/vfg2006/pos-analytics-api/internal/domain"
	"github.com/vfg2006/pos-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/pos-analytics-api/internal/usecases/perioding"
	"github.com/vfg2006/pos-analytics-api/pkg/utils"
)

// ConsumptionSyncConfig representa a configuração do agendador de snapshots de consumo
type ConsumptionSyncConfig struct {
	CronSchedule  string
	LookbackDays  int
	RetentionDays int
	SyncEnabled   bool
}

// ConsumptionSyncService gerencia o agendamento e execução do cálculo diário
// da análise de consumo, persistindo o resultado como snapshot
type ConsumptionSyncService struct {
	scheduler           *gocron.Scheduler
	config              ConsumptionSyncConfig
	productRepo         repository.ProductRepository
	saleRepo            repository.SaleRepository
	snapshotRepo        repository.ConsumptionSnapshotRepository
	analyzer            analyzing.ConsumptionAnalyzer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewConsumptionSyncService cria uma nova instância do serviço de sincronização de consumo
func NewConsumptionSyncService(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	snapshotRepo repository.ConsumptionSnapshotRepository,
	analyzer analyzing.ConsumptionAnalyzer,
	appConfig *config.Config,
) *ConsumptionSyncService {
	// Criar a configuração com base na config global
	syncConfig := ConsumptionSyncConfig{
		CronSchedule:  appConfig.ConsumptionSync.CronSchedule,
		LookbackDays:  appConfig.ConsumptionSync.LookbackDays,
		RetentionDays: appConfig.ConsumptionSync.RetentionDays,
		SyncEnabled:   appConfig.ConsumptionSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  syncConfig.CronSchedule,
		"lookback_days":  syncConfig.LookbackDays,
		"retention_days": syncConfig.RetentionDays,
		"sync_enabled":   syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de snapshots de consumo carregada")

	return &ConsumptionSyncService{
		scheduler:    scheduler,
		config:       syncConfig,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		snapshotRepo: snapshotRepo,
		analyzer:     analyzer,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *ConsumptionSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots de consumo desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots de consumo")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncConsumptionSnapshot()
	})
	if err != nil {
		return errors.Wrap(err, "erro ao agendar sincronização de snapshots de consumo")
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots de consumo")
		s.scheduler.Stop()
	}()

	return nil
}

// syncConsumptionSnapshot calcula a análise de consumo do dia e persiste o snapshot
func (s *ConsumptionSyncService) syncConsumptionSnapshot() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots de consumo já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando cálculo do snapshot diário de consumo")

	products, err := s.productRepo.ListProducts()
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar produtos para o snapshot de consumo")
		return
	}

	if len(products) == 0 {
		logrus.Info("Nenhum produto cadastrado, snapshot de consumo não gerado")
		return
	}

	// A janela de análise olha apenas o passado recente; buscar o histórico
	// inteiro seria desperdício
	lookbackStart := perioding.StartOfDay(startTime.AddDate(0, 0, -s.config.LookbackDays))
	history, err := s.saleRepo.ListSales(domain.DateRange{Start: &lookbackStart})
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar vendas para o snapshot de consumo")
		return
	}

	analyses := s.analyzer.AnalyzeConsumption(products, history, startTime)

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debug("Análise de consumo calculada: ", utils.PrettyJson(analyses))
	}

	entry := &domain.ConsumptionSnapshotEntry{
		Date:     perioding.StartOfDay(startTime),
		Analyses: analyses,
	}

	if err := s.snapshotRepo.SaveOrUpdate(entry); err != nil {
		logrus.WithError(err).Error("Erro ao salvar snapshot de consumo no banco de dados")
		return
	}

	if s.config.RetentionDays > 0 {
		deleted, err := s.snapshotRepo.DeleteOlderThan(s.config.RetentionDays)
		if err != nil {
			logrus.WithError(err).Warn("Erro ao remover snapshots de consumo antigos")
		} else if deleted > 0 {
			logrus.WithField("deleted", deleted).Info("Snapshots de consumo antigos removidos")
		}
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"products": len(products),
		"sales":    len(history),
	}).Info("Snapshot diário de consumo concluído")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente o cálculo do snapshot de consumo
func (s *ConsumptionSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots de consumo já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual do snapshot de consumo")
	go s.syncConsumptionSnapshot()
}

// GetStatus retorna o status atual do agendador
func (s *ConsumptionSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"retention_days":         s.config.RetentionDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/deal-mirror-api/internal/config"
	"github.com/vfg2006/deal-mirror-api/internal/domain"
	"github.com/vfg2006/deal-mirror-api/internal/usecases/syncing"
)

// DealSyncService agenda a importação completa de deals do Bitrix para o banco local
type DealSyncService struct {
	scheduler   *gocron.Scheduler
	config      config.DealSync
	syncer      syncing.DealSyncer
	timeout     time.Duration
	syncRunning bool
	syncMutex   sync.Mutex

	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          *domain.SyncResult
	lastError           string
}

// NewDealSyncService cria o agendador. timeout limita cada execução; zero desativa o limite.
func NewDealSyncService(syncer syncing.DealSyncer, cfg config.DealSync, timeout time.Duration) *DealSyncService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": cfg.CronSchedule,
		"sync_enabled":  cfg.Enabled,
	}).Info("Configuração do agendador de deals carregada")

	return &DealSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    cfg,
		syncer:    syncer,
		timeout:   timeout,
	}
}

// Start inicia o agendador
func (s *DealSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Sincronização agendada de deals desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de deals")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllDeals(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de deals: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de deals")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllDeals executa uma importação completa, ignorando a chamada se outra estiver em andamento
func (s *DealSyncService) syncAllDeals(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de deals já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	logrus.Info("Iniciando sincronização de deals")

	result, err := s.syncer.ImportAll(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro na sincronização de deals")
		return
	}

	s.lastError = ""
	s.lastResult = result
	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"fetched":  result.Fetched,
		"saved":    result.Saved,
		"failed":   result.Failed,
		"rejected": result.Rejected,
	}).Info("Sincronização de deals concluída")
}

// TriggerManualSync dispara uma importação em segundo plano. Retorna false se já houver uma em andamento.
func (s *DealSyncService) TriggerManualSync(ctx context.Context) bool {
	if s.IsRunning() {
		logrus.Info("Sincronização de deals já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual de deals")
	go s.syncAllDeals(context.WithoutCancel(ctx))

	return true
}

func (s *DealSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *DealSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
	if s.lastResult != nil {
		status["last_result"] = *s.lastResult
	}
	if s.lastError != "" {
		status["last_error"] = s.lastError
	}

	return status
}

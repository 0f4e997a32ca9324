package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/deal-mirror-api/internal/config"
	"github.com/vfg2006/deal-mirror-api/internal/domain"
	"github.com/vfg2006/deal-mirror-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func TestDealSyncService_syncAllDeals(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(m *mocks.MockDealSyncer)
		validate func(t *testing.T, status map[string]any)
	}{
		{
			name: "importação concluída guarda o resultado",
			setup: func(m *mocks.MockDealSyncer) {
				m.EXPECT().ImportAll(gomock.Any()).Return(&domain.SyncResult{Fetched: 3, Saved: 3}, nil)
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, domain.SyncResult{Fetched: 3, Saved: 3}, status["last_result"])
				assert.NotContains(t, status, "last_error")
				assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
			},
		},
		{
			name: "erro fica registrado no status",
			setup: func(m *mocks.MockDealSyncer) {
				m.EXPECT().ImportAll(gomock.Any()).Return(nil, errors.New("bitrix fora do ar"))
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, "bitrix fora do ar", status["last_error"])
				assert.NotContains(t, status, "last_result")
				assert.True(t, status["last_sync_completed_at"].(time.Time).IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			syncer := mocks.NewMockDealSyncer(ctrl)
			tt.setup(syncer)

			service := NewDealSyncService(syncer, config.DealSync{CronSchedule: "0 3 * * *"}, time.Minute)
			service.syncAllDeals(context.Background())

			status := service.GetStatus()
			assert.Equal(t, false, status["sync_running"])
			assert.False(t, status["last_sync_started_at"].(time.Time).IsZero())
			tt.validate(t, status)
		})
	}
}

func TestDealSyncService_SkipsWhileRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncer := mocks.NewMockDealSyncer(ctrl)

	service := NewDealSyncService(syncer, config.DealSync{}, 0)
	service.syncRunning = true

	// sem EXPECT: ImportAll não pode ser chamado
	service.syncAllDeals(context.Background())
	assert.False(t, service.TriggerManualSync(context.Background()))
}

func TestDealSyncService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncer := mocks.NewMockDealSyncer(ctrl)

	done := make(chan struct{})
	syncer.EXPECT().
		ImportAll(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (*domain.SyncResult, error) {
			defer close(done)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return &domain.SyncResult{}, nil
		})

	service := NewDealSyncService(syncer, config.DealSync{}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	require.True(t, service.TriggerManualSync(ctx))
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sincronização manual não executou")
	}

	assert.Eventually(t, func() bool { return !service.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestDealSyncService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewDealSyncService(mocks.NewMockDealSyncer(ctrl), config.DealSync{Enabled: false}, 0)

	require.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["sync_enabled"])
}

func TestDealSyncService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewDealSyncService(mocks.NewMockDealSyncer(ctrl), config.DealSync{Enabled: true, CronSchedule: "not a cron"}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, service.Start(ctx))
}

package handler

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/deal-mirror-api/pkg/apiErrors"
)

// SyncScheduler é o agendador de importação que pode ser disparado manualmente
type SyncScheduler interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// RunCronJob dispara manualmente a importação completa em segundo plano
func RunCronJob(scheduler SyncScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		if scheduler == nil {
			apiErrors.WriteEnvelope(w, apiErrors.ErrInternalServer, "sync scheduler not available")
			return
		}

		if !scheduler.TriggerManualSync(r.Context()) {
			writeJSON(w, http.StatusConflict, messageResponse{
				Status:    false,
				StatusMsg: "error",
				Message:   "Deal sync already running",
			})
			return
		}

		writeJSON(w, http.StatusAccepted, messageResponse{
			Status:    true,
			StatusMsg: "success",
			Message:   "Deal sync started",
		})
	}
}

// GetCronStatus retorna o status do agendador
func GetCronStatus(scheduler SyncScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if scheduler == nil {
			apiErrors.WriteEnvelope(w, apiErrors.ErrInternalServer, "sync scheduler not available")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"status":     true,
			"status_msg": "success",
			"deal_sync":  scheduler.GetStatus(),
		})
	}
}

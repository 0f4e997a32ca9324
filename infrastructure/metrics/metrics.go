package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DealMetrics agrupa as métricas do espelhamento de deals.
// Um *DealMetrics nil é válido e não registra nada.
type DealMetrics struct {
	// Chamadas ao CRM
	RemoteRequestsTotal   *prometheus.CounterVec
	RemoteRequestDuration *prometheus.HistogramVec

	// Operações de sincronização
	SyncOperationsTotal   *prometheus.CounterVec
	SyncOperationDuration *prometheus.HistogramVec

	// Registros processados
	DealsFetchedTotal  prometheus.Counter
	DealsSavedTotal    prometheus.Counter
	DealsFailedTotal   prometheus.Counter
	DealsRejectedTotal prometheus.Counter
}

// NewDealMetrics registra as métricas no registerer informado
func NewDealMetrics(reg prometheus.Registerer) *DealMetrics {
	factory := promauto.With(reg)

	return &DealMetrics{
		RemoteRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bitrix_requests_total",
				Help: "Total de chamadas REST ao CRM por método e resultado",
			},
			[]string{"method", "result"},
		),

		RemoteRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bitrix_request_duration_seconds",
				Help:    "Duração das chamadas REST ao CRM em segundos",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms, 100ms, 200ms...
			},
			[]string{"method"},
		),

		SyncOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deal_sync_operations_total",
				Help: "Total de operações de sincronização por tipo e resultado",
			},
			[]string{"operation", "result"},
		),

		SyncOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deal_sync_operation_duration_seconds",
				Help:    "Duração das operações de sincronização em segundos",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
			},
			[]string{"operation"},
		),

		DealsFetchedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "deals_fetched_total",
			Help: "Registros recebidos do CRM",
		}),
		DealsSavedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "deals_saved_total",
			Help: "Deals gravados no banco local",
		}),
		DealsFailedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "deals_failed_total",
			Help: "Deals cuja gravação falhou",
		}),
		DealsRejectedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "deals_rejected_total",
			Help: "Registros descartados na normalização",
		}),
	}
}

// RecordRemoteRequest registra uma chamada ao CRM
func (m *DealMetrics) RecordRemoteRequest(method string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.RemoteRequestsTotal.WithLabelValues(method, resultLabel(err)).Inc()
	m.RemoteRequestDuration.WithLabelValues(method).Observe(time.Since(started).Seconds())
}

// RecordOperation registra o resultado de uma operação de sincronização
func (m *DealMetrics) RecordOperation(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.SyncOperationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
	m.SyncOperationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *DealMetrics) RecordCounts(fetched, saved, failed, rejected int) {
	if m == nil {
		return
	}
	m.DealsFetchedTotal.Add(float64(fetched))
	m.DealsSavedTotal.Add(float64(saved))
	m.DealsFailedTotal.Add(float64(failed))
	m.DealsRejectedTotal.Add(float64(rejected))
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

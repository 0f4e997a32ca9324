package middleware

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/vfg2006/deal-mirror-api/pkg/apiErrors"
	"github.com/vfg2006/deal-mirror-api/pkg/log"
)

// CorrelationIDHeader propaga o ID de correlação entre chamadas
const CorrelationIDHeader = "X-Correlation-ID"

// slowRequest marca requisições lentas; a importação completa costuma passar disso
const slowRequest = 5 * time.Second

// LoggingMiddleware registra o início e o fim de cada requisição
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.ContextWithCorrelationID(r.Context(), r.Header.Get(CorrelationIDHeader))
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, correlationID)

			sw := newStatusWriter(w)
			startTime := time.Now()

			fields := log.Fields{
				"correlation_id": correlationID,
				"method":         r.Method,
				"path":           r.URL.Path,
			}
			if dealID := r.URL.Query().Get("ID"); dealID != "" {
				fields["deal_id"] = dealID
			}
			if !log.IsDevelopment() {
				fields["remote_addr"] = r.RemoteAddr
				fields["user_agent"] = r.UserAgent()
				fields["content_type"] = r.Header.Get("Content-Type")
			}

			log.L.WithFields(fields).Info("→ Requisição iniciada")

			next.ServeHTTP(sw, r)

			elapsed := time.Since(startTime)
			fields["status_code"] = sw.statusCode
			fields["duration_ms"] = elapsed.Milliseconds()

			logger := log.L.WithFields(fields)
			msg := fmt.Sprintf("Requisição finalizada em %s", formatDuration(elapsed))

			switch {
			case sw.statusCode >= http.StatusInternalServerError:
				logger.Error(msg)
			case sw.statusCode >= http.StatusBadRequest:
				logger.Warn(msg)
			default:
				logger.Info(msg)
			}

			if elapsed > slowRequest {
				logger.Warnf("Requisição lenta: %s %s", r.Method, r.URL.Path)
			}
		})
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// statusWriter guarda o status escrito pelo handler
type statusWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.wroteHeader {
		return
	}
	sw.statusCode = code
	sw.wroteHeader = true
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.wroteHeader = true
	}
	return sw.ResponseWriter.Write(b)
}

// LogPanicMiddleware converte panics em 500 com o envelope de erro
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stack = stack[:runtime.Stack(stack, false)]

					log.ForContext(r.Context()).WithFields(log.Fields{
						"error":       err,
						"method":      r.Method,
						"path":        r.URL.Path,
						"stack_trace": string(stack),
					}).Error("PANIC na aplicação")

					apiErrors.WriteEnvelope(w, apiErrors.ErrInternalServer, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

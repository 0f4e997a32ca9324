package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/justinas/alice"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/deal-mirror-api/pkg/log"
)

func TestCors(t *testing.T) {
	called := false
	handler := Cors()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("preflight não chega ao handler", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/ostatki_two/add_deal_handler", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.False(t, called)
	})

	t.Run("requisição normal", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/ostatki_two/get_deals_from_db", nil)
		req.Header.Set("Origin", "https://example.bitrix24.ru")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.True(t, called)
	})
}

func TestLoggingMiddleware_CorrelationID(t *testing.T) {
	var seen string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusAccepted)
	}))

	t.Run("reaproveita o header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthcheck?ID=5", nil)
		req.Header.Set(CorrelationIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(CorrelationIDHeader))
	})

	t.Run("gera um novo", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(CorrelationIDHeader))
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	chain := alice.New(LogPanicMiddleware(), LoggingMiddleware()).
		ThenFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ostatki_two/get_deals_from_bx_insert_in_db", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":false,"status_msg":"error","message":"internal server error","code":"SRV_001"}`, rec.Body.String())
}

func TestStatusWriter_FirstHeaderWins(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := newStatusWriter(rec)

	_, _ = sw.Write([]byte("ok"))
	sw.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusOK, sw.statusCode)
	assert.Equal(t, http.StatusOK, rec.Code)
}

package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrMissingRequiredData, http.StatusBadRequest},
		{ErrInvalidFormat, http.StatusBadRequest},
		{ErrNotFound, http.StatusNotFound},
		{ErrDatabaseOperation, http.StatusInternalServerError},
		{ErrExternalService, http.StatusBadGateway},
		{ErrRequestTimeout, http.StatusServiceUnavailable},
		{ErrInvalidToken, http.StatusUnauthorized},
		{ErrInsufficientPrivilege, http.StatusForbidden},
		{"XYZ_999", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.code))
		})
	}
}

func TestWriteEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteEnvelope(rec, ErrMissingRequiredData, "no deal id provided")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Status)
	assert.Equal(t, "error", body.StatusMsg)
	assert.Equal(t, "no deal id provided", body.Message)
	assert.Equal(t, ErrMissingRequiredData, body.Code)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, ErrNotFound, "deal 3", map[string]int64{"deal_id": 3})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":"RES_001","message":"deal 3","details":{"deal_id":3}}`, rec.Body.String())
}

func TestFromError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrNotFound).Code)

	apiErr := FromError(errors.New("boom"), ErrExternalService)
	assert.Equal(t, ErrExternalService, apiErr.Code)
	assert.Equal(t, "boom", apiErr.Message)
}

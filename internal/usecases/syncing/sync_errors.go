package syncing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/deal-mirror-api/pkg/apiErrors"
)

// Erros específicos do contexto de sincronização
var (
	// Erros de validação
	ErrMissingDealID    = errors.New("no deal id provided")
	ErrInvalidDealID    = errors.New("deal id must be a positive integer")
	ErrNoMatchingRecord = errors.New("no matching record")

	// Erros de serviços externos
	ErrCredentials = errors.New("error resolving bitrix credentials")
	ErrRemoteFetch = errors.New("error fetching deals from bitrix")

	// Erros de banco de dados
	ErrStore = errors.New("deal store operation error")
)

// SyncError é um erro com contexto adicional para a sincronização
type SyncError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	DealID  int64  // ID do deal envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *SyncError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func NewSyncError(err error, code string, details string) *SyncError {
	return &SyncError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewSyncErrorWithID(err error, code string, dealID int64, details string) *SyncError {
	return &SyncError{
		Err:     err,
		Code:    code,
		DealID:  dealID,
		Details: details,
	}
}

// codeFor mapeia os erros base para os códigos da API
func codeFor(err error) string {
	switch {
	case errors.Is(err, ErrMissingDealID):
		return apiErrors.ErrMissingRequiredData
	case errors.Is(err, ErrInvalidDealID):
		return apiErrors.ErrInvalidFormat
	case errors.Is(err, ErrNoMatchingRecord):
		return apiErrors.ErrNotFound
	case errors.Is(err, ErrCredentials):
		return apiErrors.ErrInternalServer
	case errors.Is(err, ErrRemoteFetch):
		return apiErrors.ErrExternalService
	case errors.Is(err, ErrStore):
		return apiErrors.ErrDatabaseOperation
	default:
		return apiErrors.ErrInternalServer
	}
}

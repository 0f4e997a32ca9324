package syncing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix"
	"github.com/vfg2006/deal-mirror-api/infrastructure/metrics"
	"github.com/vfg2006/deal-mirror-api/infrastructure/repository"
	"github.com/vfg2006/deal-mirror-api/internal/config"
	"github.com/vfg2006/deal-mirror-api/internal/domain"
	"github.com/vfg2006/deal-mirror-api/pkg/apiErrors"
	"github.com/vfg2006/deal-mirror-api/pkg/log"
)

// Nomes das operações usados em logs e métricas
const (
	OperationImportAll = "import_all"
	OperationImportOne = "import_one"
	OperationUpdateOne = "update_one"
	OperationDeleteOne = "delete_one"
	OperationList      = "list"
	OperationGet       = "get"
	OperationClear     = "clear"
)

type DealSyncer interface {
	ImportAll(ctx context.Context) (*domain.SyncResult, error)
	ImportOne(ctx context.Context, ref domain.DealRef) (*domain.SyncResult, error)
	UpdateOne(ctx context.Context, ref domain.DealRef) (*domain.SyncResult, error)
	DeleteOne(ctx context.Context, ref domain.DealRef) (*domain.SyncResult, error)
	ListDeals(ctx context.Context) ([]*domain.Deal, error)
	GetDeal(ctx context.Context, ref domain.DealRef) (*domain.Deal, error)
	ClearDeals(ctx context.Context) (*domain.SyncResult, error)
}

type Service struct {
	connector bitrix.Connector
	repo      repository.DealRepository
	mapper    *Mapper
	scope     int64
	metrics   *metrics.DealMetrics
}

func NewService(
	connector bitrix.Connector,
	repo repository.DealRepository,
	cfg config.Bitrix,
	m *metrics.DealMetrics,
) DealSyncer {
	return &Service{
		connector: connector,
		repo:      repo,
		mapper:    NewMapper(cfg),
		scope:     cfg.Scope(),
		metrics:   m,
	}
}

// ParseDealID valida o ID recebido pelo webhook
func ParseDealID(ref domain.DealRef) (int64, error) {
	raw := ref.Raw()
	if raw == "" {
		return 0, NewSyncError(ErrMissingDealID, apiErrors.ErrMissingRequiredData, "")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewSyncError(ErrInvalidDealID, apiErrors.ErrInvalidFormat, fmt.Sprintf("valor recebido: %q", raw))
	}

	return id, nil
}

func (s *Service) ImportAll(ctx context.Context) (result *domain.SyncResult, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordOperation(OperationImportAll, started, err) }()

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"operation": OperationImportAll,
		"scope":     s.scope,
	})

	source, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	raws, err := source.FetchAll(ctx, s.scope)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar deals no Bitrix")
		return nil, NewSyncError(ErrRemoteFetch, apiErrors.ErrExternalService, err.Error())
	}

	deals, rejected := s.mapper.MapAll(raws)

	upsert, err := s.repo.UpsertAll(ctx, deals)
	if err != nil {
		logger.WithError(err).Error("Erro ao gravar deals no banco de dados")
		return nil, NewSyncError(ErrStore, apiErrors.ErrDatabaseOperation, err.Error())
	}

	result = &domain.SyncResult{
		Fetched:  len(raws),
		Saved:    upsert.Saved,
		Failed:   upsert.Failed,
		Rejected: rejected,
		Message: fmt.Sprintf("Deals from %d %s successfully added to DB: %d saved, %d failed, %d rejected",
			s.scope, scopeLabel(source.Variant()), upsert.Saved, upsert.Failed, rejected),
	}
	s.metrics.RecordCounts(result.Fetched, result.Saved, result.Failed, result.Rejected)

	logger.WithFields(log.Fields{
		"variant":  source.Variant(),
		"fetched":  result.Fetched,
		"saved":    result.Saved,
		"failed":   result.Failed,
		"rejected": result.Rejected,
	}).Info("Importação de deals concluída")

	return result, nil
}

func (s *Service) ImportOne(ctx context.Context, ref domain.DealRef) (result *domain.SyncResult, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordOperation(OperationImportOne, started, err) }()

	id, err := ParseDealID(ref)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"operation": OperationImportOne,
		"deal_id":   id,
	})

	source, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := source.FetchOne(ctx, s.scope, id)
	if err != nil {
		return nil, NewSyncErrorWithID(ErrRemoteFetch, apiErrors.ErrExternalService, id, err.Error())
	}

	deal, ok := s.mapper.Map(raw)
	if !ok {
		logger.Warn("Deal não encontrado ou inválido, nada a gravar")
		s.metrics.RecordCounts(countFetched(raw), 0, 0, countFetched(raw))
		return &domain.SyncResult{
			Fetched:  countFetched(raw),
			Rejected: countFetched(raw),
			Message:  fmt.Sprintf("Deal %d not found in CRM or rejected, nothing added to DB", id),
		}, nil
	}

	upsert, err := s.repo.UpsertAll(ctx, []*domain.Deal{deal})
	if err != nil {
		logger.WithError(err).Error("Erro ao gravar deal no banco de dados")
		return nil, NewSyncErrorWithID(ErrStore, apiErrors.ErrDatabaseOperation, id, err.Error())
	}

	if upsert.Failed > 0 {
		return nil, NewSyncErrorWithID(ErrStore, apiErrors.ErrDatabaseOperation, id, "falha ao gravar o deal")
	}

	s.metrics.RecordCounts(1, upsert.Saved, upsert.Failed, 0)
	logger.Info("Deal importado com sucesso")

	return &domain.SyncResult{
		Fetched: 1,
		Saved:   upsert.Saved,
		Message: fmt.Sprintf("Deal %d successfully added to DB", id),
	}, nil
}

func (s *Service) UpdateOne(ctx context.Context, ref domain.DealRef) (result *domain.SyncResult, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordOperation(OperationUpdateOne, started, err) }()

	id, err := ParseDealID(ref)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"operation": OperationUpdateOne,
		"deal_id":   id,
	})

	source, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := source.FetchOne(ctx, s.scope, id)
	if err != nil {
		return nil, NewSyncErrorWithID(ErrRemoteFetch, apiErrors.ErrExternalService, id, err.Error())
	}

	deal, ok := s.mapper.MapForUpdate(raw)
	if !ok {
		logger.Warn("Nenhum registro correspondente para atualizar")
		return nil, NewSyncErrorWithID(ErrNoMatchingRecord, apiErrors.ErrNotFound, id,
			fmt.Sprintf("deal %d não encontrado no escopo %d", id, s.scope))
	}

	patch := domain.PatchFromDeal(deal)
	if patch.IsEmpty() {
		logger.Warn("Registro remoto sem campos preenchidos, nada para atualizar")
		return &domain.SyncResult{
			Fetched: 1,
			Message: fmt.Sprintf("Deal %d has no filled fields, nothing updated", id),
		}, nil
	}

	updated, err := s.repo.UpdateFields(ctx, id, patch)
	if err != nil {
		logger.WithError(err).Error("Erro ao atualizar deal no banco de dados")
		return nil, NewSyncErrorWithID(ErrStore, apiErrors.ErrDatabaseOperation, id, err.Error())
	}

	if !updated {
		logger.Warn("Deal não está no banco local, nenhuma linha alterada")
		return &domain.SyncResult{
			Fetched: 1,
			Message: fmt.Sprintf("Deal %d is not cached in DB, nothing updated", id),
		}, nil
	}

	logger.Info("Deal atualizado com sucesso")

	return &domain.SyncResult{
		Fetched: 1,
		Saved:   1,
		Message: fmt.Sprintf("Deal %d successfully updated in DB", id),
	}, nil
}

func (s *Service) DeleteOne(ctx context.Context, ref domain.DealRef) (result *domain.SyncResult, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordOperation(OperationDeleteOne, started, err) }()

	id, err := ParseDealID(ref)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithField("deal_id", id).WithError(err).Error("Erro ao remover deal do banco de dados")
		return nil, NewSyncErrorWithID(ErrStore, apiErrors.ErrDatabaseOperation, id, err.Error())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"operation": OperationDeleteOne,
		"deal_id":   id,
		"deleted":   deleted,
	}).Info("Remoção de deal concluída")

	return &domain.SyncResult{
		Saved:   int(deleted),
		Message: fmt.Sprintf("Deal %d successfully deleted from DB", id),
	}, nil
}

func (s *Service) ListDeals(ctx context.Context) (deals []*domain.Deal, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordOperation(OperationList, started, err) }()

	deals, err = s.repo.ListAll(ctx)
	if err != nil {
		return nil, NewSyncError(ErrStore, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return deals, nil
}

func (s *Service) GetDeal(ctx context.Context, ref domain.DealRef) (deal *domain.Deal, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordOperation(OperationGet, started, err) }()

	id, err := ParseDealID(ref)
	if err != nil {
		return nil, err
	}

	deal, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, NewSyncErrorWithID(ErrStore, apiErrors.ErrDatabaseOperation, id, err.Error())
	}

	if deal == nil {
		return nil, NewSyncErrorWithID(ErrNoMatchingRecord, apiErrors.ErrNotFound, id,
			fmt.Sprintf("deal %d não está no banco local", id))
	}

	return deal, nil
}

func (s *Service) ClearDeals(ctx context.Context) (result *domain.SyncResult, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordOperation(OperationClear, started, err) }()

	deleted, err := s.repo.Clear(ctx)
	if err != nil {
		return nil, NewSyncError(ErrStore, apiErrors.ErrDatabaseOperation, err.Error())
	}

	log.ForContext(ctx).WithField("deleted", deleted).Warn("Tabela de deals esvaziada")

	return &domain.SyncResult{
		Saved:   int(deleted),
		Message: fmt.Sprintf("%d deals deleted from DB", deleted),
	}, nil
}

func (s *Service) connect(ctx context.Context) (bitrix.DealSource, error) {
	source, err := s.connector.Connect(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao obter credenciais do Bitrix")
		return nil, NewSyncError(ErrCredentials, apiErrors.ErrInternalServer, err.Error())
	}
	return source, nil
}

// AsSyncError extrai o SyncError de err, convertendo erros desconhecidos em erro interno
func AsSyncError(err error) *SyncError {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr
	}
	return NewSyncError(err, codeFor(err), "")
}

func scopeLabel(variant domain.SourceVariant) string {
	if variant == domain.SourceVariantSmartProcess {
		return "smart process"
	}
	return "funnel"
}

func countFetched(raw map[string]any) int {
	if raw == nil {
		return 0
	}
	return 1
}

package bitrix

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix/bitrixclient"
	bitrixdomain "github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix/domain"
	"github.com/vfg2006/deal-mirror-api/internal/config"
	"github.com/vfg2006/deal-mirror-api/internal/domain"
)

// DealSource lê registros de deal do CRM em um dos formatos suportados
type DealSource interface {
	Variant() domain.SourceVariant
	// FetchAll retorna todos os registros do escopo ou erro, nunca uma lista parcial
	FetchAll(ctx context.Context, scope int64) ([]bitrixdomain.RawRecord, error)
	// FetchOne retorna nil, nil quando o registro não existe ou não pôde ser lido
	FetchOne(ctx context.Context, scope, id int64) (bitrixdomain.RawRecord, error)
}

// NewSource escolhe a implementação conforme a variante configurada
func NewSource(cfg config.Bitrix, client bitrixclient.Client) (DealSource, error) {
	switch cfg.Variant {
	case domain.SourceVariantFunnel:
		return NewFunnelSource(client, cfg.DocumentsFieldKey, cfg.CityFieldKey), nil
	case domain.SourceVariantSmartProcess:
		return NewSmartProcessSource(client, cfg.DocumentsFieldKey), nil
	default:
		return nil, fmt.Errorf("variante de origem desconhecida: %q", cfg.Variant)
	}
}

// FunnelSource usa crm.deal.* filtrando pelo funil (CATEGORY_ID)
type FunnelSource struct {
	client       bitrixclient.Client
	documentsKey string
	cityKey      string
}

func NewFunnelSource(client bitrixclient.Client, documentsKey, cityKey string) *FunnelSource {
	return &FunnelSource{
		client:       client,
		documentsKey: documentsKey,
		cityKey:      cityKey,
	}
}

func (s *FunnelSource) Variant() domain.SourceVariant {
	return domain.SourceVariantFunnel
}

func (s *FunnelSource) selectFields() []string {
	fields := []string{
		bitrixdomain.FieldDealID,
		bitrixdomain.FieldDealTitle,
		bitrixdomain.FieldDealDateCreate,
		bitrixdomain.FieldDealCategoryID,
	}
	if s.documentsKey != "" {
		fields = append(fields, s.documentsKey)
	}
	if s.cityKey != "" {
		fields = append(fields, s.cityKey)
	}
	return fields
}

func (s *FunnelSource) FetchAll(ctx context.Context, scope int64) ([]bitrixdomain.RawRecord, error) {
	fields := s.selectFields()

	return fetchAllPages(ctx, "crm.deal.list", func(ctx context.Context, start int) (*bitrixdomain.ListPage, error) {
		return s.client.ListDeals(ctx, bitrixdomain.ListParams{
			Filter: map[string]any{bitrixdomain.FieldDealCategoryID: scope},
			Select: fields,
			Start:  start,
		})
	})
}

func (s *FunnelSource) FetchOne(ctx context.Context, scope, id int64) (bitrixdomain.RawRecord, error) {
	record, err := s.client.GetDeal(ctx, id)
	return degradeToNotFound(s.Variant(), id, record, err)
}

// SmartProcessSource usa crm.item.* do tipo de entidade configurado
type SmartProcessSource struct {
	client       bitrixclient.Client
	documentsKey string
}

func NewSmartProcessSource(client bitrixclient.Client, documentsKey string) *SmartProcessSource {
	return &SmartProcessSource{
		client:       client,
		documentsKey: documentsKey,
	}
}

func (s *SmartProcessSource) Variant() domain.SourceVariant {
	return domain.SourceVariantSmartProcess
}

func (s *SmartProcessSource) selectFields() []string {
	fields := []string{
		bitrixdomain.FieldItemID,
		bitrixdomain.FieldItemTitle,
		bitrixdomain.FieldItemCreatedTime,
		bitrixdomain.FieldItemEntityTypeID,
	}
	if s.documentsKey != "" {
		fields = append(fields, s.documentsKey)
	}
	return fields
}

func (s *SmartProcessSource) FetchAll(ctx context.Context, scope int64) ([]bitrixdomain.RawRecord, error) {
	fields := s.selectFields()

	return fetchAllPages(ctx, "crm.item.list", func(ctx context.Context, start int) (*bitrixdomain.ListPage, error) {
		return s.client.ListItems(ctx, scope, bitrixdomain.ListParams{
			Select: fields,
			Start:  start,
		})
	})
}

func (s *SmartProcessSource) FetchOne(ctx context.Context, scope, id int64) (bitrixdomain.RawRecord, error) {
	record, err := s.client.GetItem(ctx, scope, id)
	return degradeToNotFound(s.Variant(), id, record, err)
}

// degradeToNotFound converte falhas de leitura pontual em "não encontrado", registrando a causa
func degradeToNotFound(variant domain.SourceVariant, id int64, record bitrixdomain.RawRecord, err error) (bitrixdomain.RawRecord, error) {
	if err == nil {
		return record, nil
	}

	entry := logrus.WithFields(logrus.Fields{
		"variant": variant,
		"deal_id": id,
	}).WithError(err)

	if errors.Is(err, bitrixdomain.ErrNotFound) {
		entry.Info("Registro não encontrado no Bitrix")
	} else {
		entry.Error("Erro ao buscar registro no Bitrix, tratando como não encontrado")
	}

	return nil, nil
}

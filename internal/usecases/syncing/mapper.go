package syncing

import (
	"strings"

	"github.com/spf13/cast"
	bitrixdomain "github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix/domain"
	"github.com/vfg2006/deal-mirror-api/internal/config"
	"github.com/vfg2006/deal-mirror-api/internal/domain"
	"github.com/vfg2006/deal-mirror-api/pkg/utils"
)

// recordShape são as chaves de cada variante
type recordShape struct {
	id       string
	title    string
	date     string
	category string
}

var shapes = map[domain.SourceVariant]recordShape{
	domain.SourceVariantFunnel: {
		id:       bitrixdomain.FieldDealID,
		title:    bitrixdomain.FieldDealTitle,
		date:     bitrixdomain.FieldDealDateCreate,
		category: bitrixdomain.FieldDealCategoryID,
	},
	domain.SourceVariantSmartProcess: {
		id:       bitrixdomain.FieldItemID,
		title:    bitrixdomain.FieldItemTitle,
		date:     bitrixdomain.FieldItemCreatedTime,
		category: bitrixdomain.FieldItemEntityTypeID,
	},
}

// Mapper normaliza registros do CRM em domain.Deal
type Mapper struct {
	variant      domain.SourceVariant
	shape        recordShape
	scope        int64
	documentsKey string
	cityKey      string
}

func NewMapper(cfg config.Bitrix) *Mapper {
	m := &Mapper{
		variant:      cfg.Variant,
		shape:        shapes[cfg.Variant],
		scope:        cfg.Scope(),
		documentsKey: cfg.DocumentsFieldKey,
	}

	// smart process não tem cidade
	if cfg.Variant == domain.SourceVariantFunnel {
		m.cityKey = cfg.CityFieldKey
	}

	return m
}

// Map converte um registro da importação. Se o registro informa a categoria e ela
// difere da configurada, é rejeitado.
func (m *Mapper) Map(raw bitrixdomain.RawRecord) (*domain.Deal, bool) {
	return m.mapRecord(raw, false)
}

// MapForUpdate exige que o registro informe a categoria e que ela seja a configurada
func (m *Mapper) MapForUpdate(raw bitrixdomain.RawRecord) (*domain.Deal, bool) {
	return m.mapRecord(raw, true)
}

// MapAll descarta os rejeitados e retorna quantos foram descartados
func (m *Mapper) MapAll(raws []bitrixdomain.RawRecord) ([]*domain.Deal, int) {
	deals := make([]*domain.Deal, 0, len(raws))
	rejected := 0

	for _, raw := range raws {
		deal, ok := m.Map(raw)
		if !ok {
			rejected++
			continue
		}
		deals = append(deals, deal)
	}

	return deals, rejected
}

func (m *Mapper) mapRecord(raw bitrixdomain.RawRecord, strictCategory bool) (*domain.Deal, bool) {
	if raw == nil || m.shape.id == "" {
		return nil, false
	}

	if !m.categoryMatches(raw, strictCategory) {
		return nil, false
	}

	rawID, ok := nonNil(raw, m.shape.id)
	if !ok {
		return nil, false
	}
	id, err := cast.ToInt64E(rawID)
	if err != nil || id <= 0 {
		return nil, false
	}

	rawTitle, ok := nonNil(raw, m.shape.title)
	if !ok {
		return nil, false
	}

	rawDate, ok := nonNil(raw, m.shape.date)
	if !ok {
		return nil, false
	}

	rawDocuments, ok := raw[m.documentsKey]
	if m.documentsKey == "" || !ok {
		return nil, false
	}

	deal := &domain.Deal{
		ID:           id,
		Title:        cast.ToString(rawTitle),
		DateCreate:   utils.TruncateDate(cast.ToString(rawDate)),
		DocumentsIDs: documentsValue(rawDocuments),
	}

	if m.cityKey != "" {
		if rawCity, ok := nonNil(raw, m.cityKey); ok {
			city := cast.ToString(rawCity)
			deal.City = &city
		}
	}

	return deal, true
}

func (m *Mapper) categoryMatches(raw bitrixdomain.RawRecord, strict bool) bool {
	rawCategory, ok := nonNil(raw, m.shape.category)
	if !ok {
		return !strict
	}

	category, err := cast.ToInt64E(rawCategory)
	if err != nil {
		return false
	}

	return category == m.scope
}

func nonNil(raw bitrixdomain.RawRecord, key string) (any, bool) {
	value, ok := raw[key]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// documentsValue junta listas com vírgula e copia valores simples como texto
func documentsValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			parts = append(parts, cast.ToString(item))
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(v, ",")
	case bool:
		// userfield vazio chega como false
		if !v {
			return ""
		}
		return cast.ToString(v)
	default:
		return cast.ToString(v)
	}
}

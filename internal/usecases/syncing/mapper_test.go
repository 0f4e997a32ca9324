package syncing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bitrixdomain "github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix/domain"
	"github.com/vfg2006/deal-mirror-api/internal/config"
	"github.com/vfg2006/deal-mirror-api/internal/domain"
)

var funnelConfig = config.Bitrix{
	Variant:           domain.SourceVariantFunnel,
	FunnelID:          7,
	DocumentsFieldKey: "UF_CRM_DOCS",
	CityFieldKey:      "UF_CRM_CITY",
}

var smartProcessConfig = config.Bitrix{
	Variant:           domain.SourceVariantSmartProcess,
	EntityTypeID:      1040,
	DocumentsFieldKey: "ufCrm5Docs",
	CityFieldKey:      "UF_CRM_CITY",
}

func funnelRecord(id string) bitrixdomain.RawRecord {
	return bitrixdomain.RawRecord{
		"ID":          id,
		"TITLE":       "Deal " + id,
		"DATE_CREATE": "2024-03-01T10:15:00+03:00",
		"CATEGORY_ID": "7",
		"UF_CRM_DOCS": []any{"12", "13"},
		"UF_CRM_CITY": "Kazan",
	}
}

func smartRecord(id float64) bitrixdomain.RawRecord {
	return bitrixdomain.RawRecord{
		"id":           id,
		"title":        "Item",
		"createdTime":  "2024-04-02T08:00:00+03:00",
		"entityTypeId": float64(1040),
		"ufCrm5Docs":   "55",
	}
}

func TestMapper_Map_Funnel(t *testing.T) {
	mapper := NewMapper(funnelConfig)

	deal, ok := mapper.Map(funnelRecord("42"))
	require.True(t, ok)

	assert.Equal(t, int64(42), deal.ID)
	assert.Equal(t, "Deal 42", deal.Title)
	assert.Equal(t, "2024-03-01", deal.DateCreate)
	assert.Equal(t, "12,13", deal.DocumentsIDs)
	require.NotNil(t, deal.City)
	assert.Equal(t, "Kazan", *deal.City)
}

func TestMapper_Map_SmartProcess(t *testing.T) {
	mapper := NewMapper(smartProcessConfig)

	deal, ok := mapper.Map(smartRecord(9))
	require.True(t, ok)

	assert.Equal(t, int64(9), deal.ID)
	assert.Equal(t, "Item", deal.Title)
	assert.Equal(t, "2024-04-02", deal.DateCreate, "data truncada também na importação")
	assert.Equal(t, "55", deal.DocumentsIDs)
	assert.Nil(t, deal.City, "smart process não tem cidade")
}

func TestMapper_Map_Rejections(t *testing.T) {
	mapper := NewMapper(funnelConfig)

	without := func(key string) bitrixdomain.RawRecord {
		record := funnelRecord("1")
		delete(record, key)
		return record
	}
	with := func(key string, value any) bitrixdomain.RawRecord {
		record := funnelRecord("1")
		record[key] = value
		return record
	}

	tests := []struct {
		name   string
		record bitrixdomain.RawRecord
	}{
		{name: "registro nulo", record: nil},
		{name: "sem ID", record: without("ID")},
		{name: "ID não numérico", record: with("ID", "abc")},
		{name: "ID zero", record: with("ID", "0")},
		{name: "sem título", record: without("TITLE")},
		{name: "título nulo", record: with("TITLE", nil)},
		{name: "sem data", record: without("DATE_CREATE")},
		{name: "sem campo de documentos", record: without("UF_CRM_DOCS")},
		{name: "outro funil", record: with("CATEGORY_ID", "8")},
		{name: "categoria inválida", record: with("CATEGORY_ID", "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal, ok := mapper.Map(tt.record)
			assert.False(t, ok)
			assert.Nil(t, deal)
		})
	}
}

func TestMapper_Map_OptionalFields(t *testing.T) {
	mapper := NewMapper(funnelConfig)

	record := funnelRecord("5")
	delete(record, "CATEGORY_ID")
	delete(record, "UF_CRM_CITY")
	record["UF_CRM_DOCS"] = nil

	deal, ok := mapper.Map(record)
	require.True(t, ok, "categoria ausente não rejeita na importação")
	assert.Empty(t, deal.DocumentsIDs)
	assert.Nil(t, deal.City)
}

func TestMapper_MapForUpdate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.Bitrix
		record bitrixdomain.RawRecord
		wantOK bool
	}{
		{name: "funil correto", cfg: funnelConfig, record: funnelRecord("1"), wantOK: true},
		{
			name: "funil diferente",
			cfg:  funnelConfig,
			record: func() bitrixdomain.RawRecord {
				r := funnelRecord("1")
				r["CATEGORY_ID"] = "3"
				return r
			}(),
		},
		{
			name: "categoria ausente",
			cfg:  funnelConfig,
			record: func() bitrixdomain.RawRecord {
				r := funnelRecord("1")
				delete(r, "CATEGORY_ID")
				return r
			}(),
		},
		{name: "smart process correto", cfg: smartProcessConfig, record: smartRecord(3), wantOK: true},
		{
			name: "outro tipo de entidade",
			cfg:  smartProcessConfig,
			record: func() bitrixdomain.RawRecord {
				r := smartRecord(3)
				r["entityTypeId"] = float64(31)
				return r
			}(),
		},
		{name: "não encontrado", cfg: funnelConfig, record: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal, ok := NewMapper(tt.cfg).MapForUpdate(tt.record)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, deal)
			}
		})
	}
}

func TestMapper_MapAll(t *testing.T) {
	mapper := NewMapper(funnelConfig)

	other := funnelRecord("2")
	other["CATEGORY_ID"] = "99"

	deals, rejected := mapper.MapAll([]bitrixdomain.RawRecord{funnelRecord("1"), other, nil, funnelRecord("3")})

	assert.Equal(t, 2, rejected)
	require.Len(t, deals, 2)
	assert.Equal(t, int64(1), deals[0].ID)
	assert.Equal(t, int64(3), deals[1].ID)
}

func TestDocumentsValue(t *testing.T) {
	assert.Equal(t, "", documentsValue(nil))
	assert.Equal(t, "", documentsValue(false))
	assert.Equal(t, "", documentsValue([]any{}))
	assert.Equal(t, "1,2", documentsValue([]any{float64(1), "2", nil}))
	assert.Equal(t, "a,b", documentsValue([]string{"a", "b"}))
	assert.Equal(t, "17", documentsValue(float64(17)))
	assert.Equal(t, "x", documentsValue("x"))
}

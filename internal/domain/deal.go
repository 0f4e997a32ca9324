package domain

import (
	"strings"
)

// SourceVariant identifica o formato de registro remoto usado pelo CRM
type SourceVariant string

const (
	// SourceVariantFunnel usa a API legada de negócios (crm.deal.*) filtrada por funil
	SourceVariantFunnel SourceVariant = "funnel"
	// SourceVariantSmartProcess usa a API de itens (crm.item.*) filtrada por entityTypeId
	SourceVariantSmartProcess SourceVariant = "smart_process"
)

// Deal é o registro canônico espelhado no banco local
type Deal struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	DateCreate   string  `json:"date_create"`
	DocumentsIDs string  `json:"documents_ids"`
	City         *string `json:"city_field_value"`
}

// DealPatch contém apenas os campos presentes numa atualização parcial
type DealPatch struct {
	Title        *string
	DateCreate   *string
	DocumentsIDs *string
}

func (p DealPatch) IsEmpty() bool {
	return p.Title == nil && p.DateCreate == nil && p.DocumentsIDs == nil
}

// PatchFromDeal monta um patch só com os campos preenchidos do deal. Campos em
// branco ficam de fora e mantêm o valor já gravado.
func PatchFromDeal(deal *Deal) DealPatch {
	return DealPatch{
		Title:        nonBlank(deal.Title),
		DateCreate:   nonBlank(deal.DateCreate),
		DocumentsIDs: nonBlank(deal.DocumentsIDs),
	}
}

func nonBlank(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

// DealRef carrega os dois locais de onde o webhook pode enviar o ID
type DealRef struct {
	QueryID string
	BodyID  string
}

// Raw retorna o ID informado, preferindo a query string ao corpo
func (r DealRef) Raw() string {
	if id := strings.TrimSpace(r.QueryID); id != "" {
		return id
	}
	return strings.TrimSpace(r.BodyID)
}

// UpsertResult resume uma gravação em lote
type UpsertResult struct {
	Saved  int
	Failed int
}

// SyncResult é o retorno das operações de sincronização
type SyncResult struct {
	Fetched  int    `json:"fetched"`
	Saved    int    `json:"saved"`
	Failed   int    `json:"failed"`
	Rejected int    `json:"rejected"`
	Message  string `json:"message"`
}

package bitrixdomain

import (
	"errors"
	"fmt"
	"strings"
)

// Campos do formato legado (crm.deal.*)
const (
	FieldDealID         = "ID"
	FieldDealTitle      = "TITLE"
	FieldDealDateCreate = "DATE_CREATE"
	FieldDealCategoryID = "CATEGORY_ID"
)

// Campos do formato de smart process (crm.item.*)
const (
	FieldItemID           = "id"
	FieldItemTitle        = "title"
	FieldItemCreatedTime  = "createdTime"
	FieldItemEntityTypeID = "entityTypeId"
)

var ErrNotFound = errors.New("bitrix: record not found")

// RawRecord é o registro como chega do CRM, antes da normalização
type RawRecord map[string]any

// ErrorResponse é o corpo de erro padrão da API REST
type ErrorResponse struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *ErrorResponse) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("bitrix: %s", e.Code)
	}
	return fmt.Sprintf("bitrix: %s: %s", e.Code, e.Description)
}

// IsNotFound identifica respostas de registro inexistente
func (e *ErrorResponse) IsNotFound() bool {
	return e.Code == "NOT_FOUND" || strings.Contains(strings.ToLower(e.Description), "not found")
}

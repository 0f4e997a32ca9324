package handler

import (
	"io"
	"mime"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
	"github.com/vfg2006/deal-mirror-api/internal/domain"
	"github.com/vfg2006/deal-mirror-api/internal/usecases/syncing"
	"github.com/vfg2006/deal-mirror-api/pkg/apiErrors"
	"github.com/vfg2006/deal-mirror-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// bodyIDField é o campo enviado pelos webhooks de evento do Bitrix
const bodyIDField = "data[FIELDS][ID]"

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Status    bool               `json:"status"`
	StatusMsg string             `json:"status_msg"`
	Message   string             `json:"message"`
	Result    *domain.SyncResult `json:"result,omitempty"`
}

type dealsResponse struct {
	Status    bool           `json:"status"`
	StatusMsg string         `json:"status_msg"`
	Deals     []*domain.Deal `json:"deals"`
}

type dealResponse struct {
	Status    bool         `json:"status"`
	StatusMsg string       `json:"status_msg"`
	Deal      *domain.Deal `json:"deal"`
}

// ImportAllDeals busca todos os deals do escopo configurado e grava no banco
func ImportAllDeals(service syncing.DealSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.ImportAll(r.Context())
		if err != nil {
			writeSyncError(w, r, syncing.OperationImportAll, err)
			return
		}
		writeResult(w, result)
	}
}

func ListDeals(service syncing.DealSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deals, err := service.ListDeals(r.Context())
		if err != nil {
			writeSyncError(w, r, syncing.OperationList, err)
			return
		}
		if deals == nil {
			deals = []*domain.Deal{}
		}
		writeJSON(w, http.StatusOK, dealsResponse{Status: true, StatusMsg: "success", Deals: deals})
	}
}

func GetDeal(service syncing.DealSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deal, err := service.GetDeal(r.Context(), dealRefFromRequest(r))
		if err != nil {
			writeSyncError(w, r, syncing.OperationGet, err)
			return
		}
		writeJSON(w, http.StatusOK, dealResponse{Status: true, StatusMsg: "success", Deal: deal})
	}
}

// AddDeal trata o webhook de criação de deal
func AddDeal(service syncing.DealSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.ImportOne(r.Context(), dealRefFromRequest(r))
		if err != nil {
			writeSyncError(w, r, syncing.OperationImportOne, err)
			return
		}
		writeResult(w, result)
	}
}

// UpdateDeal trata o webhook de alteração de deal
func UpdateDeal(service syncing.DealSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.UpdateOne(r.Context(), dealRefFromRequest(r))
		if err != nil {
			writeSyncError(w, r, syncing.OperationUpdateOne, err)
			return
		}
		writeResult(w, result)
	}
}

// DeleteDeal trata o webhook de remoção de deal
func DeleteDeal(service syncing.DealSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.DeleteOne(r.Context(), dealRefFromRequest(r))
		if err != nil {
			writeSyncError(w, r, syncing.OperationDeleteOne, err)
			return
		}
		writeResult(w, result)
	}
}

func ClearDeals(service syncing.DealSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.ClearDeals(r.Context())
		if err != nil {
			writeSyncError(w, r, syncing.OperationClear, err)
			return
		}
		writeResult(w, result)
	}
}

// dealRefFromRequest lê o ID da query (ID) e do corpo (data[FIELDS][ID]).
// O corpo pode vir como formulário ou JSON, plano ou aninhado.
func dealRefFromRequest(r *http.Request) domain.DealRef {
	ref := domain.DealRef{QueryID: r.URL.Query().Get("ID")}
	if strings.TrimSpace(ref.QueryID) != "" || r.Body == nil || r.Body == http.NoBody {
		return ref
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		ref.BodyID = idFromJSON(io.LimitReader(r.Body, maxBodyBytes))
		return ref
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Corpo da requisição ilegível")
		return ref
	}
	ref.BodyID = r.PostForm.Get(bodyIDField)

	return ref
}

func idFromJSON(body io.Reader) string {
	var payload map[string]any
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}

	if value, ok := payload[bodyIDField]; ok {
		return cast.ToString(value)
	}

	data, _ := payload["data"].(map[string]any)
	fields, _ := data["FIELDS"].(map[string]any)
	if value, ok := fields["ID"]; ok {
		return cast.ToString(value)
	}

	return ""
}

func writeResult(w http.ResponseWriter, result *domain.SyncResult) {
	writeJSON(w, http.StatusOK, messageResponse{
		Status:    true,
		StatusMsg: "success",
		Message:   result.Message,
		Result:    result,
	})
}

// writeSyncError loga o erro completo e responde com o envelope. Erros 5xx não expõem detalhes.
func writeSyncError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	syncErr := syncing.AsSyncError(err)
	status := apiErrors.StatusFor(syncErr.Code)

	logger := log.ForContext(r.Context()).WithFields(log.Fields{
		"operation":   operation,
		"status_code": status,
	}).WithError(err)
	if syncErr.DealID != 0 {
		logger = logger.WithField("deal_id", syncErr.DealID)
	}

	message := syncErr.Err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error("Erro ao processar requisição de deals")
		message = "server error"
	} else {
		logger.Warn("Requisição de deals rejeitada")
	}

	apiErrors.WriteEnvelope(w, syncErr.Code, message)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Warn("Erro ao escrever resposta")
	}
}

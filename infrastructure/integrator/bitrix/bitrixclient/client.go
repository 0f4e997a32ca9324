package bitrixclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	bitrixdomain "github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix/domain"
	"github.com/vfg2006/deal-mirror-api/infrastructure/metrics"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxErrorBody limita quanto do corpo de uma resposta inesperada vai para o erro
const maxErrorBody = 512

type Client interface {
	ListDeals(ctx context.Context, params bitrixdomain.ListParams) (*bitrixdomain.ListPage, error)
	GetDeal(ctx context.Context, id int64) (bitrixdomain.RawRecord, error)
	ListItems(ctx context.Context, entityTypeID int64, params bitrixdomain.ListParams) (*bitrixdomain.ListPage, error)
	GetItem(ctx context.Context, entityTypeID, id int64) (bitrixdomain.RawRecord, error)
}

type Options struct {
	Timeout    time.Duration
	Limiter    *rate.Limiter
	Metrics    *metrics.DealMetrics
	HTTPClient *http.Client
}

type BitrixClient struct {
	webhookURL string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.DealMetrics
}

// envelope é o formato de toda resposta da API REST
type envelope struct {
	Result           jsoniter.RawMessage `json:"result"`
	Total            int                 `json:"total"`
	Next             int                 `json:"next"`
	Error            string              `json:"error"`
	ErrorDescription string              `json:"error_description"`
}

// NewClient cria um cliente para o webhook de entrada informado
func NewClient(webhookURL string, opts Options) Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &BitrixClient{
		webhookURL: strings.TrimRight(strings.TrimSpace(webhookURL), "/"),
		httpClient: httpClient,
		limiter:    opts.Limiter,
		metrics:    opts.Metrics,
	}
}

func (c *BitrixClient) call(ctx context.Context, method string, payload any) (resp *envelope, err error) {
	started := time.Now()
	defer func() {
		c.metrics.RecordRemoteRequest(method, started, err)
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "aguardando limite de requisições")
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao serializar parâmetros de %s", method)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL+"/"+method+".json", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao executar %s", method)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler resposta de %s", method)
	}

	env := &envelope{}
	if err := json.Unmarshal(raw, env); err != nil {
		if httpResp.StatusCode != http.StatusOK {
			return nil, errors.Errorf("%s falhou com status %s: %s", method, httpResp.Status, truncate(raw))
		}
		return nil, errors.Wrapf(err, "erro ao decodificar resposta de %s", method)
	}

	if env.Error != "" || env.ErrorDescription != "" {
		apiErr := &bitrixdomain.ErrorResponse{Code: env.Error, Description: env.ErrorDescription}
		if apiErr.IsNotFound() {
			return nil, errors.Wrap(bitrixdomain.ErrNotFound, apiErr.Error())
		}
		return nil, errors.WithStack(apiErr)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("%s falhou com status %s", method, httpResp.Status)
	}

	logrus.WithFields(logrus.Fields{
		"method":      method,
		"total":       env.Total,
		"next":        env.Next,
		"duration_ms": time.Since(started).Milliseconds(),
	}).Debug("Resposta do Bitrix recebida")

	return env, nil
}

// decodeList aceita tanto o array de crm.deal.list quanto o {items: [...]} de crm.item.list
func decodeList(method string, env *envelope) (*bitrixdomain.ListPage, error) {
	page := &bitrixdomain.ListPage{Total: env.Total, Next: env.Next}

	trimmed := bytes.TrimSpace(env.Result)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return page, nil
	}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &page.Items); err != nil {
			return nil, errors.Wrapf(err, "erro ao decodificar itens de %s", method)
		}
		return page, nil
	}

	var wrapped struct {
		Items []bitrixdomain.RawRecord `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, errors.Wrapf(err, "erro ao decodificar itens de %s", method)
	}
	page.Items = wrapped.Items

	return page, nil
}

// decodeRecord aceita o objeto direto de crm.deal.get ou o {item: {...}} de crm.item.get
func decodeRecord(method string, env *envelope, wrapperKey string) (bitrixdomain.RawRecord, error) {
	trimmed := bytes.TrimSpace(env.Result)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var record bitrixdomain.RawRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, errors.Wrapf(err, "erro ao decodificar registro de %s", method)
	}

	if wrapperKey != "" {
		inner, ok := record[wrapperKey].(map[string]any)
		if !ok {
			return nil, nil
		}
		return bitrixdomain.RawRecord(inner), nil
	}

	return record, nil
}

func truncate(raw []byte) string {
	if len(raw) > maxErrorBody {
		return string(raw[:maxErrorBody]) + "..."
	}
	return string(raw)
}

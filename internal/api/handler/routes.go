package handler

import (
	"net/http"
	"path"

	"github.com/vfg2006/deal-mirror-api/internal/api/handler/router"
	"github.com/vfg2006/deal-mirror-api/internal/usecases/syncing"
	"github.com/vfg2006/deal-mirror-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

// Deals registra as rotas chamadas pelos webhooks do Bitrix sob baseURL.
// clear_deals passa por adminOnly.
func Deals(service syncing.DealSyncer, baseURL string, adminOnly func(http.Handler) http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    endpoint(baseURL, "get_deals_from_bx_insert_in_db"),
			Method:  http.MethodPost,
			Handler: ImportAllDeals(service),
		},
		{
			Path:    endpoint(baseURL, "get_deals_from_db"),
			Method:  http.MethodPost,
			Handler: ListDeals(service),
		},
		{
			Path:    endpoint(baseURL, "get_deal_from_db"),
			Method:  http.MethodPost,
			Handler: GetDeal(service),
		},
		{
			Path:    endpoint(baseURL, "add_deal_handler"),
			Method:  http.MethodPost,
			Handler: AddDeal(service),
		},
		{
			Path:    endpoint(baseURL, "update_deal_handler"),
			Method:  http.MethodPost,
			Handler: UpdateDeal(service),
		},
		{
			Path:    endpoint(baseURL, "delete_deal_handler"),
			Method:  http.MethodPost,
			Handler: DeleteDeal(service),
		},
		{
			Path:        endpoint(baseURL, "clear_deals"),
			Method:      http.MethodPost,
			Handler:     ClearDeals(service),
			Middlewares: guarded(adminOnly),
		},
	}
}

func CronJobs(scheduler SyncScheduler, baseURL string, adminOnly func(http.Handler) http.Handler) []router.Route {
	return []router.Route{
		{
			Path:        endpoint(baseURL, "cron/run"),
			Method:      http.MethodPost,
			Handler:     RunCronJob(scheduler),
			Middlewares: guarded(adminOnly),
		},
		{
			Path:        endpoint(baseURL, "cron/status"),
			Method:      http.MethodGet,
			Handler:     GetCronStatus(scheduler),
			Middlewares: guarded(adminOnly),
		},
	}
}

func Metrics(handler http.Handler) []router.Route {
	if handler == nil {
		return nil
	}
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

// guarded nunca deixa uma rota administrativa aberta: sem middleware, recusa tudo
func guarded(adminOnly func(http.Handler) http.Handler) []func(http.Handler) http.Handler {
	if adminOnly == nil {
		adminOnly = middleware.AuthMiddleware(nil)
	}
	return []func(http.Handler) http.Handler{adminOnly}
}

// endpoint monta "/<base>/<name>/"
func endpoint(baseURL, name string) string {
	return path.Join("/", baseURL, name) + "/"
}

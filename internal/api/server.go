package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/deal-mirror-api/internal/api/handler"
	"github.com/vfg2006/deal-mirror-api/internal/api/handler/router"
	"github.com/vfg2006/deal-mirror-api/internal/config"
	"github.com/vfg2006/deal-mirror-api/internal/usecases/authenticating"
	"github.com/vfg2006/deal-mirror-api/internal/usecases/syncing"
	"github.com/vfg2006/deal-mirror-api/pkg/middleware"
)

// timeoutBody é o envelope devolvido quando REQUEST_TIMEOUT estoura
const timeoutBody = `{"status":false,"status_msg":"error","message":"request timed out","code":"RES_002"}`

type Server struct {
	httpServer *http.Server
}

// Dependencies agrupa o que as rotas precisam. Scheduler, DB e MetricsHandler são opcionais.
// Sem Auth as rotas administrativas respondem 401.
type Dependencies struct {
	Deals          syncing.DealSyncer
	Scheduler      handler.SyncScheduler
	DB             handler.Pinger
	MetricsHandler http.Handler
	Auth           authenticating.Authenticator
}

func New(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.Deals == nil {
		return nil, fmt.Errorf("api: deals service is required")
	}

	adminOnly := middleware.AuthMiddleware(deps.Auth)

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(deps.DB)...),
		router.WithRoutes(handler.Deals(deps.Deals, cfg.Server.BaseURL, adminOnly)...),
		router.WithRoutes(handler.CronJobs(deps.Scheduler, cfg.Server.BaseURL, adminOnly)...),
		router.WithRoutes(handler.Metrics(deps.MetricsHandler)...),
	)

	logrus.WithField("routes", rt.Routes()).Debug("Rotas registradas")

	var app http.Handler = rt
	if cfg.Server.RequestTimeout > 0 {
		app = http.TimeoutHandler(rt, cfg.Server.RequestTimeout, timeoutBody)
	}

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           alice.New(middlewares...).Then(app),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa para testes
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithField("timeout", "15s").Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

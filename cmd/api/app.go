package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/deal-mirror-api/infrastructure/crypt"
	"github.com/vfg2006/deal-mirror-api/infrastructure/database"
	"github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix"
	"github.com/vfg2006/deal-mirror-api/infrastructure/metrics"
	"github.com/vfg2006/deal-mirror-api/infrastructure/repository"
	"github.com/vfg2006/deal-mirror-api/internal/config"
	"github.com/vfg2006/deal-mirror-api/internal/usecases/authenticating"
	"github.com/vfg2006/deal-mirror-api/internal/usecases/syncing"
	"github.com/vfg2006/deal-mirror-api/pkg/log"
)

// app reúne as dependências montadas a partir da configuração
type app struct {
	cfg            *config.Config
	conn           *database.Connection
	syncer         syncing.DealSyncer
	auth           authenticating.Authenticator
	metricsHandler http.Handler
}

// loadConfig carrega a configuração e aplica o log antes de qualquer outra coisa
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	err = log.Setup(log.Options{
		Level:      cfg.App.LogLevel,
		JSON:       cfg.App.LogJSONEnabled,
		File:       cfg.App.LogFile,
		MaxSizeMB:  cfg.App.LogMaxSizeMB,
		MaxBackups: cfg.App.LogMaxBackups,
		MaxAgeDays: cfg.App.LogMaxAgeDays,
	})
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logrus.SetLevel(logrus.InfoLevel)
	}

	return cfg, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cipher, err := crypt.NewCipher(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("SECRET_KEY inválida: %w", err)
	}

	conn, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao banco de dados: %w", err)
	}

	logrus.WithField("driver", conn.Driver()).Info("Conexão com o banco de dados estabelecida com sucesso")

	repo := repository.NewDealRepository(conn)
	if err := repo.EnsureSchema(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("erro ao criar tabela de deals: %w", err)
	}

	a := &app{cfg: cfg, conn: conn, auth: authenticating.NewService(cfg.Admin)}
	if cfg.Admin.JWTSecret == "" {
		logrus.Warn("ADMIN_JWT_SECRET vazio: clear_deals e cron recusarão todas as requisições")
	}

	var dealMetrics *metrics.DealMetrics
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		dealMetrics = metrics.NewDealMetrics(reg)
		a.metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}

	gate := bitrix.NewGate(cfg.Bitrix, cipher, dealMetrics)
	a.syncer = syncing.NewService(gate, repo, cfg.Bitrix, dealMetrics)

	logrus.WithFields(logrus.Fields{
		"variant": cfg.Bitrix.Variant,
		"scope":   cfg.Bitrix.Scope(),
	}).Info("Origem de deals configurada")

	return a, nil
}

func (a *app) Close() {
	if err := a.conn.Close(); err != nil {
		logrus.WithError(err).Warn("Erro ao fechar o banco de dados")
	}
}

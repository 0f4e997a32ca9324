package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/deal-mirror-api/internal/api"
	"github.com/vfg2006/deal-mirror-api/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API HTTP e o agendador de sincronização",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	dealSyncService := scheduler.NewDealSyncService(a.syncer, a.cfg.DealSync, a.cfg.Server.RequestTimeout)
	if err := dealSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de deals")
	} else {
		logrus.Info("Agendador de sincronização de deals iniciado com sucesso")
	}

	server, err := api.New(a.cfg, api.Dependencies{
		Deals:          a.syncer,
		Scheduler:      dealSyncService,
		DB:             a.conn,
		MetricsHandler: a.metricsHandler,
		Auth:           a.auth,
	})
	if err != nil {
		return err
	}

	return server.Run(ctx)
}

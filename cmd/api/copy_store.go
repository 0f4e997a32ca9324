package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/deal-mirror-api/infrastructure/database"
	"github.com/vfg2006/deal-mirror-api/infrastructure/migration"
	"github.com/vfg2006/deal-mirror-api/infrastructure/repository"
	"github.com/vfg2006/deal-mirror-api/internal/config"
)

var copyStoreTarget config.Database
var copyStoreBatch int

// copyStoreCmd leva o cache para outro backend, por exemplo do sqlite local para um postgres
var copyStoreCmd = &cobra.Command{
	Use:   "copy-store",
	Short: "Copia os deals do banco configurado para outro banco",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		switch copyStoreTarget.Driver {
		case config.DriverSQLite, config.DriverPostgres:
		default:
			return fmt.Errorf("driver de destino não suportado: %q", copyStoreTarget.Driver)
		}
		if copyStoreTarget.Driver == config.DriverSQLite && copyStoreTarget.Path == "" {
			return fmt.Errorf("--to-path é obrigatório para o driver %s", config.DriverSQLite)
		}
		copyStoreTarget.DSN = config.BuildDSN(copyStoreTarget)

		if copyStoreTarget.DSN == cfg.Database.DSN {
			return fmt.Errorf("origem e destino são o mesmo banco")
		}

		source, err := database.NewConnection(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("erro ao conectar à origem: %w", err)
		}
		defer source.Close()

		target, err := database.NewConnection(ctx, copyStoreTarget)
		if err != nil {
			return fmt.Errorf("erro ao conectar ao destino: %w", err)
		}
		defer target.Close()

		result, err := migration.CopyDeals(ctx,
			repository.NewDealRepository(source),
			repository.NewDealRepository(target),
			copyStoreBatch,
		)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d deals copied, %d failed\n", result.Saved, result.Failed)
		return nil
	},
}

func init() {
	flags := copyStoreCmd.Flags()
	flags.StringVar(&copyStoreTarget.Driver, "to-driver", config.DriverPostgres, "driver do banco de destino (sqlite3 ou postgres)")
	flags.StringVar(&copyStoreTarget.Path, "to-path", "", "arquivo sqlite de destino")
	flags.StringVar(&copyStoreTarget.URL, "to-url", "", "host:porta/banco?params do postgres de destino")
	flags.StringVar(&copyStoreTarget.User, "to-user", "postgres", "usuário do postgres de destino")
	flags.StringVar(&copyStoreTarget.Password, "to-password", "", "senha do postgres de destino")
	flags.IntVar(&copyStoreBatch, "batch", migration.DefaultBatchSize, "deals por transação")
}

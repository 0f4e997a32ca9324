package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/deal-mirror-api/internal/usecases/authenticating"
)

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Emite um token de administrador para clear_deals e cron",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		token, err := authenticating.NewService(cfg.Admin).GenerateToken(args[0])
		if err != nil {
			return fmt.Errorf("erro ao emitir token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

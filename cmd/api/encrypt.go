package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vfg2006/deal-mirror-api/infrastructure/crypt"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt <webhook-link>",
	Short: "Criptografa o link do webhook do Bitrix para usar em BX_LINK",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		link := strings.TrimSpace(args[0])
		if link == "" {
			return errors.New("link do webhook vazio")
		}

		cipher, err := crypt.NewCipher(cfg.SecretKey)
		if err != nil {
			return fmt.Errorf("SECRET_KEY inválida: %w", err)
		}

		encrypted, err := cipher.Encrypt(link)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), encrypted)
		return nil
	},
}

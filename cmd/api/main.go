package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deal-mirror-api",
	Short: "Espelho local dos deals do Bitrix24",
	Long: `Mantém uma cópia local dos deals de um funil (ou smart process) do Bitrix24.

Sem subcomando, sobe a API HTTP que recebe os webhooks do CRM.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	rootCmd.AddCommand(serveCmd, syncCmd, encryptCmd, tokenCmd, copyStoreCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

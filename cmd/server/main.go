package main

import (
	"github.com/spf13/cobra"

	"exaura_site/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "exaura",
		Short:         "Exaura website backend",
		Long:          `Serves the localized Exaura landing page, its translation tables, the contact form and cookie consent API.`,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ./configs/config.yaml)")

	rootCmd.AddCommand(
		newServeCommand(),
		newTranslateCommand(),
		newContactsCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("command failed", "error", err)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"exaura_site/internal/config"
	"exaura_site/internal/services"
)

func newTranslateCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "translate <key>",
		Short: "Resolve a translation key path from the locales directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if lang == "" {
				lang = cfg.Translations.DefaultLanguage
			}

			translator := services.NewFileTranslationService(cfg.Translations.Dir)
			if err := translator.LoadTranslations(); err != nil {
				return fmt.Errorf("failed to load translations: %w", err)
			}
			return runTranslate(cmd, translator, lang, args[0])
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Language code (default: configured default language)")
	return cmd
}

func runTranslate(cmd *cobra.Command, translator *services.FileTranslationService, lang, key string) error {
	table, err := translator.GetTranslations(lang)
	if err != nil {
		return err
	}
	value, ok := table.Lookup(key)
	if !ok {
		return fmt.Errorf("translation missing for key %q in %s", key, lang)
	}

	if s, isString := value.(string); isString {
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%v\n", value)
	return nil
}

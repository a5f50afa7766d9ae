package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"exaura_site/internal/config"
	"exaura_site/internal/core"
	"exaura_site/internal/logger"
	"exaura_site/internal/services"
	"exaura_site/internal/storage"
)

// ContactLister is the part of the contact service the contacts command needs.
type ContactLister interface {
	List(ctx context.Context, limit int) ([]*core.ContactMessage, error)
}

func newContactsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List stored contact form submissions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := storage.OpenSQLite(cfg.Database.Path)
			if err != nil {
				return err
			}
			svc := services.NewContactService(storage.NewContactRepository(db), nil, logger.WithComponent("contact"))
			return runContacts(cmd, svc, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of messages to show (0 for all)")
	return cmd
}

func runContacts(cmd *cobra.Command, contacts ContactLister, limit int) error {
	messages, err := contacts.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRECEIVED\tLANG\tNAME\tEMAIL\tMESSAGE")
	for _, m := range messages {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, m.CreatedAt.Format(time.DateTime), m.Language, m.Name, m.Email, preview(m.Message, 40))
	}
	return w.Flush()
}

// preview shortens text to max runes for one table row.
func preview(text string, max int) string {
	runes := []rune(strings.Join(strings.Fields(text), " "))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max-3]) + "..."
}

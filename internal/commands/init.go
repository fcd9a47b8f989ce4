package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerbook/ledgerbook/internal/books"
	"github.com/ledgerbook/ledgerbook/internal/config"
	"github.com/ledgerbook/ledgerbook/internal/logger"
	"github.com/ledgerbook/ledgerbook/internal/model"
)

func newInitCommand(opts *globalOptions) *cobra.Command {
	var name, entityType, currencyCode string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create new books with the default chart of accounts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.repo
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default(name, entityType)
			if currencyCode != "" {
				cfg.Books.Currency = strings.ToUpper(currencyCode)
			}
			if err := cfg.ApplyEnv(); err != nil {
				return err
			}
			if err := model.Validate(cfg); err != nil {
				return fmt.Errorf("config: %w", err)
			}

			log, err := logger.New(opts.verbose)
			if err != nil {
				return err
			}
			b, err := books.Init(cmd.Context(), absDir, cfg, log, books.InitOptions{Git: !noGit})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized books for %s at %s (%d accounts, %s)\n",
				name, absDir, b.Chart().Len(), cfg.Books.Currency)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityType, "entity-type", "transport_company", "entity type, selects the default chart")
	cmd.Flags().StringVar(&currencyCode, "currency", "", "ISO 4217 currency code (default EGP)")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

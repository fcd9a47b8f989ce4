package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerbook/ledgerbook/internal/books"
	"github.com/ledgerbook/ledgerbook/internal/buildinfo"
	"github.com/ledgerbook/ledgerbook/internal/config"
	"github.com/ledgerbook/ledgerbook/internal/currency"
	"github.com/ledgerbook/ledgerbook/internal/ledger"
	"github.com/ledgerbook/ledgerbook/internal/logger"
)

const dateLayout = "2006-01-02"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	repo    string
	verbose bool
	now     func() time.Time
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{now: time.Now}

	rootCmd := &cobra.Command{
		Use:     "ledgerbook",
		Short:   "Double-entry books kept as plain files",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.repo, "repo", ".", "books directory")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newAccountCommand(opts),
		newJournalCommand(opts),
		newLedgerCommand(opts),
		newTrialBalanceCommand(opts),
		newGeneralLedgerCommand(opts),
		newImportCommand(opts),
	)

	return rootCmd
}

// open loads the books under --repo.
func (o *globalOptions) open() (*books.Books, error) {
	dir, err := filepath.Abs(o.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	log, err := logger.New(o.verbose)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.Path(dir))
	if err != nil {
		return nil, err
	}
	b, err := books.Open(dir, cfg, log)
	if err != nil {
		return nil, err
	}
	b.SetClock(o.now)
	return b, nil
}

func formatter(cfg *config.Config) currency.Formatter {
	return currency.New(cfg.Books.Currency, cfg.Books.DisplayFraction)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}

// rangeFlags selects a date range either by named period or by explicit dates.
type rangeFlags struct {
	period string
	from   string
	to     string
}

func (r *rangeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.period, "period", "", "all, today, week, month, quarter or year (fiscal)")
	cmd.Flags().StringVar(&r.from, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&r.to, "to", "", "last date, YYYY-MM-DD")
	cmd.MarkFlagsMutuallyExclusive("period", "from")
	cmd.MarkFlagsMutuallyExclusive("period", "to")
}

// resolve returns the inclusive range. The "year" period follows the fiscal year.
func (r *rangeFlags) resolve(cfg *config.Config, now time.Time) (from, to time.Time, err error) {
	if r.period == "year" {
		return cfg.Fiscal.YearRange(now)
	}
	if r.period != "" {
		return ledger.PeriodRange(r.period, now)
	}
	if from, err = parseDate(r.from); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to, err = parseDate(r.to); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", r.to, r.from)
	}
	return from, to, nil
}

package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerbook/ledgerbook/internal/books"
	"github.com/ledgerbook/ledgerbook/internal/currency"
	"github.com/ledgerbook/ledgerbook/internal/ledger"
)

// reportFlags are shared by the trial balance and general ledger.
type reportFlags struct {
	rangeFlags
	all   bool
	asCSV bool
}

func (r *reportFlags) bind(cmd *cobra.Command) {
	r.rangeFlags.bind(cmd)
	cmd.Flags().BoolVar(&r.all, "all", false, "include accounts with no activity")
	cmd.Flags().BoolVar(&r.asCSV, "csv", false, "write CSV instead of a table")
}

func (r *reportFlags) options(opts *globalOptions, b *books.Books) (ledger.ReportOptions, error) {
	from, to, err := r.resolve(b.Config(), opts.now())
	if err != nil {
		return ledger.ReportOptions{}, err
	}
	return ledger.ReportOptions{From: from, To: to, IncludeEmpty: r.all}, nil
}

// warnOrphans reports journal lines the reports had to leave out.
func warnOrphans(cmd *cobra.Command, b *books.Books) {
	orphans := b.Orphans()
	if len(orphans) == 0 {
		return
	}
	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "warning: %d journal line(s) reference unknown accounts and are not included:\n", len(orphans))
	for _, o := range orphans {
		fmt.Fprintf(errOut, "  %s\n", o.Error())
	}
}

func newTrialBalanceCommand(opts *globalOptions) *cobra.Command {
	var rf reportFlags

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Debit and credit totals for every account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}
			ro, err := rf.options(opts, b)
			if err != nil {
				return err
			}
			warnOrphans(cmd, b)

			r := b.TrialBalance(ro)
			out := cmd.OutOrStdout()
			if rf.asCSV {
				return ledger.WriteTrialBalanceCSV(out, r)
			}

			cur := formatter(b.Config())
			fmt.Fprintf(out, "%-48s  %16s  %16s\n", "Account", "Debit", "Credit")
			for _, l := range r.Lines {
				label := strings.Repeat("  ", l.Depth) + l.Account.Code + " " + l.Account.Name
				fmt.Fprintf(out, "%-48s  %16s  %16s\n", truncate(label, 48),
					blankZero(cur, l.DebitBalance), blankZero(cur, l.CreditBalance))
			}
			fmt.Fprintf(out, "%-48s  %16s  %16s\n", "Total",
				cur.Format(r.TotalDebitBalance), cur.Format(r.TotalCreditBalance))
			if r.Balanced() {
				fmt.Fprintln(out, "Balanced")
			} else {
				fmt.Fprintf(out, "NOT BALANCED: difference %s\n",
					cur.Format(r.TotalDebitBalance.Sub(r.TotalCreditBalance)))
			}
			return nil
		},
	}

	rf.bind(cmd)
	return cmd
}

func newGeneralLedgerCommand(opts *globalOptions) *cobra.Command {
	var rf reportFlags

	cmd := &cobra.Command{
		Use:   "general-ledger",
		Short: "Every account's ledger in chart order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}
			ro, err := rf.options(opts, b)
			if err != nil {
				return err
			}
			warnOrphans(cmd, b)

			r := b.GeneralLedger(ro)
			out := cmd.OutOrStdout()
			if rf.asCSV {
				return ledger.WriteGeneralLedgerCSV(out, r)
			}

			cur := formatter(b.Config())
			for i, al := range r.Accounts {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s %s (%s)\n", al.Account.Code, al.Account.Name, al.Account.Type)
				printRows(out, cur, al.View)
			}
			return nil
		},
	}

	rf.bind(cmd)
	return cmd
}

func blankZero(cur currency.Formatter, d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return cur.Format(d)
}

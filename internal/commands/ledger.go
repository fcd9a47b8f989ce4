package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerbook/ledgerbook/internal/currency"
	"github.com/ledgerbook/ledgerbook/internal/ledger"
	"github.com/ledgerbook/ledgerbook/internal/model"
)

func newLedgerCommand(opts *globalOptions) *cobra.Command {
	var search, side string
	var asCSV bool
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "ledger <account>",
		Short: "Show one account's ledger with running balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}

			f := ledger.Filter{Query: search}
			if side != "" {
				f.Side = model.LineType(strings.ToLower(side))
				if !f.Side.Valid() {
					return fmt.Errorf("--side must be debit or credit")
				}
			}
			if f.From, f.To, err = rf.resolve(b.Config(), opts.now()); err != nil {
				return err
			}

			acct, p, err := b.Ledger(args[0])
			if err != nil {
				return err
			}
			v := ledger.ApplyView(p, f)

			out := cmd.OutOrStdout()
			if asCSV {
				return ledger.WriteCSV(out, v.Rows, v.Summary)
			}
			fmt.Fprintf(out, "%s %s (%s)\n\n", acct.Code, acct.Name, acct.Type)
			printRows(out, formatter(b.Config()), v)
			if len(v.Rows) != len(p.Rows) {
				fmt.Fprintf(out, "Showing %d of %d transactions, account balance %s\n",
					len(v.Rows), len(p.Rows), formatter(b.Config()).Format(p.Summary.Balance))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "match description or reference")
	cmd.Flags().StringVar(&side, "side", "", "debit or credit lines only")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV instead of a table")
	rf.bind(cmd)

	return cmd
}

func printRows(out io.Writer, cur currency.Formatter, v ledger.View) {
	fmt.Fprintf(out, "%-10s  %-12s  %-32s  %14s  %14s  %14s\n", "Date", "Reference", "Description", "Debit", "Credit", "Balance")
	for _, r := range v.Rows {
		debit, credit := "", ""
		if r.Type == model.Debit {
			debit = cur.Format(r.Amount)
		} else {
			credit = cur.Format(r.Amount)
		}
		fmt.Fprintf(out, "%-10s  %-12s  %-32s  %14s  %14s  %14s\n",
			r.Date.Format(dateLayout), truncate(r.Reference, 12), truncate(r.Description, 32),
			debit, credit, cur.Format(r.Balance))
	}
	s := v.Summary
	fmt.Fprintf(out, "%-10s  %-12s  %-32s  %14s  %14s  %14s\n", "", "",
		fmt.Sprintf("Total (%d)", s.TransactionCount),
		cur.Format(s.TotalDebit), cur.Format(s.TotalCredit), cur.Format(s.Balance))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerbook/ledgerbook/internal/books"
	"github.com/ledgerbook/ledgerbook/internal/journal"
	"github.com/ledgerbook/ledgerbook/internal/model"
)

func newJournalCommand(opts *globalOptions) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Record and check journal entries",
	}
	journalCmd.AddCommand(newJournalAddCommand(opts), newJournalCheckCommand(opts))
	return journalCmd
}

func newJournalAddCommand(opts *globalOptions) *cobra.Command {
	var date string
	var p journal.EntryParams
	var lines []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a balanced journal entry",
		Example: `  ledgerbook journal add --date 2025-03-02 --description "Route fares" \
    --line 1110:debit:1500 --line 4100:credit:1500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}

			if p.Date, err = parseDate(date); err != nil {
				return err
			}
			if p.Date.IsZero() {
				p.Date = opts.now()
			}
			p.Lines = make([]model.JournalLine, 0, len(lines))
			for _, s := range lines {
				l, err := parseLine(b, s)
				if err != nil {
					return err
				}
				p.Lines = append(p.Lines, l)
			}

			e, err := b.RecordEntry(cmd.Context(), p)
			if err != nil {
				return err
			}
			debit, _ := e.Totals()
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %s (%s)\n",
				e.ID, e.Description, formatter(b.Config()).Format(debit))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "entry date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&p.Reference, "reference", "", "external reference, e.g. an invoice number")
	cmd.Flags().StringVar(&p.Description, "description", "", "description (required)")
	cmd.Flags().StringArrayVar(&lines, "line", nil, "ACCOUNT:debit|credit:AMOUNT, repeat for each line")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

// parseLine reads ACCOUNT:SIDE:AMOUNT. ACCOUNT is an id or a code.
func parseLine(b *books.Books, s string) (model.JournalLine, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return model.JournalLine{}, fmt.Errorf("invalid line %q (want ACCOUNT:debit|credit:AMOUNT)", s)
	}
	acct, err := b.Chart().Resolve(strings.TrimSpace(parts[0]))
	if err != nil {
		return model.JournalLine{}, fmt.Errorf("line %q: %w", s, err)
	}
	side := model.LineType(strings.ToLower(strings.TrimSpace(parts[1])))
	if !side.Valid() {
		return model.JournalLine{}, fmt.Errorf("line %q: side must be debit or credit", s)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(parts[2]))
	if err != nil {
		return model.JournalLine{}, fmt.Errorf("line %q: invalid amount", s)
	}
	return model.JournalLine{AccountID: acct.ID, Type: side, Amount: amount}, nil
}

func newJournalCheckCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate every entry in the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}

			verrs := b.Check()
			out := cmd.OutOrStdout()
			for _, ve := range verrs {
				fmt.Fprintln(out, ve.Error())
			}
			if len(verrs) > 0 {
				return fmt.Errorf("journal has %d problem(s)", len(verrs))
			}
			fmt.Fprintf(out, "Journal OK: %d entries\n", len(b.Entries()))
			return nil
		},
	}
}

package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerbook/ledgerbook/internal/accounts"
	"github.com/ledgerbook/ledgerbook/internal/books"
	"github.com/ledgerbook/ledgerbook/internal/ledger"
	"github.com/ledgerbook/ledgerbook/internal/model"
)

func newAccountCommand(opts *globalOptions) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the chart of accounts",
	}
	accountCmd.AddCommand(newAccountAddCommand(opts), newAccountListCommand(opts))
	return accountCmd
}

func newAccountAddCommand(opts *globalOptions) *cobra.Command {
	var p books.NewAccountParams
	var accountType, parent, opening, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account, optionally with an opening balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}

			p.Type = model.AccountType(strings.ToLower(accountType))
			if parent != "" {
				pa, err := b.Chart().Resolve(parent)
				if err != nil {
					return fmt.Errorf("parent: %w", err)
				}
				p.ParentID = pa.ID
			}
			if opening != "" {
				if p.OpeningBalance, err = decimal.NewFromString(opening); err != nil {
					return fmt.Errorf("invalid opening balance %q", opening)
				}
			}
			if p.Date, err = parseDate(date); err != nil {
				return err
			}

			acct, err := b.CreateAccount(cmd.Context(), p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %s %s (%s) as %s\n", acct.Code, acct.Name, acct.Type, acct.ID)
			if !acct.Balance.IsZero() {
				fmt.Fprintf(out, "Opening balance %s against %s\n",
					formatter(b.Config()).Format(acct.Balance), b.Config().Books.OpeningBalanceAccount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Code, "code", "", "account code (required)")
	cmd.Flags().StringVar(&p.Name, "name", "", "account name (required)")
	cmd.Flags().StringVar(&accountType, "type", "", "asset, liability, equity, revenue or expense (required)")
	cmd.Flags().StringVar(&parent, "parent", "", "parent account id or code")
	cmd.Flags().StringVar(&opening, "opening-balance", "", "opening balance, positive = debit")
	cmd.Flags().StringVar(&p.Description, "description", "", "free-text description")
	cmd.Flags().StringVar(&date, "date", "", "date of the opening entry, YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newAccountListCommand(opts *globalOptions) *cobra.Command {
	var accountType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the chart of accounts with current balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}

			list := b.Chart().All()
			if accountType != "" {
				t := model.AccountType(strings.ToLower(accountType))
				if !t.Valid() {
					return fmt.Errorf("unknown account type %q", accountType)
				}
				list = b.Chart().ByType(t)
			}

			printAccounts(cmd, b, list)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "", "only accounts of this type")
	return cmd
}

func printAccounts(cmd *cobra.Command, b *books.Books, list []accounts.FlatAccount) {
	out := cmd.OutOrStdout()
	cur := formatter(b.Config())
	for _, fa := range list {
		a := fa.Account
		label := strings.Repeat("  ", fa.Depth) + a.Code + " " + a.Name
		balance := ledger.Project(b.Entries(), a.ID).Summary.Balance
		fmt.Fprintf(out, "%-48s %-10s %18s\n", label, a.Type, cur.Format(balance))
	}
}

package books

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ledgerbook/ledgerbook/internal/accounts"
	"github.com/ledgerbook/ledgerbook/internal/auditlog"
	"github.com/ledgerbook/ledgerbook/internal/id"
	"github.com/ledgerbook/ledgerbook/internal/journal"
	"github.com/ledgerbook/ledgerbook/internal/model"
)

// ErrParentTypeMismatch is returned when a child account's type differs from its parent's.
var ErrParentTypeMismatch = errors.New("parent account has a different type")

// NewAccountParams holds parameters for creating an account.
type NewAccountParams struct {
	Code           string            `validate:"required"`
	Name           string            `validate:"required"`
	Type           model.AccountType `validate:"accountType"`
	ParentID       string
	OpeningBalance decimal.Decimal // positive = debit, negative = credit
	Description    string
	Date           time.Time // date of the opening entry; today when zero
}

// CreateAccount adds an account to the chart. A non-zero opening balance also
// records an entry against the configured offset account. The chart and the
// journal change together or not at all.
func (b *Books) CreateAccount(ctx context.Context, p NewAccountParams) (model.Account, error) {
	if err := model.Validate(p); err != nil {
		return model.Account{}, fmt.Errorf("account params: %w", err)
	}

	if p.ParentID != "" {
		parent, ok := b.chart.Get(p.ParentID)
		if !ok {
			return model.Account{}, fmt.Errorf("%w: %s", accounts.ErrParentNotFound, p.ParentID)
		}
		if parent.Type != p.Type {
			return model.Account{}, fmt.Errorf("%w: %s is %s, new account is %s",
				ErrParentTypeMismatch, parent.Code, parent.Type, p.Type)
		}
	}

	acct := model.Account{
		ID:          id.NewAccountID(),
		Code:        p.Code,
		Name:        p.Name,
		Type:        p.Type,
		Balance:     p.OpeningBalance,
		Description: p.Description,
	}

	previous := b.chart
	next := accounts.NewService(previous.Roots())
	if err := next.Insert(acct, p.ParentID); err != nil {
		return model.Account{}, err
	}

	var opening *journal.EntryParams
	if !p.OpeningBalance.IsZero() {
		op := b.openingEntry(acct, p.Date)
		// Check against the new chart before anything reaches disk.
		if verrs := journal.ValidateEntry(model.JournalEntry{ID: "opening", Lines: op.Lines}, next); len(verrs) > 0 {
			return model.Account{}, fmt.Errorf("%w: opening balance: %s", journal.ErrInvalidEntry, verrs[0].Description)
		}
		opening = &op
	}

	if err := next.Save(b.root); err != nil {
		return model.Account{}, err
	}
	b.chart = next

	if opening != nil {
		e, err := b.journal.Record(*opening)
		if err != nil {
			b.chart = previous
			if rerr := previous.Save(b.root); rerr != nil {
				return model.Account{}, fmt.Errorf("%w (restoring chart: %v)", err, rerr)
			}
			return model.Account{}, fmt.Errorf("recording opening balance: %w", err)
		}
		b.entries = journal.Append(b.entries, e)
	}

	b.log.Info("account created",
		zap.String("account_id", acct.ID),
		zap.String("code", acct.Code),
		zap.String("type", string(acct.Type)),
		zap.String("opening_balance", acct.Balance.StringFixed(2)),
	)

	details := fmt.Sprintf("%s %s (%s)", acct.Code, acct.Name, acct.Type)
	if opening != nil {
		details += " opening " + acct.Balance.StringFixed(2)
	}
	if err := b.record(ctx, auditlog.ActionCreateAccount, details, acct.ID, "account: add "+acct.Code+" "+acct.Name); err != nil {
		return acct, err
	}
	return acct, nil
}

// openingEntry debits the new account and credits the offset account for a
// positive balance, and the reverse for a negative one.
func (b *Books) openingEntry(acct model.Account, date time.Time) journal.EntryParams {
	if date.IsZero() {
		date = b.now()
	}
	side := model.Debit
	if acct.Balance.IsNegative() {
		side = model.Credit
	}
	amount := acct.Balance.Abs()
	return journal.EntryParams{
		Date:        date,
		Reference:   "OB-" + acct.Code,
		Description: "Opening Balance - " + acct.Name,
		Lines: []model.JournalLine{
			{AccountID: acct.ID, Type: side, Amount: amount},
			{AccountID: b.cfg.Books.OpeningBalanceAccount, Type: side.Opposite(), Amount: amount},
		},
	}
}

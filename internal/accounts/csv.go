package accounts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/ledgerbook/ledgerbook/internal/model"
)

const (
	numFields  = 7
	colID      = 0
	colCode    = 1
	colName    = 2
	colType    = 3
	colParent  = 4
	colBalance = 5
	colDesc    = 6
)

// ReadAccounts reads chart-of-accounts.csv and rebuilds the forest.
// Parents must appear before their children, which WriteAccounts guarantees.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var forest []model.Account
	for i, rec := range records[1:] {
		acct, parentID, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		forest, err = Insert(forest, acct, parentID)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return forest, nil
}

// WriteAccounts writes the forest to chart-of-accounts.csv in pre-order.
func WriteAccounts(w io.Writer, forest []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"account_id", "code", "name", "type", "parent_id", "balance", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, fa := range Flatten(forest) {
		if err := cw.Write(MarshalAccount(fa.Account, fa.ParentID)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row. Children are not included.
func MarshalAccount(acct model.Account, parentID string) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colParent] = parentID
	if !acct.Balance.IsZero() {
		row[colBalance] = acct.Balance.StringFixed(2)
	}
	row[colDesc] = acct.Description
	return row
}

// UnmarshalAccount converts a CSV row to an Account and the id of its parent.
func UnmarshalAccount(record []string) (model.Account, string, error) {
	if len(record) != numFields {
		return model.Account{}, "", fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if record[colID] == "" {
		return model.Account{}, "", errors.New("missing account_id")
	}

	accountType := model.AccountType(record[colType])
	if !accountType.Valid() {
		return model.Account{}, "", fmt.Errorf("invalid account type %q", record[colType])
	}

	var balance decimal.Decimal
	if record[colBalance] != "" {
		var err error
		balance, err = decimal.NewFromString(record[colBalance])
		if err != nil {
			return model.Account{}, "", fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
		}
	}

	return model.Account{
		ID:          record[colID],
		Code:        record[colCode],
		Name:        record[colName],
		Type:        accountType,
		Balance:     balance,
		Description: record[colDesc],
	}, record[colParent], nil
}

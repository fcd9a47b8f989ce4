package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/ledgerbook/ledgerbook/internal/model"
)

// LegacyParser reads the browser-storage export of the old bookkeeping app:
// a JSON object holding a chartOfAccounts forest and a journalEntries array.
// Either value may itself be a JSON-encoded string, as localStorage keeps them.
type LegacyParser struct {
	AccountsPath string
	EntriesPath  string
}

// NewLegacyParser returns a parser for the default export layout.
func NewLegacyParser() *LegacyParser {
	return &LegacyParser{
		AccountsPath: "$.chartOfAccounts",
		EntriesPath:  "$.journalEntries",
	}
}

// Format implements Parser.
func (p *LegacyParser) Format() string { return "legacy-json" }

// Ext implements Parser.
func (p *LegacyParser) Ext() string { return ".json" }

type legacyAccount struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Children    []legacyAccount `json:"children"`
}

type legacyLine struct {
	Account string          `json:"account"`
	Type    string          `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
}

type legacyEntry struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Reference   string       `json:"reference"`
	Description string       `json:"description"`
	Lines       []legacyLine `json:"lines"`
}

// Parse implements Parser.
func (p *LegacyParser) Parse(r io.Reader) (Batch, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Batch{}, fmt.Errorf("decoding legacy export: %w", err)
	}

	var accounts []legacyAccount
	if err := extract(doc, p.AccountsPath, &accounts); err != nil {
		return Batch{}, err
	}
	var entries []legacyEntry
	if err := extract(doc, p.EntriesPath, &entries); err != nil {
		return Batch{}, err
	}

	var b Batch
	for i, la := range accounts {
		a, err := la.toModel()
		if err != nil {
			return Batch{}, fmt.Errorf("account %d: %w", i, err)
		}
		b.Accounts = append(b.Accounts, a)
	}
	for i, le := range entries {
		e, err := le.toModel()
		if err != nil {
			return Batch{}, fmt.Errorf("journal entry %d (%s): %w", i, le.ID, err)
		}
		b.Entries = append(b.Entries, e)
	}
	return b, nil
}

// extract decodes the value at path into out. A path that matches nothing leaves out empty.
func extract(doc any, path string, out any) error {
	eval, err := jsonpath.New(path)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", path, err)
	}
	val, err := eval(context.Background(), doc)
	if err != nil || val == nil {
		return nil
	}

	var raw []byte
	if s, ok := val.(string); ok {
		raw = []byte(s)
	} else if raw, err = json.Marshal(val); err != nil {
		return fmt.Errorf("re-encoding %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// toModel drops the stored balance: the old app rewrote it on every posting,
// so it is a running total, and the opening entries are already in the journal.
func (la legacyAccount) toModel() (model.Account, error) {
	t := model.AccountType(strings.ToLower(la.Type))
	if !t.Valid() {
		return model.Account{}, fmt.Errorf("%s: invalid account type %q", la.Code, la.Type)
	}
	a := model.Account{
		ID:          la.ID,
		Code:        la.Code,
		Name:        la.Name,
		Type:        t,
		Description: la.Description,
	}
	for i, c := range la.Children {
		child, err := c.toModel()
		if err != nil {
			return model.Account{}, fmt.Errorf("%s child %d: %w", la.Code, i, err)
		}
		a.Children = append(a.Children, child)
	}
	return a, nil
}

func (le legacyEntry) toModel() (model.JournalEntry, error) {
	// Dates were stored either as YYYY-MM-DD or as a full ISO timestamp.
	ds := le.Date
	if len(ds) > 10 {
		ds = ds[:10]
	}
	d, err := time.Parse("2006-01-02", ds)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing date %q: %w", le.Date, err)
	}

	ref := le.Reference
	if ref == "" {
		ref = le.ID
	}
	e := model.JournalEntry{
		Date:        d,
		Reference:   ref,
		Description: le.Description,
	}
	for _, ll := range le.Lines {
		e.Lines = append(e.Lines, model.JournalLine{
			AccountID: ll.Account,
			Type:      model.LineType(strings.ToLower(ll.Type)),
			Amount:    ll.Amount,
		})
	}
	return e, nil
}

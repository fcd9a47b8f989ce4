package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerbook/ledgerbook/internal/id"
	"github.com/ledgerbook/ledgerbook/internal/model"
)

// Header is the CSV header for journal.csv. Each row is one journal line.
const Header = "line_id,date,reference,description,account_id,type,amount"

const (
	numFields  = 7
	dateFormat = "2006-01-02"
	colLineID  = 0
	colDate    = 1
	colRef     = 2
	colDesc    = 3
	colAcctID  = 4
	colType    = 5
	colAmount  = 6
)

// Row is a single journal.csv row: one line plus the fields of its entry.
type Row struct {
	LineID      string
	Date        time.Time
	Reference   string
	Description string
	Line        model.JournalLine
}

// ReadEntries reads journal.csv and regroups rows into entries, in file order.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var entries []model.JournalEntry
	index := make(map[string]int)
	for i, rec := range records[1:] {
		row, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entryID := id.EntryGroup(row.LineID)
		pos, seen := index[entryID]
		if !seen {
			pos = len(entries)
			index[entryID] = pos
			entries = append(entries, model.JournalEntry{
				ID:          entryID,
				Date:        row.Date,
				Reference:   row.Reference,
				Description: row.Description,
			})
		}
		entries[pos].Lines = append(entries[pos].Lines, row.Line)
	}
	return entries, nil
}

// WriteEntries writes entries to a journal.csv writer (including header).
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writeRows(cw, entries); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// AppendEntries appends entries to an existing journal.csv writer (no header).
func AppendEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := writeRows(cw, entries); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeRows(cw *csv.Writer, entries []model.JournalEntry) error {
	for _, e := range entries {
		for i := range e.Lines {
			if err := cw.Write(MarshalLine(e, i)); err != nil {
				return fmt.Errorf("writing entry %s line %d: %w", e.ID, i, err)
			}
		}
	}
	return nil
}

// MarshalLine converts line i of an entry to a CSV row ([]string).
func MarshalLine(e model.JournalEntry, i int) []string {
	line := e.Lines[i]
	row := make([]string, numFields)
	row[colLineID] = id.FormatLineID(e.ID, i)
	row[colDate] = e.Date.Format(dateFormat)
	row[colRef] = e.Reference
	row[colDesc] = e.Description
	row[colAcctID] = line.AccountID
	row[colType] = string(line.Type)
	row[colAmount] = line.Amount.StringFixed(2)
	return row
}

// UnmarshalRow converts a CSV row to a Row.
func UnmarshalRow(record []string) (Row, error) {
	if len(record) != numFields {
		return Row{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return Row{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	lineType := model.LineType(record[colType])
	if !lineType.Valid() {
		return Row{}, fmt.Errorf("invalid line type %q", record[colType])
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return Row{
		LineID:      record[colLineID],
		Date:        date,
		Reference:   record[colRef],
		Description: record[colDesc],
		Line: model.JournalLine{
			AccountID: record[colAcctID],
			Type:      lineType,
			Amount:    amount,
		},
	}, nil
}

package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledgerbook/ledgerbook/internal/model"
)

// Filter narrows the rows shown for a projection. Zero fields match everything.
// From and To are inclusive calendar dates.
type Filter struct {
	Query string
	Side  model.LineType
	From  time.Time
	To    time.Time
}

// View is a filtered projection. Rows keep the running balances of the
// unfiltered projection; Summary covers the visible rows only.
type View struct {
	AccountID string
	Rows      []Row
	Summary   Summary
}

// Match reports whether r passes the filter.
func (f Filter) Match(r Row) bool {
	if f.Side != "" && r.Type != f.Side {
		return false
	}
	if !f.InRange(r.Date) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(r.Description), q) &&
			!strings.Contains(strings.ToLower(r.Reference), q) {
			return false
		}
	}
	return true
}

// InRange reports whether d falls between From and To.
func (f Filter) InRange(d time.Time) bool {
	if !f.From.IsZero() && d.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && d.After(f.To) {
		return false
	}
	return true
}

// ApplyView filters p without touching p itself.
func ApplyView(p Projection, f Filter) View {
	var rows []Row
	for _, r := range p.Rows {
		if f.Match(r) {
			rows = append(rows, r)
		}
	}
	return View{AccountID: p.AccountID, Rows: rows, Summary: Summarize(rows)}
}

// Periods accepted by PeriodRange.
var Periods = []string{"all", "today", "week", "month", "quarter", "year"}

// PeriodRange returns the inclusive date range of a named period relative to now.
// "all" returns zero times. "week" is the seven days up to and including today.
func PeriodRange(period string, now time.Time) (from, to time.Time, err error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch period {
	case "", "all":
		return time.Time{}, time.Time{}, nil
	case "today":
		return today, today, nil
	case "week":
		return today.AddDate(0, 0, -7), today, nil
	case "month":
		from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, -1), nil
	case "quarter":
		first := time.Month((int(today.Month())-1)/3*3 + 1)
		from = time.Date(today.Year(), first, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 3, -1), nil
	case "year":
		from = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return from, time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period %q (want one of %s)", period, strings.Join(Periods, ", "))
	}
}

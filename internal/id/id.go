// Package id mints and parses the identifiers stored in the books.
//
// Entries are numbered per month as YYYY-MM-NNN. Every journal.csv row is one
// line of an entry and carries the entry id plus a lowercase suffix: a..z,
// then aa..az, ba.. and so on, so an entry of any size regroups on read.
package id

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// accountPrefix marks ids minted for user-created accounts.
const accountPrefix = "acc_"

var entryIDPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{3,})$`)

// NewAccountID returns a fresh account id like "acc_3f2c...". Ids are never reused.
func NewAccountID() string {
	return accountPrefix + uuid.NewString()
}

// FormatEntryID returns the id of the seq'th entry of a month.
func FormatEntryID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// FormatLineID returns the row id of the zero-based line of an entry.
func FormatLineID(entryID string, line int) string {
	return entryID + lineSuffix(line)
}

// lineSuffix spells n in bijective base 26: 0 is "a", 25 is "z", 26 is "aa".
func lineSuffix(n int) string {
	var b []byte
	for n++; n > 0; n = (n - 1) / 26 {
		b = append(b, byte('a'+(n-1)%26))
	}
	slices.Reverse(b)
	return string(b)
}

// ParseEntryID splits an entry or line id into its month and sequence.
func ParseEntryID(s string) (year, month, seq int, err error) {
	m := entryIDPattern.FindStringSubmatch(EntryGroup(s))
	if m == nil {
		return 0, 0, 0, fmt.Errorf("invalid entry id %q (want YYYY-MM-NNN)", s)
	}
	year, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	if seq, err = strconv.Atoi(m[3]); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in entry id %q: %w", s, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("invalid month in entry id %q", s)
	}
	return year, month, seq, nil
}

// EntryGroup strips the line suffix: "2025-01-001ab" -> "2025-01-001".
func EntryGroup(lineID string) string {
	return strings.TrimRightFunc(lineID, func(r rune) bool {
		return r <= unicode.MaxASCII && unicode.IsLower(r)
	})
}

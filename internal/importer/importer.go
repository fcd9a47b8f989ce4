// Package importer turns export files from other bookkeeping tools into
// accounts and journal entries. Files are dropped into <books>/import/ and
// moved to import/processed/ once they have been applied.
package importer

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/ledgerbook/ledgerbook/internal/model"
)

var (
	// ErrUnknownFormat is returned by Lookup for a format no parser handles.
	ErrUnknownFormat = errors.New("unknown import format")
	// ErrDuplicateFormat is returned when two parsers claim the same format name.
	ErrDuplicateFormat = errors.New("import format already registered")
)

// Batch is everything one import file contributes to the books.
// Accounts form a forest; entries have no ids yet.
type Batch struct {
	Accounts []model.Account
	Entries  []model.JournalEntry
}

// Parser converts an export file into a Batch.
type Parser interface {
	Parse(r io.Reader) (Batch, error)
	Format() string
	// Ext is the file extension the inbox picks up for this format, e.g. ".json".
	Ext() string
}

// Registry maps format names, compared case-insensitively, to parsers.
type Registry struct {
	byFormat map[string]Parser
}

// NewRegistry returns a registry holding parsers.
func NewRegistry(parsers ...Parser) (*Registry, error) {
	r := &Registry{byFormat: make(map[string]Parser, len(parsers))}
	for _, p := range parsers {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry holds the built-in parsers.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(NewLegacyParser())
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds p under its format name.
func (r *Registry) Register(p Parser) error {
	name := strings.ToLower(p.Format())
	if _, taken := r.byFormat[name]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateFormat, name)
	}
	r.byFormat[name] = p
	return nil
}

// Lookup returns the parser for format.
func (r *Registry) Lookup(format string) (Parser, error) {
	p, ok := r.byFormat[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownFormat, format, strings.Join(r.Formats(), ", "))
	}
	return p, nil
}

// Formats lists the registered format names, sorted.
func (r *Registry) Formats() []string {
	return slices.Sorted(maps.Keys(r.byFormat))
}

package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ledgerbook/ledgerbook/internal/id"
	"github.com/ledgerbook/ledgerbook/internal/model"
)

// ErrInvalidEntry is returned when an entry breaks one or more invariants.
var ErrInvalidEntry = errors.New("validation failed")

// Service reads and appends journal entries under <repo>/journal/YYYY/MM/journal.csv.
type Service struct {
	repoRoot string
	accounts AccountChecker
	log      *zap.Logger
}

// NewService creates a journal Service.
func NewService(repoRoot string, accounts AccountChecker, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repoRoot: repoRoot, accounts: accounts, log: log}
}

// EntryParams holds parameters for recording a journal entry.
type EntryParams struct {
	Date        time.Time `validate:"required"`
	Reference   string
	Description string              `validate:"required"`
	Lines       []model.JournalLine `validate:"min=2,dive"`
}

// Record validates a new entry, assigns its id and appends it to the month's journal.csv.
// Nothing is written unless the entry is balanced and every line is valid.
func (s *Service) Record(params EntryParams) (model.JournalEntry, error) {
	if err := model.Validate(params); err != nil {
		return model.JournalEntry{}, fmt.Errorf("entry params: %w", err)
	}

	d := params.Date
	e := model.JournalEntry{
		Date:        time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		Reference:   params.Reference,
		Description: params.Description,
		Lines:       slices.Clone(params.Lines),
	}
	year, month := e.Date.Year(), int(e.Date.Month())

	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return model.JournalEntry{}, err
	}
	e.ID = id.FormatEntryID(year, month, nextSeq(existing))

	if verrs := ValidateEntry(e, s.accounts); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return model.JournalEntry{}, fmt.Errorf("%w: %s", ErrInvalidEntry, strings.Join(msgs, "; "))
	}

	if err := s.appendToMonth(year, month, e); err != nil {
		return model.JournalEntry{}, err
	}

	debit, _ := e.Totals()
	s.log.Info("entry recorded",
		zap.String("entry_id", e.ID),
		zap.String("date", e.Date.Format(dateFormat)),
		zap.Int("lines", len(e.Lines)),
		zap.String("amount", debit.StringFixed(2)),
	)
	return e, nil
}

func (s *Service) appendToMonth(year, month int, e model.JournalEntry) error {
	journalPath := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(journalPath), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(journalPath); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(journalPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendEntries(f, []model.JournalEntry{e}); err != nil {
		return fmt.Errorf("appending entry: %w", err)
	}
	return nil
}

// ReadMonth reads all entries for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.JournalEntry, error) {
	return readFile(s.monthPath(year, month))
}

// ReadAll reads every month file in chronological order. Within a month, entries keep file order.
func (s *Service) ReadAll() ([]model.JournalEntry, error) {
	paths, err := filepath.Glob(filepath.Join(s.repoRoot, "journal", "*", "*", "journal.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing journal files: %w", err)
	}
	slices.Sort(paths)

	var all []model.JournalEntry
	for _, p := range paths {
		entries, err := readFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// NextEntrySeq returns the next available sequence number for a month.
func (s *Service) NextEntrySeq(year, month int) (int, error) {
	entries, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}
	return nextSeq(entries), nil
}

func nextSeq(entries []model.JournalEntry) int {
	maxSeq := 0
	for _, e := range entries {
		_, _, seq, err := id.ParseEntryID(e.ID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}

func readFile(path string) ([]model.JournalEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return entries, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, "journal", fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}

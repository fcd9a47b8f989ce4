package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledgerbook/ledgerbook/internal/model"
)

// Service owns the chart of accounts forest and an id index over it.
type Service struct {
	roots []model.Account
	byID  map[string]FlatAccount
}

// NewService creates a Service from a forest of root accounts.
func NewService(roots []model.Account) *Service {
	s := &Service{}
	s.reset(roots)
	return s
}

func (s *Service) reset(roots []model.Account) {
	s.roots = roots
	s.byID = make(map[string]FlatAccount)
	for _, fa := range Flatten(roots) {
		s.byID[fa.Account.ID] = fa
	}
}

// Path returns the location of chart-of-accounts.csv under a repo root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, "accounts", "chart-of-accounts.csv")
}

// Load reads chart-of-accounts.csv from a repo root and returns a Service.
func Load(repoRoot string) (*Service, error) {
	f, err := os.Open(Path(repoRoot))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	roots, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(roots), nil
}

// Roots returns the top-level accounts.
func (s *Service) Roots() []model.Account {
	return s.roots
}

// All returns every account in pre-order with its depth.
func (s *Service) All() []FlatAccount {
	return Flatten(s.roots)
}

// Len returns the number of accounts at all depths.
func (s *Service) Len() int {
	return len(s.byID)
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	fa, ok := s.byID[id]
	return fa.Account, ok
}

// ParentOf returns the parent id of an account, "" for roots.
func (s *Service) ParentOf(id string) (string, bool) {
	fa, ok := s.byID[id]
	return fa.ParentID, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Resolve finds an account by id, falling back to its code.
func (s *Service) Resolve(ref string) (model.Account, error) {
	if a, ok := s.Get(ref); ok {
		return a, nil
	}
	if a, ok := FindByCode(s.roots, ref); ok {
		return a, nil
	}
	return model.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, ref)
}

// ByType returns all accounts of the given type in pre-order.
func (s *Service) ByType(accountType model.AccountType) []FlatAccount {
	return FlattenType(s.roots, accountType)
}

// Insert adds acct under parentID (or as a root). The chart is unchanged on error.
func (s *Service) Insert(acct model.Account, parentID string) error {
	roots, err := Insert(s.roots, acct, parentID)
	if err != nil {
		return err
	}
	s.reset(roots)
	return nil
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
// The file is replaced atomically.
func (s *Service) Save(repoRoot string) error {
	path := Path(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}

	if err := WriteAccounts(f, s.roots); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing chart of accounts: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing chart of accounts: %w", err)
	}
	return nil
}

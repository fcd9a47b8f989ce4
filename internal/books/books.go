// Package books ties the chart of accounts, the journal and the project
// configuration together. Every command goes through a *Books value; there is
// no package-level state.
package books

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ledgerbook/ledgerbook/internal/accounts"
	"github.com/ledgerbook/ledgerbook/internal/auditlog"
	"github.com/ledgerbook/ledgerbook/internal/config"
	"github.com/ledgerbook/ledgerbook/internal/gitops"
	"github.com/ledgerbook/ledgerbook/internal/journal"
	"github.com/ledgerbook/ledgerbook/internal/model"
)

// ErrAlreadyInitialized is returned by Init when ledgerbook.yaml already exists.
var ErrAlreadyInitialized = errors.New("books already initialized")

// trackedPaths are the files auto-commit stages.
var trackedPaths = []string{config.FileName, "accounts", "journal", "logs", ".gitignore"}

// Books is an open set of books rooted at one directory.
type Books struct {
	root    string
	cfg     *config.Config
	log     *zap.Logger
	chart   *accounts.Service
	journal *journal.Service
	entries []model.JournalEntry
	now     func() time.Time
}

// Open loads the chart and every journal month under root.
func Open(root string, cfg *config.Config, log *zap.Logger) (*Books, error) {
	if log == nil {
		log = zap.NewNop()
	}
	chart, err := accounts.Load(root)
	if err != nil {
		return nil, err
	}

	b := &Books{root: root, cfg: cfg, log: log, chart: chart, now: time.Now}
	b.journal = journal.NewService(root, b, log)

	b.entries, err = b.journal.ReadAll()
	if err != nil {
		return nil, err
	}
	log.Debug("books opened",
		zap.String("root", root),
		zap.Int("accounts", chart.Len()),
		zap.Int("entries", len(b.entries)),
	)
	return b, nil
}

// InitOptions controls Init.
type InitOptions struct {
	Git bool // run git init and commit the new books
}

// Init creates a new set of books at root with the default chart of accounts.
func Init(ctx context.Context, root string, cfg *config.Config, log *zap.Logger, opts InitOptions) (*Books, error) {
	if _, err := os.Stat(config.Path(root)); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyInitialized, root)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking config: %w", err)
	}

	for _, d := range []string{"accounts", "journal", "logs", "import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(config.Path(root), cfg); err != nil {
		return nil, err
	}
	if err := accounts.NewService(accounts.DefaultChart(cfg.Business.EntityType)).Save(root); err != nil {
		return nil, err
	}

	gitignore := "import/\nexports/\n*.tmp\n"
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return nil, fmt.Errorf("writing .gitignore: %w", err)
	}

	b, err := Open(root, cfg, log)
	if err != nil {
		return nil, err
	}

	if opts.Git && !gitops.IsRepo(root) {
		if err := gitops.Init(ctx, root); err != nil {
			return nil, err
		}
	}
	if err := b.record(ctx, auditlog.ActionInit, "Initialize "+cfg.Business.Name, "", "init: Initialize "+cfg.Business.Name); err != nil {
		return nil, err
	}
	return b, nil
}

// Root returns the books directory.
func (b *Books) Root() string { return b.root }

// Config returns the active configuration.
func (b *Books) Config() *config.Config { return b.cfg }

// Chart returns the chart of accounts.
func (b *Books) Chart() *accounts.Service { return b.chart }

// Entries returns the journal in store order.
func (b *Books) Entries() []model.JournalEntry { return b.entries }

// Exists implements journal.AccountChecker against the current chart.
func (b *Books) Exists(id string) bool { return b.chart.Exists(id) }

// SetClock replaces time.Now, for tests.
func (b *Books) SetClock(now func() time.Time) { b.now = now }

// record appends an audit row and, when enabled, commits the books.
func (b *Books) record(ctx context.Context, action, details, refID, commitMsg string) error {
	err := auditlog.Append(b.root, auditlog.Entry{
		Timestamp: b.now(),
		Actor:     b.cfg.Git.AuthorName,
		Action:    action,
		Details:   details,
		RefID:     refID,
	})
	if err != nil {
		return err
	}

	if !b.cfg.Git.AutoCommit || !gitops.IsRepo(b.root) {
		return nil
	}
	c := gitops.Committer{Dir: b.root, AuthorName: b.cfg.Git.AuthorName, AuthorEmail: b.cfg.Git.AuthorEmail}
	hash, err := c.Commit(ctx, commitMsg, trackedPaths...)
	if err != nil {
		return fmt.Errorf("committing books: %w", err)
	}
	b.log.Debug("books committed", zap.String("hash", hash), zap.String("message", commitMsg))
	return nil
}

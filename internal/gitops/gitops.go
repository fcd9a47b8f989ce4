// Package gitops versions the books directory with the git binary.
package gitops

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Init initializes a new git repository at dir.
func Init(ctx context.Context, dir string) error {
	if _, err := run(ctx, dir, "init", "--quiet"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Committer records changes to the books under a fixed identity.
type Committer struct {
	Dir         string
	AuthorName  string
	AuthorEmail string
}

// Commit stages paths (everything when none are given) and commits them.
// Paths that do not exist yet are skipped. It returns the short hash, or ""
// when there was nothing to commit.
func (c Committer) Commit(ctx context.Context, message string, paths ...string) (string, error) {
	add := []string{"add", "-A", "--"}
	if len(paths) == 0 {
		add = append(add, ".")
	}
	for _, p := range paths {
		if _, err := os.Stat(filepath.Join(c.Dir, p)); err == nil {
			add = append(add, p)
		}
	}
	if len(add) == 3 {
		return "", nil
	}
	if _, err := run(ctx, c.Dir, add...); err != nil {
		return "", fmt.Errorf("git add: %w", err)
	}

	// diff --cached --quiet exits 0 when the index matches HEAD.
	if _, err := run(ctx, c.Dir, "diff", "--cached", "--quiet"); err == nil && c.hasHead(ctx) {
		return "", nil
	}

	if _, err := run(ctx, c.Dir, c.identity("commit", "--quiet", "-m", message)...); err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}

	out, err := run(ctx, c.Dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return out, nil
}

func (c Committer) hasHead(ctx context.Context) bool {
	_, err := run(ctx, c.Dir, "rev-parse", "--verify", "--quiet", "HEAD")
	return err == nil
}

// identity sets author and committer so commits work without a global git config.
func (c Committer) identity(args ...string) []string {
	return append([]string{
		"-c", "user.name=" + c.AuthorName,
		"-c", "user.email=" + c.AuthorEmail,
	}, args...)
}

func run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w", msg, err)
		}
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

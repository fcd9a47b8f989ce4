package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Inbox is the import/ directory of a set of books.
type Inbox struct {
	dir string
}

// NewInbox returns the inbox under repoRoot.
func NewInbox(repoRoot string) Inbox {
	return Inbox{dir: filepath.Join(repoRoot, "import")}
}

// Dir returns the inbox directory.
func (in Inbox) Dir() string { return in.dir }

// ProcessedDir is where applied files end up.
func (in Inbox) ProcessedDir() string { return filepath.Join(in.dir, "processed") }

// Pending returns the paths of files directly in the inbox whose extension
// matches ext in any case, sorted by name. A missing inbox has no files.
func (in Inbox) Pending(ext string) ([]string, error) {
	dirEntries, err := os.ReadDir(in.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", in.dir, err)
	}

	var paths []string
	for _, de := range dirEntries {
		if !de.Type().IsRegular() || !strings.EqualFold(filepath.Ext(de.Name()), ext) {
			continue
		}
		paths = append(paths, filepath.Join(in.dir, de.Name()))
	}
	return paths, nil
}

// Archive moves an inbox file into the processed directory and returns its
// new path. An earlier file with the same name is never overwritten.
func (in Inbox) Archive(path string) (string, error) {
	if err := os.MkdirAll(in.ProcessedDir(), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", in.ProcessedDir(), err)
	}
	dst := filepath.Join(in.ProcessedDir(), filepath.Base(path))
	if _, err := os.Lstat(dst); err == nil {
		return "", fmt.Errorf("archiving %s: %w", filepath.Base(path), fs.ErrExist)
	}
	if err := os.Rename(path, dst); err != nil {
		return "", fmt.Errorf("archiving %s: %w", filepath.Base(path), err)
	}
	return dst, nil
}

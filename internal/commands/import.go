package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerbook/ledgerbook/internal/books"
	"github.com/ledgerbook/ledgerbook/internal/importer"
)

func newImportCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import accounts and entries from an export file",
		Long: `Import accounts and entries from export files.

With no arguments, every matching file in import/ is imported and then
moved to import/processed/. Named files are imported in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := importer.DefaultRegistry().Lookup(format)
			if err != nil {
				return err
			}

			b, err := opts.open()
			if err != nil {
				return err
			}

			inbox := importer.NewInbox(b.Root())
			scanned := len(args) == 0
			files := args
			if scanned {
				if files, err = inbox.Pending(parser.Ext()); err != nil {
					return err
				}
			}
			if len(files) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s files in import/\n", parser.Ext())
				return nil
			}

			failed := 0
			for _, path := range files {
				res, err := importFile(cmd, b, parser, path)
				if err != nil {
					return err
				}
				failed += len(res.Failures)
				if scanned {
					if _, err := inbox.Archive(path); err != nil {
						return err
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d item(s) could not be imported", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "legacy-json", "export format")
	return cmd
}

func importFile(cmd *cobra.Command, b *books.Books, parser importer.Parser, path string) (books.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return books.ImportResult{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	batch, err := parser.Parse(f)
	if err != nil {
		return books.ImportResult{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	name := filepath.Base(path)
	res, err := b.Import(cmd.Context(), name, batch)
	if err != nil {
		return res, err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d accounts added, %d already present, %d entries recorded\n",
		name, res.AccountsAdded, res.AccountsSkipped, res.EntriesRecorded)
	for _, ferr := range res.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "  skipped: %v\n", ferr)
	}
	return res, nil
}

package commands

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/amazon"
	"github.com/tally-dev/tally/internal/auditlog"
	"github.com/tally-dev/tally/internal/bankformat"
	"github.com/tally-dev/tally/internal/importer"
)

func newImportCommand() *cobra.Command {
	var formatName string
	var source string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a bank or credit card CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0], formatName, source)
		},
	}

	cmd.Flags().StringVar(&formatName, "format", "", "bank format name (auto-detected when omitted)")
	cmd.Flags().StringVar(&source, "source", "", "import batch tag, e.g. 'chase-jan' (required)")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func runImport(path, formatName, source string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	format, err := chooseFormat(e, data, formatName)
	if err != nil {
		return err
	}
	e.log.Info().Str("format", format.Name).Str("file", filepath.Base(path)).Msg("importing")

	// Restore the order pool and its consumed set so reconciliation
	// carries across invocations.
	orders, consumed, err := e.session.ReadOrders()
	if err != nil {
		return err
	}
	var reconciler *amazon.Reconciler
	parser := &importer.Parser{Format: format, Source: source, Log: e.log}
	if len(orders) > 0 {
		reconciler = amazon.NewReconciler(orders)
		reconciler.MarkConsumed(consumed...)
		parser.Reconciler = reconciler
	}

	report, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	// Categorize in bulk once the whole file is normalized and reconciled.
	e.store.Apply(report.Transactions)

	if err := e.session.AppendTransactions(report.Transactions); err != nil {
		return err
	}
	if reconciler != nil {
		matched := make(map[int]bool)
		for _, o := range orders {
			if reconciler.Consumed(o.ID) {
				matched[o.ID] = true
			}
		}
		if err := e.session.WriteOrders(orders, matched); err != nil {
			return err
		}
	}

	entry := auditlog.NewEntry(source, filepath.Base(path), len(report.Transactions), len(report.Skips), report.Matched)
	if err := auditlog.Append(e.dataDir, []auditlog.Entry{entry}); err != nil {
		return err
	}

	fmt.Printf("Imported %d transactions from %s (%d skipped, %d Amazon orders matched)\n",
		len(report.Transactions), filepath.Base(path), len(report.Skips), report.Matched)
	return nil
}

// chooseFormat resolves the --format flag, or detects the format from the
// file's header row and, failing that, from the shape of its first row.
func chooseFormat(e *env, data []byte, formatName string) (bankformat.Format, error) {
	if formatName != "" {
		f, ok := e.registry.Lookup(formatName)
		if !ok {
			return bankformat.Format{}, fmt.Errorf("unknown format %q (known: %s)",
				formatName, strings.Join(e.registry.Names(), ", "))
		}
		return f, nil
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	first, err := cr.Read()
	if err != nil {
		return bankformat.Format{}, fmt.Errorf("reading first row: %w", err)
	}
	if len(first) > 0 {
		first[0] = strings.TrimPrefix(first[0], "\uFEFF")
	}

	if f, ok := e.registry.DetectFromHeaders(first); ok {
		return f, nil
	}
	if f, ok := e.registry.DetectHeaderless(first); ok {
		return f, nil
	}
	return bankformat.Format{}, fmt.Errorf("could not detect bank format; pass --format (known: %s)",
		strings.Join(e.registry.Names(), ", "))
}

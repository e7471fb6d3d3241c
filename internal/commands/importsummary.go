package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/excel"
)

func newImportSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import-summary <file.xlsx>",
		Short: "Load transactions from a previously exported summary workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportSummary(args[0])
		},
	}
}

func runImportSummary(path string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	txns, err := excel.ImportSummary(path, e.log)
	if err != nil {
		return err
	}
	if err := e.session.AppendTransactions(txns); err != nil {
		return err
	}

	fmt.Printf("Loaded %d transactions from %s\n", len(txns), filepath.Base(path))
	return nil
}

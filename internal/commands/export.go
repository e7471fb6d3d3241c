package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/excel"
	"github.com/tally-dev/tally/internal/summary"
)

func newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the monthly summary workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output .xlsx path (default from tally.yaml)")

	return cmd
}

func runExport(output string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if output == "" {
		output = e.cfg.Export.OutputFile
	}

	txns, err := e.session.ReadTransactions()
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		return fmt.Errorf("no transactions in session; run 'tally import' first")
	}

	s := summary.Summarize(txns, e.store)
	if err := excel.Export(output, s, e.store); err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %d expenses, %d income, %d payments across %d months\n",
		output, len(s.Expenses), len(s.Income), len(s.Payments), len(s.Monthly))
	return nil
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/amazon"
)

func newAmazonCommand() *cobra.Command {
	var dateCol, totalCol, itemsCol string

	cmd := &cobra.Command{
		Use:   "amazon <orders.csv>",
		Short: "Load an Amazon order-history CSV for charge reconciliation",
		Long: `Load an Amazon order-history CSV for charge reconciliation.

Loading a new file replaces the current order pool and clears its matched
set. Orders only apply to transactions imported after the pool is loaded;
re-import earlier CSVs to reconcile them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAmazon(args[0], dateCol, totalCol, itemsCol)
		},
	}

	cmd.Flags().StringVar(&dateCol, "date-col", "", "order date column name")
	cmd.Flags().StringVar(&totalCol, "total-col", "", "order total column name")
	cmd.Flags().StringVar(&itemsCol, "items-col", "", "item description column name")

	return cmd
}

func runAmazon(path, dateCol, totalCol, itemsCol string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	cols := amazon.Columns{
		Date:  e.cfg.Amazon.DateColumn,
		Total: e.cfg.Amazon.TotalColumn,
		Items: e.cfg.Amazon.ItemsColumn,
	}
	if dateCol != "" {
		cols.Date = dateCol
	}
	if totalCol != "" {
		cols.Total = totalCol
	}
	if itemsCol != "" {
		cols.Items = itemsCol
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	orders, err := amazon.LoadOrders(f, cols, e.log)
	if err != nil {
		return fmt.Errorf("loading order history: %w", err)
	}

	// A fresh pool always starts with an empty consumed set.
	if err := e.session.WriteOrders(orders, nil); err != nil {
		return err
	}

	fmt.Printf("Loaded %d Amazon orders from %s\n", len(orders), filepath.Base(path))
	return nil
}

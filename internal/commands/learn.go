package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/category"
)

func newLearnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "learn <description> <category>",
		Short: "Map a transaction description to a category",
		Long: `Map a transaction description to a category.

The mapping key is the case-folded, whitespace-trimmed description, so
"Whole Foods " and "WHOLE FOODS" are the same key. Matching transactions
already in the session are recategorized.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLearn(args[0], args[1])
		},
	}
}

func runLearn(description, cat string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	e.store.Learn(description, cat)
	if err := e.saveStore(); err != nil {
		return err
	}

	// Recategorize session transactions that share the key.
	txns, err := e.session.ReadTransactions()
	if err != nil {
		return err
	}
	key := category.Normalize(description)
	updated := 0
	for i := range txns {
		if category.Normalize(txns[i].Description) == key && txns[i].Category != cat {
			txns[i].Category = cat
			updated++
		}
	}
	if updated > 0 {
		if err := e.session.WriteTransactions(txns); err != nil {
			return err
		}
	}

	fmt.Printf("Learned %q -> %s (%d existing transactions updated)\n", description, cat, updated)
	return nil
}

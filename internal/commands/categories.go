package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/category"
)

func newCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the category taxonomy",
	}
	cmd.AddCommand(newCategoriesListCommand())
	cmd.AddCommand(newCategoriesAddCommand())
	cmd.AddCommand(newCategoriesRemoveCommand())
	return cmd
}

func newCategoriesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all category names by kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			fmt.Printf("Expense: %s\n", strings.Join(e.store.Expense, ", "))
			fmt.Printf("Income:  %s\n", strings.Join(e.store.Income, ", "))
			fmt.Printf("Payment: %s\n", strings.Join(e.store.Payment, ", "))
			fmt.Printf("Learned mappings: %d\n", len(e.store.Mappings))
			return nil
		},
	}
}

func newCategoriesAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <expense|income|payment> <name>",
		Short: "Add a category name to one taxonomy list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			if err := e.store.Add(category.Kind(args[0]), args[1]); err != nil {
				return err
			}
			if err := e.saveStore(); err != nil {
				return err
			}
			fmt.Printf("Added %s category %q\n", args[0], args[1])
			return nil
		},
	}
}

func newCategoriesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <expense|income|payment> <name>",
		Short: "Remove a category name from one taxonomy list",
		Long: `Remove a category name from one taxonomy list.

Transactions already carrying the name keep it, and learned mappings that
point to it are left in place.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			if err := e.store.Remove(category.Kind(args[0]), args[1]); err != nil {
				return err
			}
			if err := e.saveStore(); err != nil {
				return err
			}
			fmt.Printf("Removed %s category %q\n", args[0], args[1])
			return nil
		},
	}
}

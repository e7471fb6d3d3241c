package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/appdir"
	"github.com/tally-dev/tally/internal/category"
	"github.com/tally-dev/tally/internal/config"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the tally data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit()
		},
	}
}

func runInit() error {
	dataDir, err := appdir.Resolve()
	if err != nil {
		return err
	}

	configPath := filepath.Join(dataDir, configFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.Save(configPath, config.Default()); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	}

	mappingsPath := filepath.Join(dataDir, mappingsFile)
	if _, err := os.Stat(mappingsPath); os.IsNotExist(err) {
		if err := category.Default().Save(mappingsPath); err != nil {
			return fmt.Errorf("writing category config: %w", err)
		}
	}

	fmt.Printf("Initialized tally data directory at %s\n", dataDir)
	return nil
}

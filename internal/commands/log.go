package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/auditlog"
)

func newLogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the import audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog()
		},
	}
}

func runLog() error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	entries, err := auditlog.Read(e.dataDir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No imports recorded")
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("%s  %s  source=%s file=%s imported=%d skipped=%d matched=%d\n",
			entry.Timestamp.Format(time.RFC3339), entry.BatchID, entry.Source,
			entry.File, entry.Imported, entry.Skipped, entry.Matched)
	}
	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucasnoah/hivecheck/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history [log-file]",
	Short: "Show recorded verification runs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logPath := ""
		if len(args) == 1 {
			logPath = args[0]
		}
		limit, _ := cmd.Flags().GetInt("limit")

		d, cleanup, err := openDB()
		if err != nil {
			return err
		}
		defer cleanup()

		runs, err := d.GetRunHistory(logPath, limit)
		if err != nil {
			return fmt.Errorf("get run history: %w", err)
		}

		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No verification runs found.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-6s %-10s %-16s %-6s %-4s %-4s %-20s %s\n",
			"ID", "RUN", "CATEGORY", "RESULT", "ERR", "WARN", "TIMESTAMP", "LOG")
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", 90))

		for _, r := range runs {
			result := "FAIL"
			if r.Passed {
				result = "PASS"
			}
			fmt.Fprintf(w, "%-6d %-10s %-16s %-6s %-4d %-4d %-20s %s\n",
				r.ID, shortRunID(r.RunID), r.Category, result,
				r.Errors, r.Warnings, r.Timestamp, r.LogPath)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 40, "Maximum number of rows to show (0 = all)")
}

// shortRunID truncates a uuid to its first segment for table display.
func shortRunID(id string) string {
	if idx := strings.Index(id, "-"); idx > 0 {
		return id[:idx]
	}
	return id
}

// openDB opens and migrates the history DB, returning it with a cleanup func.
func openDB() (*db.DB, func(), error) {
	dbPath, err := db.DefaultDBPath()
	if err != nil {
		return nil, nil, err
	}
	d, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := d.Migrate(); err != nil {
		d.Close()
		return nil, nil, err
	}
	return d, func() { d.Close() }, nil
}

package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "hivecheck",
	Short: "hivecheck — post-hoc verification of HIVE multi-agent log captures",
	Long: `hivecheck analyzes captured log output from a HIVE multi-agent run and
verifies that the expected lifecycle events occurred: system startup, agent
state transitions, tool registration, and LLM interactions.

Run history is stored in ~/.hivecheck/ (SQLite).`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger builds the diagnostic logger written to stderr. Debug output is
// gated behind --verbose.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lucasnoah/hivecheck/internal/config"
	"github.com/lucasnoah/hivecheck/internal/db"
	"github.com/lucasnoah/hivecheck/internal/report"
	"github.com/lucasnoah/hivecheck/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [log-file]",
	Short: "Parse a HIVE log capture and verify expected lifecycle events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logPath := args[0]
		format, _ := cmd.Flags().GetString("format")
		configPath, _ := cmd.Flags().GetString("config")
		expectFlag, _ := cmd.Flags().GetString("expect")
		noHistory, _ := cmd.Flags().GetBool("no-history")
		verbose, _ := cmd.Flags().GetBool("verbose")

		logger := newLogger(verbose, cmd.ErrOrStderr())

		content, err := os.ReadFile(logPath)
		if err != nil {
			return fmt.Errorf("read log file %q: %w", logPath, err)
		}

		cfg, err := loadExpectations(configPath)
		if err != nil {
			return err
		}
		if expectFlag != "" {
			cfg.Verify.ExpectedTools = splitTools(expectFlag)
		}
		if errs := config.Validate(cfg); len(errs) > 0 {
			return fmt.Errorf("invalid expectations: %w", errs[0])
		}

		results := verify.Verify(string(content), verify.Options{
			ExpectedTools:  cfg.Verify.ExpectedTools,
			MinReadyActors: cfg.Verify.MinReadyActors,
		})
		logger.Debug("verification complete",
			"log_path", logPath, "bytes", len(content), "categories", len(results))

		switch format {
		case "json":
			out, err := report.RenderJSON(results)
			if err != nil {
				return fmt.Errorf("render JSON report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		default:
			fmt.Fprint(cmd.OutOrStdout(), report.Render(results))
		}

		// History recording is best-effort: a broken DB must not change
		// the verification outcome.
		if !noHistory {
			if err := recordRun(logPath, results); err != nil {
				logger.Warn("record run history", "error", err)
			}
		}

		if report.ExitStatus(results) != 0 {
			failed := 0
			for _, r := range results {
				if !r.Passed {
					failed++
				}
			}
			cmd.SilenceUsage = true
			return fmt.Errorf("verification failed: %d of %d categories failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().String("format", "text", "Output format: text or json")
	verifyCmd.Flags().String("config", "", "Path to an expectations YAML file")
	verifyCmd.Flags().String("expect", "", "Comma-separated expected tool names (overrides config)")
	verifyCmd.Flags().Bool("no-history", false, "Skip recording this run in the history DB")
	verifyCmd.Flags().Bool("verbose", false, "Enable debug diagnostics on stderr")
}

// splitTools parses a comma-separated tool list, dropping empty items.
func splitTools(s string) []string {
	var tools []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tools = append(tools, t)
		}
	}
	return tools
}

// loadExpectations resolves the expectations to verify against: an explicit
// --config path, else the standard search locations, else built-in defaults.
func loadExpectations(path string) (*config.Expectations, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load expectations: %w", err)
		}
		return cfg, nil
	}
	return config.LoadDefault()
}

// recordRun stores one row per category in the history DB, correlated by a
// fresh run id.
func recordRun(logPath string, results map[string]verify.Result) error {
	dbPath, err := db.DefaultDBPath()
	if err != nil {
		return err
	}
	d, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer d.Close()
	if err := d.Migrate(); err != nil {
		return err
	}

	runID := uuid.NewString()
	for _, category := range verify.Categories {
		r, ok := results[category]
		if !ok {
			continue
		}
		summaryJSON, err := json.Marshal(r.Summary)
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		if err := d.LogVerificationRun(
			runID, logPath, category,
			r.Passed, len(r.Errors), len(r.Warnings), string(summaryJSON),
		); err != nil {
			return err
		}
	}
	return nil
}

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lucasnoah/hivecheck/internal/verify"
)

func executeCommand(args ...string) (string, error) {
	// Package-level commands keep flag state between executions.
	for _, c := range []*cobra.Command{verifyCmd, historyCmd} {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			}
		})
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// passingLog mirrors a complete healthy run capture.
const passingLog = `2024-01-15T10:30:00.000001Z INFO ThreadId(01) main:hive Starting headless HIVE multi-agent system
2024-01-15T10:30:00.000002Z DEBUG ThreadId(01) main:hive::config Loaded configuration from disk
2024-01-15T10:30:00.000003Z INFO ThreadId(02) agent:hive::agent Agent starting execution
2024-01-15T10:30:00.000004Z DEBUG ThreadId(02) actor:hive::actors Actor ready, sending ready signal
2024-01-15T10:30:00.000005Z DEBUG ThreadId(02) actor:hive::actors Actor ready, sending ready signal
2024-01-15T10:30:00.000006Z DEBUG ThreadId(02) actor:hive::actors Actor ready, sending ready signal
2024-01-15T10:30:00.000007Z DEBUG ThreadId(02) actor:hive::actors Actor ready, sending ready signal
2024-01-15T10:30:00.000008Z INFO ThreadId(02) agent:hive::state Agent state transition from Idle to Running
2024-01-15T10:30:00.000009Z INFO ThreadId(03) llm_request:hive::llm Executing LLM chat request model=claude tools_count=12
2024-01-15T10:30:00.000010Z DEBUG ThreadId(03) conn:hyper::client starting new connection to api.anthropic.com
`

func writeTempLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hive.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp log: %v", err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	SetVersion("test-version")
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "test-version") {
		t.Errorf("expected version output to contain 'test-version', got: %s", out)
	}
}

func TestRootHelp(t *testing.T) {
	out, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, sub := range []string{"verify", "history", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing subcommand %q", sub)
		}
	}
}

func TestVerifyCommand_PassingLog(t *testing.T) {
	path := writeTempLog(t, passingLog)
	out, err := executeCommand("verify", path, "--no-history")
	if err != nil {
		t.Fatalf("expected success, got error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Overall Status: PASSED") {
		t.Errorf("expected passing report, got:\n%s", out)
	}
}

func TestVerifyCommand_FailingLog(t *testing.T) {
	// Drop the state transition line; agent_lifecycle must fail and the
	// command must return an error so main exits 1.
	var lines []string
	for _, line := range strings.Split(passingLog, "\n") {
		if strings.Contains(line, "state transition") {
			continue
		}
		lines = append(lines, line)
	}
	path := writeTempLog(t, strings.Join(lines, "\n"))

	out, err := executeCommand("verify", path, "--no-history")
	if err == nil {
		t.Fatal("expected error for failing verification")
	}
	if !strings.Contains(out, "Overall Status: FAILED") {
		t.Errorf("expected failing report, got:\n%s", out)
	}
	if !strings.Contains(out, "No agent state transitions found") {
		t.Errorf("expected transition error in report, got:\n%s", out)
	}
}

func TestVerifyCommand_JSONFormat(t *testing.T) {
	path := writeTempLog(t, passingLog)
	out, err := executeCommand("verify", path, "--no-history", "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]verify.Result
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(decoded) != len(verify.Categories) {
		t.Errorf("expected %d categories, got %d", len(verify.Categories), len(decoded))
	}
}

func TestVerifyCommand_ExpectOverride(t *testing.T) {
	path := writeTempLog(t, passingLog)
	out, err := executeCommand("verify", path, "--no-history", "--format", "json", "--expect", "claude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]verify.Result
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	summary := decoded[verify.CategoryToolExecution].Summary
	if summary["claude_calls"] != 1 {
		t.Errorf("expected claude_calls=1, got %d", summary["claude_calls"])
	}
	if _, ok := summary["planner_calls"]; ok {
		t.Error("explicit --expect must replace the default tool list")
	}
}

func TestVerifyCommand_MissingFile(t *testing.T) {
	_, err := executeCommand("verify", filepath.Join(t.TempDir(), "absent.log"), "--no-history")
	if err == nil {
		t.Error("expected error for missing log file")
	}
}

func TestVerifyCommand_WrongArgCount(t *testing.T) {
	if _, err := executeCommand("verify"); err == nil {
		t.Error("expected error for missing positional argument")
	}
	if _, err := executeCommand("verify", "a.log", "b.log"); err == nil {
		t.Error("expected error for extra positional argument")
	}
}

func TestHistoryCommand_Empty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := executeCommand("history")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No verification runs found.") {
		t.Errorf("expected empty-history message, got:\n%s", out)
	}
}

func TestVerifyThenHistory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeTempLog(t, passingLog)
	if _, err := executeCommand("verify", path); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	out, err := executeCommand("history", path)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	for _, category := range verify.Categories {
		if !strings.Contains(out, category) {
			t.Errorf("history missing category %q:\n%s", category, out)
		}
	}
	if !strings.Contains(out, "PASS") {
		t.Errorf("expected PASS rows in history, got:\n%s", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := executeCommand("nonexistent"); err == nil {
		t.Error("expected error for unknown command, got nil")
	}
}

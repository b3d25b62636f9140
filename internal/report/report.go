package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/lucasnoah/hivecheck/internal/verify"
)

// Overall returns true when every category passed.
func Overall(results map[string]verify.Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// ExitStatus derives the process exit code from the results: 0 when every
// category passed, 1 otherwise.
func ExitStatus(results map[string]verify.Result) int {
	if Overall(results) {
		return 0
	}
	return 1
}

// Render formats results as a human-readable report. Categories appear in
// verify.Categories order; within a category the summary metrics come first
// (sorted by key), then errors, then warnings.
func Render(results map[string]verify.Result) string {
	var b strings.Builder

	overall := "PASSED"
	if !Overall(results) {
		overall = "FAILED"
	}
	b.WriteString("HIVE Log Verification Results\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Overall Status: %s\n\n", overall)

	for _, category := range verify.Categories {
		r, ok := results[category]
		if !ok {
			continue
		}
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "[%s] %s\n", status, title(category))
		for _, key := range sortedKeys(r.Summary) {
			fmt.Fprintf(&b, "  - %s: %d\n", strings.ReplaceAll(key, "_", " "), r.Summary[key])
		}
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "  ERROR: %s\n", e)
		}
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  WARN: %s\n", w)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderJSON formats results as indented JSON keyed by category.
func RenderJSON(results map[string]verify.Result) (string, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func title(category string) string {
	words := strings.Split(category, "_")
	for i, w := range words {
		if w == "llm" {
			words[i] = "LLM"
			continue
		}
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

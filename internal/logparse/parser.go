package logparse

import (
	"regexp"
	"strings"
)

// threadRe matches the ThreadId(N) token emitted by the tracing layer.
var threadRe = regexp.MustCompile(`^ThreadId\((\d+)\)`)

// fieldRe matches key=value tokens anywhere in the message segment.
var fieldRe = regexp.MustCompile(`(\w+)=(\S+)`)

// Parse converts raw HIVE log output into an ordered slice of entries.
// Expected line shape: TIMESTAMP LEVEL ThreadId(N) SPAN:TARGET MESSAGE fields...
// Lines that don't match are dropped; Parse itself never fails — empty or
// fully malformed input yields an empty slice.
func Parse(content string) []LogEntry {
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, ok := parseLine(line)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseLine parses a single line. ok is false for lines with fewer than
// five space-delimited segments.
func parseLine(line string) (LogEntry, bool) {
	parts := strings.SplitN(line, " ", 5)
	if len(parts) < 5 {
		return LogEntry{}, false
	}

	threadID := "unknown"
	if m := threadRe.FindStringSubmatch(parts[2]); m != nil {
		threadID = m[1]
	}

	// The fourth segment is SPAN:TARGET; without a colon it is a bare
	// target with no span.
	span := ""
	target := parts[3]
	if idx := strings.Index(parts[3], ":"); idx >= 0 {
		span = parts[3][:idx]
		target = parts[3][idx+1:]
	}

	// Last key wins on duplicates. The tokens stay part of the message.
	fields := make(map[string]string)
	for _, m := range fieldRe.FindAllStringSubmatch(parts[4], -1) {
		fields[m[1]] = unquote(m[2])
	}

	return LogEntry{
		Timestamp: parts[0],
		Level:     parts[1],
		ThreadID:  threadID,
		Span:      span,
		Target:    target,
		Message:   parts[4],
		Fields:    fields,
	}, true
}

// unquote strips one leading and one trailing double quote independently.
// Unpaired quotes are stripped too; existing test logs depend on this.
func unquote(v string) string {
	v = strings.TrimPrefix(v, `"`)
	return strings.TrimSuffix(v, `"`)
}

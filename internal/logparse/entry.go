package logparse

// LogEntry represents a single parsed HIVE log line.
type LogEntry struct {
	Timestamp string
	Level     string
	ThreadID  string
	Span      string
	Target    string
	Message   string
	Fields    map[string]string
}

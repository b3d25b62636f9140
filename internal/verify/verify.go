package verify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasnoah/hivecheck/internal/logparse"
)

// Category names for the four verification checks.
const (
	CategorySystemStartup  = "system_startup"
	CategoryAgentLifecycle = "agent_lifecycle"
	CategoryToolExecution  = "tool_execution"
	CategoryLLMInteraction = "llm_interaction"
)

// Categories lists all check categories in report order.
var Categories = []string{
	CategorySystemStartup,
	CategoryAgentLifecycle,
	CategoryToolExecution,
	CategoryLLMInteraction,
}

// DefaultExpectedTools is the tool set a standard HIVE test run exercises.
var DefaultExpectedTools = []string{"planner", "spawn_agent", "command", "file_reader"}

// DefaultMinReadyActors is the expected minimum number of ready actors
// (assistant, planner, spawn_agent, plan_approval).
const DefaultMinReadyActors = 4

// Options tunes what the checks require of a log.
type Options struct {
	ExpectedTools  []string
	MinReadyActors int
}

func (o Options) withDefaults() Options {
	if len(o.ExpectedTools) == 0 {
		o.ExpectedTools = DefaultExpectedTools
	}
	if o.MinReadyActors <= 0 {
		o.MinReadyActors = DefaultMinReadyActors
	}
	return o
}

// Verify parses the raw log text and runs every check against the resulting
// entries. The returned map is keyed by category name; each check is
// independent and only reads the shared entry slice.
func Verify(logText string, opts Options) map[string]Result {
	opts = opts.withDefaults()
	entries := logparse.Parse(logText)
	return map[string]Result{
		CategorySystemStartup:  SystemStartup(entries),
		CategoryAgentLifecycle: AgentLifecycle(entries, opts.MinReadyActors),
		CategoryToolExecution:  ToolExecution(entries, opts.ExpectedTools),
		CategoryLLMInteraction: LLMInteraction(entries),
	}
}

// SystemStartup verifies that the HIVE system announced startup and loaded
// its configuration.
func SystemStartup(entries []logparse.LogEntry) Result {
	r := newResult()

	startups := countMessage(entries, "Starting headless HIVE multi-agent system")
	r.Summary["hive_startup_events"] = startups
	if startups == 0 {
		r.Errors = append(r.Errors, "HIVE system startup not found")
	}

	configEvents := 0
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Target), "config") {
			configEvents++
		}
	}
	r.Summary["config_events"] = configEvents
	if configEvents == 0 {
		r.Warnings = append(r.Warnings, "No config loading events found")
	}

	r.Summary["actor_creation_events"] = countMessage(entries, "Starting actors for agent")

	return r.finish()
}

// AgentLifecycle verifies that agents started and moved through their
// state machine.
func AgentLifecycle(entries []logparse.LogEntry, minReadyActors int) Result {
	r := newResult()

	started := countMessage(entries, "Agent starting execution")
	r.Summary["agents_started"] = started
	if started == 0 {
		r.Errors = append(r.Errors, "No agents were started")
	}

	ready := countMessage(entries, "Actor ready, sending ready signal")
	r.Summary["actors_ready"] = ready
	if ready < minReadyActors {
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("Expected at least %d actors to be ready, got %d", minReadyActors, ready))
	}

	transitions := countMessage(entries, "state transition")
	r.Summary["state_transitions"] = transitions
	if transitions == 0 {
		r.Errors = append(r.Errors, "No agent state transitions found")
	}

	return r.finish()
}

// ToolExecution reports on tool registration and how tools were offered to
// the LLM. It is purely descriptive: no count produces an error or warning.
func ToolExecution(entries []logparse.LogEntry, expectedTools []string) Result {
	r := newResult()

	r.Summary["tool_registration_events"] = countSpan(entries, "tools_available")

	requests := 0
	maxTools := 0
	for _, e := range entries {
		if !strings.Contains(e.Span, "llm_request") {
			continue
		}
		raw, ok := e.Fields["tools_count"]
		if !ok {
			continue
		}
		requests++
		n, err := strconv.Atoi(raw)
		if err != nil {
			n = 0
		}
		if n > maxTools {
			maxTools = n
		}
	}
	r.Summary["llm_requests_with_tools"] = requests
	if requests > 0 {
		r.Summary["max_tools_in_request"] = maxTools
	}

	for _, tool := range expectedTools {
		needle := strings.ToLower(tool)
		calls := 0
		for _, e := range entries {
			if strings.Contains(strings.ToLower(e.Message), needle) {
				calls++
			}
		}
		r.Summary[tool+"_calls"] = calls
	}

	return r.finish()
}

// LLMInteraction verifies that LLM requests were made and that matching
// network activity was observed.
func LLMInteraction(entries []logparse.LogEntry) Result {
	r := newResult()

	requests := countMessage(entries, "Executing LLM chat request")
	r.Summary["llm_requests"] = requests
	if requests == 0 {
		r.Errors = append(r.Errors, "No LLM requests found")
	}

	connections := countMessage(entries, "starting new connection")
	r.Summary["network_connections"] = connections
	if requests > 0 && connections == 0 {
		r.Warnings = append(r.Warnings, "LLM requests found but no network connections")
	}

	r.Summary["user_input_events"] = countSpan(entries, "user_input")

	return r.finish()
}

func countMessage(entries []logparse.LogEntry, substr string) int {
	n := 0
	for _, e := range entries {
		if strings.Contains(e.Message, substr) {
			n++
		}
	}
	return n
}

func countSpan(entries []logparse.LogEntry, substr string) int {
	n := 0
	for _, e := range entries {
		if strings.Contains(e.Span, substr) {
			n++
		}
	}
	return n
}

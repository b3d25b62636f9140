package verify

// Result holds the outcome of a single verification check.
// Warnings are advisory only; Passed is false iff Errors is non-empty.
type Result struct {
	Passed   bool           `json:"passed"`
	Errors   []string       `json:"errors,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Summary  map[string]int `json:"summary"`
}

func newResult() Result {
	return Result{Summary: make(map[string]int)}
}

func (r Result) finish() Result {
	r.Passed = len(r.Errors) == 0
	return r
}

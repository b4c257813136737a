package model

// ScanRequest is the per-call input to the engine. An empty or absent
// standards list means every registered standard is active.
type ScanRequest struct {
	Code      string   `json:"code"`
	Standards []string `json:"standards,omitempty"`
}

// ScanResult is the per-call output. Issues are sorted by severity rank
// descending, then line ascending, then rule id, so identical input always
// produces identical output.
type ScanResult struct {
	Passed  bool             `json:"passed"`
	Issues  []Finding        `json:"issues"`
	Summary map[Severity]int `json:"summary"`

	// TimedOut is set when the total scan budget expired and the result
	// was assembled from the rules that completed in time. A truncated
	// scan must never be mistaken for a clean pass.
	TimedOut bool `json:"timed_out,omitempty"`

	// DroppedRules counts rules whose matcher timed out or failed and
	// whose contribution was discarded.
	DroppedRules int `json:"dropped_rules,omitempty"`
}

// NewSummary returns a severity counter with all four buckets present.
func NewSummary() map[Severity]int {
	s := make(map[Severity]int, len(Severities))
	for _, sev := range Severities {
		s[sev] = 0
	}
	return s
}

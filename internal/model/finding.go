package model

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists all severities in descending rank order.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Rank maps a severity to a sortable weight, higher is worse.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// Finding is one reported occurrence of a rule matching the scanned code.
type Finding struct {
	RuleID      string   `json:"rule_id"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Evidence    string   `json:"evidence,omitempty"`
	Remediation string   `json:"remediation,omitempty"`
	Line        int      `json:"line_number,omitempty"`

	// offset is the byte offset of the match, kept for deterministic
	// ordering of same-line findings. Not part of the wire format.
	offset int
}

// NewFinding builds a finding anchored at the given byte offset.
func NewFinding(ruleID string, sev Severity, description, evidence, remediation string, line, offset int) Finding {
	return Finding{
		RuleID:      ruleID,
		Severity:    sev,
		Description: description,
		Evidence:    evidence,
		Remediation: remediation,
		Line:        line,
		offset:      offset,
	}
}

// Offset returns the byte offset of the match within the scanned code.
func (f Finding) Offset() int { return f.offset }

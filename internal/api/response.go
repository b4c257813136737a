package api

import "compliscan/scan-engine/internal/model"

// scanResponse is the wire shape of a scan result. Canonical field names
// are rule_name/description/line_number/remediation; the legacy aliases
// (rule_id/message/line/recommendation) are populated alongside them for
// callers of the old API.
type scanResponse struct {
	Passed       bool            `json:"passed"`
	Issues       []issueResponse `json:"issues"`
	Summary      map[string]int  `json:"summary"`
	TimedOut     bool            `json:"timed_out,omitempty"`
	DroppedRules int             `json:"dropped_rules,omitempty"`
}

type issueResponse struct {
	Severity    string `json:"severity"`
	RuleName    string `json:"rule_name"`
	Description string `json:"description"`
	Evidence    string `json:"evidence,omitempty"`
	Remediation string `json:"remediation,omitempty"`
	LineNumber  int    `json:"line_number,omitempty"`

	// legacy aliases
	RuleID         string `json:"rule_id,omitempty"`
	Message        string `json:"message,omitempty"`
	Line           int    `json:"line,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
}

func toScanResponse(result *model.ScanResult) scanResponse {
	issues := make([]issueResponse, 0, len(result.Issues))
	for _, f := range result.Issues {
		issues = append(issues, issueResponse{
			Severity:       string(f.Severity),
			RuleName:       f.RuleID,
			Description:    f.Description,
			Evidence:       f.Evidence,
			Remediation:    f.Remediation,
			LineNumber:     f.Line,
			RuleID:         f.RuleID,
			Message:        f.Description,
			Line:           f.Line,
			Recommendation: f.Remediation,
		})
	}
	summary := make(map[string]int, len(result.Summary))
	for sev, count := range result.Summary {
		summary[string(sev)] = count
	}
	return scanResponse{
		Passed:       result.Passed,
		Issues:       issues,
		Summary:      summary,
		TimedOut:     result.TimedOut,
		DroppedRules: result.DroppedRules,
	}
}

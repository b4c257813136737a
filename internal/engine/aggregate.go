package engine

import (
	"sort"
	"strings"

	"compliscan/scan-engine/internal/matcher"
	"compliscan/scan-engine/internal/model"
	"compliscan/scan-engine/internal/rules"
)

const maxEvidenceLen = 120

// ruleMatches pairs a rule with the raw spans its matcher produced.
type ruleMatches struct {
	rule  rules.Rule
	spans []matcher.Span
}

// lineIndex maps byte offsets to 1-based line numbers. Line starts are
// computed once per scan; each lookup is a binary search.
type lineIndex struct {
	starts []int
}

func newLineIndex(code string) lineIndex {
	starts := []int{0}
	for i := 0; i < len(code); i++ {
		if code[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{starts: starts}
}

func (x lineIndex) lineFor(offset int) int {
	return sort.Search(len(x.starts), func(i int) bool {
		return x.starts[i] > offset
	})
}

// aggregate converts raw matches into the final deduplicated, ordered
// finding list plus the zero-filled severity summary.
func aggregate(code string, matches []ruleMatches) ([]model.Finding, map[model.Severity]int) {
	idx := newLineIndex(code)
	findings := []model.Finding{}

	for _, rm := range matches {
		spans := append([]matcher.Span(nil), rm.spans...)
		sort.Slice(spans, func(i, j int) bool {
			if spans[i].Start != spans[j].Start {
				return spans[i].Start < spans[j].Start
			}
			return spans[i].End < spans[j].End
		})
		prevEnd := -1
		for _, s := range spans {
			// overlapping spans from the same rule collapse into the
			// first by offset
			if s.Start < prevEnd {
				continue
			}
			prevEnd = s.End
			evidence := formatEvidence(s.Evidence, rm.rule.Sensitive)
			findings = append(findings, model.NewFinding(
				rm.rule.ID,
				rm.rule.Severity,
				rm.rule.Description,
				evidence,
				rm.rule.Remediation,
				idx.lineFor(s.Start),
				s.Start,
			))
		}
	}

	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.Offset() < b.Offset()
	})

	summary := model.NewSummary()
	for _, f := range findings {
		summary[f.Severity]++
	}
	return findings, summary
}

// formatEvidence truncates evidence and, for sensitive rules, masks all but
// a short prefix and suffix so a full secret or card number is never echoed
// back to the caller.
func formatEvidence(evidence string, sensitive bool) string {
	if len(evidence) > maxEvidenceLen {
		evidence = evidence[:maxEvidenceLen]
	}
	if sensitive {
		return redact(evidence)
	}
	return evidence
}

func redact(s string) string {
	r := []rune(s)
	if len(r) <= 6 {
		return strings.Repeat("*", len(r))
	}
	masked := len(r) - 6
	if masked > 12 {
		masked = 12
	}
	return string(r[:4]) + strings.Repeat("*", masked) + string(r[len(r)-2:])
}

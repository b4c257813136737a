// Package rules holds the detection rule catalog and answers which rules
// are active for a requested set of standards.
package rules

import (
	"fmt"
	"sort"

	"compliscan/scan-engine/internal/matcher"
	"compliscan/scan-engine/internal/model"
)

// Rule is one severity-tagged detector belonging to one or more standards.
// Rules are immutable after registry construction; severity and remediation
// never vary by invocation.
type Rule struct {
	ID          string
	Category    string
	Severity    model.Severity
	Standards   []string
	Description string
	Remediation string

	// Sensitive marks rules whose evidence (card numbers, secrets) must be
	// redacted before it is echoed back to the caller.
	Sensitive bool

	Matcher matcher.Matcher
}

// Registry is the authoritative rule catalog, constructed once at process
// start and never mutated, so unsynchronized concurrent reads are safe.
type Registry struct {
	rules     []Rule
	standards map[string]bool
}

// NewRegistry validates the rule set and builds a registry. A duplicate id,
// empty standards set, unknown severity or missing matcher is a
// configuration fault and fails construction; these are never surfaced at
// request time.
func NewRegistry(rules []Rule) (*Registry, error) {
	seen := make(map[string]bool, len(rules))
	standards := make(map[string]bool)
	for _, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("rule with empty id")
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate rule id %q", r.ID)
		}
		seen[r.ID] = true
		if len(r.Standards) == 0 {
			return nil, fmt.Errorf("rule %s: empty standards set", r.ID)
		}
		if !r.Severity.Valid() {
			return nil, fmt.Errorf("rule %s: unknown severity %q", r.ID, r.Severity)
		}
		if r.Matcher == nil {
			return nil, fmt.Errorf("rule %s: no matcher", r.ID)
		}
		for _, std := range r.Standards {
			norm := NormalizeStandard(std)
			if norm == "" {
				return nil, fmt.Errorf("rule %s: blank standard code", r.ID)
			}
			standards[norm] = true
		}
	}
	return &Registry{rules: rules, standards: standards}, nil
}

// ActiveRules returns the rules whose standards set intersects the
// requested set. Union semantics: a rule is active if it belongs to any
// requested standard. An empty request activates the full catalog.
// Unrecognized standard codes contribute no rules and no error.
func (g *Registry) ActiveRules(requested []string) []Rule {
	want := make(map[string]bool, len(requested))
	for _, std := range requested {
		if norm := NormalizeStandard(std); norm != "" {
			want[norm] = true
		}
	}
	if len(want) == 0 {
		out := make([]Rule, len(g.rules))
		copy(out, g.rules)
		return out
	}
	var out []Rule
	for _, r := range g.rules {
		for _, std := range r.Standards {
			if want[NormalizeStandard(std)] {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Standards lists every standard code known to the registry, sorted.
func (g *Registry) Standards() []string {
	out := make([]string, 0, len(g.standards))
	for std := range g.standards {
		out = append(out, std)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered rules.
func (g *Registry) Len() int { return len(g.rules) }

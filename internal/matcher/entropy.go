package matcher

import (
	"context"
	"math"
	"regexp"
	"strings"
)

// DefaultEntropyThreshold is the minimum Shannon entropy, in bits per
// character, for a string literal to be reported as a likely secret.
const DefaultEntropyThreshold = 3.5

var (
	secretAssignRe = regexp.MustCompile(`(?i)\b[A-Za-z_][A-Za-z0-9_]*(_key|_token|_secret)\s*[:=]{1,2}\s*["']([^"']{8,})["']`)
	bareLiteralRe  = regexp.MustCompile(`["']([^"'\s]{20,})["']`)
)

// placeholderAllowList holds known non-secret placeholder values, compared
// case-insensitively against the whole literal.
var placeholderAllowList = map[string]bool{
	"changeme":          true,
	"change-me":         true,
	"xxx":               true,
	"xxxxxxxx":          true,
	"<redacted>":        true,
	"<secret>":          true,
	"placeholder":       true,
	"example":           true,
	"your-api-key-here": true,
	"dummy":             true,
	"not-a-real-secret": true,
}

// entropyMatcher flags string literals that look like exposed secrets:
// values assigned to secret-named variables (*_key, *_token, *_secret) or
// long bare literals without whitespace, whose Shannon entropy crosses the
// threshold and which are not known placeholders.
type entropyMatcher struct {
	threshold float64
}

// NewEntropy returns the secret-detection matcher. A zero threshold selects
// DefaultEntropyThreshold.
func NewEntropy(threshold float64) Matcher {
	if threshold <= 0 {
		threshold = DefaultEntropyThreshold
	}
	return &entropyMatcher{threshold: threshold}
}

func (m *entropyMatcher) Find(ctx context.Context, code string) ([]Span, error) {
	var spans []Span
	seen := make(map[int]bool)

	report := func(start, end int, literal string) {
		if seen[start] {
			return
		}
		if placeholderAllowList[strings.ToLower(literal)] {
			return
		}
		if shannonEntropy(literal) < m.threshold {
			return
		}
		seen[start] = true
		spans = append(spans, Span{Start: start, End: end, Evidence: literal})
	}

	err := forEachLine(ctx, code, func(start int, line string) {
		for _, loc := range secretAssignRe.FindAllStringSubmatchIndex(line, -1) {
			// group 2 is the quoted literal
			ls, le := loc[4], loc[5]
			report(start+ls, start+le, line[ls:le])
		}
		for _, loc := range bareLiteralRe.FindAllStringSubmatchIndex(line, -1) {
			ls, le := loc[2], loc[3]
			report(start+ls, start+le, line[ls:le])
		}
	})
	if err != nil {
		return nil, err
	}
	return spans, nil
}

// shannonEntropy computes bits per character over the byte distribution of s.
func shannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}
	var freq [256]int
	for i := 0; i < len(s); i++ {
		freq[s[i]]++
	}
	total := float64(len(s))
	entropy := 0.0
	for _, c := range freq {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

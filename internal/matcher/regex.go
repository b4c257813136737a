package matcher

import (
	"context"
	"fmt"
	"regexp"
)

// regexMatcher applies one or more compiled patterns line by line. Go's
// regexp engine (RE2) guarantees linear-time matching with no backtracking,
// which keeps attacker-supplied code from turning a pattern into a
// denial-of-service vector.
type regexMatcher struct {
	patterns []*regexp.Regexp
}

// NewRegex compiles the given patterns into a matcher. Compilation errors
// surface here so the registry can fail fast at load time.
func NewRegex(patterns ...string) (Matcher, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("regex matcher requires at least one pattern")
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &regexMatcher{patterns: compiled}, nil
}

func (m *regexMatcher) Find(ctx context.Context, code string) ([]Span, error) {
	var spans []Span
	err := forEachLine(ctx, code, func(start int, line string) {
		for _, re := range m.patterns {
			for _, loc := range re.FindAllStringIndex(line, -1) {
				spans = append(spans, Span{
					Start:    start + loc[0],
					End:      start + loc[1],
					Evidence: line[loc[0]:loc[1]],
				})
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return spans, nil
}

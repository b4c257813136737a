package matcher

import (
	"context"
	"regexp"
	"sort"
)

var (
	cvvKeywordRe = regexp.MustCompile(`(?i)\b(cvv|cvc|security[_-]?code)\b`)
	shortDigitRe = regexp.MustCompile(`\b[0-9]{3,4}\b`)
)

// proximityMatcher detects 3-4 digit tokens that follow a cvv/cvc keyword
// or a Luhn-valid card number within a one-line window. The context
// requirement keeps arbitrary short numbers from being flagged.
type proximityMatcher struct{}

// NewCVVProximity returns the sensitive-authentication-data matcher.
func NewCVVProximity() Matcher { return proximityMatcher{} }

type anchor struct {
	end  int
	line int
}

func (proximityMatcher) Find(ctx context.Context, code string) ([]Span, error) {
	cardSpans, err := NewCardNumber().Find(ctx, code)
	if err != nil {
		return nil, err
	}

	var anchors []anchor
	type token struct {
		start, end, line int
	}
	var tokens []token

	lineNo := 0
	err = forEachLine(ctx, code, func(start int, line string) {
		for _, loc := range cvvKeywordRe.FindAllStringIndex(line, -1) {
			anchors = append(anchors, anchor{end: start + loc[1], line: lineNo})
		}
		for _, loc := range shortDigitRe.FindAllStringIndex(line, -1) {
			tokens = append(tokens, token{start: start + loc[0], end: start + loc[1], line: lineNo})
		}
		lineNo++
	})
	if err != nil {
		return nil, err
	}
	for _, cs := range cardSpans {
		anchors = append(anchors, anchor{end: cs.End, line: lineOf(code, cs.Start)})
	}

	var spans []Span
	seen := make(map[int]bool)
	for _, tok := range tokens {
		if overlapsAny(tok.start, tok.end, cardSpans) {
			continue
		}
		for _, a := range anchors {
			if tok.start < a.end {
				continue
			}
			if tok.line < a.line-1 || tok.line > a.line+1 {
				continue
			}
			if !seen[tok.start] {
				seen[tok.start] = true
				spans = append(spans, Span{Start: tok.start, End: tok.end, Evidence: code[tok.start:tok.end]})
			}
			break
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans, nil
}

func overlapsAny(start, end int, spans []Span) bool {
	for _, s := range spans {
		if start < s.End && end > s.Start {
			return true
		}
	}
	return false
}

// lineOf returns the 0-based line index of a byte offset.
func lineOf(code string, offset int) int {
	n := 0
	for i := 0; i < offset && i < len(code); i++ {
		if code[i] == '\n' {
			n++
		}
	}
	return n
}

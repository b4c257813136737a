// Package matcher implements the detection strategies rules are built from.
// Every matcher is a pure function of the code text: it emits byte-offset
// spans with the captured evidence and nothing else. Severity and
// remediation belong to the owning rule.
package matcher

import "context"

// Span is one raw candidate match.
type Span struct {
	Start    int
	End      int
	Evidence string
}

// Matcher scans code text and returns candidate spans in offset order.
// Implementations must run in time linear in the input length and must
// observe ctx cancellation at bounded intervals.
type Matcher interface {
	Find(ctx context.Context, code string) ([]Span, error)
}

// ctxCheckEvery bounds how many lines a matcher walks between
// cancellation checks.
const ctxCheckEvery = 256

// forEachLine walks code line by line, invoking fn with the byte offset of
// the line start and the line content without its terminator. It checks ctx
// every ctxCheckEvery lines so a cancelled scan returns promptly.
func forEachLine(ctx context.Context, code string, fn func(start int, line string)) error {
	start := 0
	n := 0
	for start <= len(code) {
		if n%ctxCheckEvery == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		n++
		end := len(code)
		for i := start; i < len(code); i++ {
			if code[i] == '\n' {
				end = i
				break
			}
		}
		fn(start, code[start:end])
		if end == len(code) {
			break
		}
		start = end + 1
	}
	return nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isWordByte(b byte) bool {
	return b == '_' || isDigit(b) ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

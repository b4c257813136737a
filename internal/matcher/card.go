package matcher

import "context"

// cardMatcher detects runs of 13-19 digits, optionally separated by spaces
// or dashes, and keeps only those that pass the Luhn checksum. Digit runs
// that fail the checksum are discarded as false positives rather than
// reported.
type cardMatcher struct{}

// NewCardNumber returns the checksum-validated cardholder-data matcher.
func NewCardNumber() Matcher { return cardMatcher{} }

func (cardMatcher) Find(ctx context.Context, code string) ([]Span, error) {
	var spans []Span
	i := 0
	steps := 0
	for i < len(code) {
		steps++
		if steps%4096 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		if !isDigit(code[i]) {
			i++
			continue
		}
		if i > 0 && isWordByte(code[i-1]) {
			// embedded in an identifier or longer token, skip the run
			for i < len(code) && isDigit(code[i]) {
				i++
			}
			continue
		}
		start := i
		lastDigit := i
		var digits []byte
		j := i
		for j < len(code) {
			b := code[j]
			if isDigit(b) {
				digits = append(digits, b)
				lastDigit = j
				j++
				continue
			}
			if (b == ' ' || b == '-') && j+1 < len(code) && isDigit(code[j+1]) {
				j++
				continue
			}
			break
		}
		end := lastDigit + 1
		boundary := end >= len(code) || !isWordByte(code[end])
		if boundary && len(digits) >= 13 && len(digits) <= 19 && luhnValid(digits) {
			spans = append(spans, Span{Start: start, End: end, Evidence: code[start:end]})
		}
		i = j
	}
	return spans, nil
}

// luhnValid runs the mod-10 checksum over a digit string, rightmost digit
// first.
func luhnValid(digits []byte) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

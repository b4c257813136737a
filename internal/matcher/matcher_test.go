package matcher

import (
	"context"
	"testing"
)

func TestCardMatcherValidLuhn(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		matches int
	}{
		{"canonical test PAN", `card = "4111111111111111"`, 1},
		{"failing checksum discarded", `card = "4111111111111112"`, 0},
		{"separated by spaces", `card = "4111 1111 1111 1111"`, 1},
		{"separated by dashes", `card = "4111-1111-1111-1111"`, 1},
		{"amex length", `card = "378282246310005"`, 1},
		{"too short", `card = "411111111111"`, 0},
		{"too long run", `id = "41111111111111111111"`, 0},
		{"embedded in identifier", `order4111111111111111 = 1`, 0},
		{"no digits", `# nothing to see`, 0},
	}
	m := NewCardNumber()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, err := m.Find(context.Background(), tt.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(spans) != tt.matches {
				t.Fatalf("expected %d matches, got %d (%v)", tt.matches, len(spans), spans)
			}
		})
	}
}

func TestCardMatcherSpanOffsets(t *testing.T) {
	code := `x = 1` + "\n" + `card = "4111111111111111"`
	spans, err := NewCardNumber().Find(context.Background(), code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Evidence != "4111111111111111" {
		t.Errorf("wrong evidence: %q", spans[0].Evidence)
	}
	if code[spans[0].Start:spans[0].End] != spans[0].Evidence {
		t.Errorf("span offsets do not address the evidence")
	}
}

func TestLuhnChecksum(t *testing.T) {
	tests := []struct {
		digits string
		valid  bool
	}{
		{"4111111111111111", true},
		{"4111111111111112", false},
		{"5500005555555559", true},
		{"378282246310005", true},
		{"1234567890123", false},
	}
	for _, tt := range tests {
		if got := luhnValid([]byte(tt.digits)); got != tt.valid {
			t.Errorf("luhnValid(%s) = %v, want %v", tt.digits, got, tt.valid)
		}
	}
}

func TestRegexMatcher(t *testing.T) {
	m, err := NewRegex(`(?i)\bpassword\s*=\s*["'][^"']+["']`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	code := "x = 1\npassword = \"secret123\"\ny = 2"
	spans, err := m.Find(context.Background(), code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if code[spans[0].Start:spans[0].End] != spans[0].Evidence {
		t.Errorf("span offsets do not address the evidence")
	}
}

func TestRegexMatcherBadPattern(t *testing.T) {
	if _, err := NewRegex(`(unclosed`); err == nil {
		t.Fatal("expected compile error")
	}
	if _, err := NewRegex(); err == nil {
		t.Fatal("expected error for empty pattern list")
	}
}

func TestRegexMatcherCancellation(t *testing.T) {
	m, err := NewRegex(`x`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Find(ctx, "x\n"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestProximityMatcher(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		matches int
	}{
		{"cvv keyword same line", `cvv = "123"`, 1},
		{"cvc keyword", `cvc = "9876"`, 1},
		{"security code keyword", `security_code = "456"`, 1},
		{"card number then cvv next line", "card = \"4111111111111111\"\ncvv = \"123\"", 1},
		{"digits on line after card", "card = \"4111111111111111\"\npin = \"123\"", 1},
		{"digits two lines after card", "card = \"4111111111111111\"\nretry = 5\n\npin = \"123\"", 0},
		{"bare short number without context", `retry_count = 123`, 0},
		{"keyword too far away", "cvv = 1\n\n\nx = \"123\"", 0},
		{"digit token before keyword", `x = "123" # cvv`, 0},
	}
	m := NewCVVProximity()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, err := m.Find(context.Background(), tt.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(spans) != tt.matches {
				t.Fatalf("expected %d matches, got %d (%v)", tt.matches, len(spans), spans)
			}
		})
	}
}

func TestProximityMatcherExcludesCardDigits(t *testing.T) {
	code := `card = "4111111111111111" cvv = "123"`
	spans, err := NewCVVProximity().Find(context.Background(), code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Evidence != "123" {
		t.Errorf("expected the cvv token, got %q", spans[0].Evidence)
	}
}

func TestEntropyMatcher(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		matches int
	}{
		{"secret-named variable with random value", `api_key = "A8f!kP0q9ZxY2mN4vB7u"`, 1},
		{"token-named variable", `auth_token = "Zq8vR3kLm9Xw2PnB5tYc"`, 1},
		{"placeholder allow-listed", `api_key = "changeme"`, 0},
		{"redacted placeholder", `client_secret = "<redacted>"`, 0},
		{"low entropy value", `api_key = "aaaabbbbcccc"`, 0},
		{"bare long random literal", `x = "Zq8vR3kLm9Xw2PnB5tYcD4"`, 1},
		{"long literal with spaces ignored", `msg = "this is a long sentence with spaces"`, 0},
		{"plain variable short literal", `name = "alice"`, 0},
	}
	m := NewEntropy(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, err := m.Find(context.Background(), tt.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(spans) != tt.matches {
				t.Fatalf("expected %d matches, got %d (%v)", tt.matches, len(spans), spans)
			}
		})
	}
}

func TestShannonEntropy(t *testing.T) {
	if got := shannonEntropy(""); got != 0 {
		t.Errorf("entropy of empty string = %f, want 0", got)
	}
	if got := shannonEntropy("aaaa"); got != 0 {
		t.Errorf("entropy of uniform string = %f, want 0", got)
	}
	// 4 equally frequent symbols carry exactly 2 bits per character
	if got := shannonEntropy("abcd"); got < 1.99 || got > 2.01 {
		t.Errorf("entropy of abcd = %f, want 2.0", got)
	}
}

func TestForEachLineOffsets(t *testing.T) {
	code := "one\ntwo\nthree"
	var starts []int
	var lines []string
	err := forEachLine(context.Background(), code, func(start int, line string) {
		starts = append(starts, start)
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantStarts := []int{0, 4, 8}
	wantLines := []string{"one", "two", "three"}
	if len(starts) != len(wantStarts) {
		t.Fatalf("expected %d lines, got %d", len(wantStarts), len(starts))
	}
	for i := range wantStarts {
		if starts[i] != wantStarts[i] || lines[i] != wantLines[i] {
			t.Errorf("line %d: got (%d, %q), want (%d, %q)", i, starts[i], lines[i], wantStarts[i], wantLines[i])
		}
	}
}

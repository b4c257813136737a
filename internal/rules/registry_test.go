package rules

import (
	"testing"

	"compliscan/scan-engine/internal/matcher"
	"compliscan/scan-engine/internal/model"
)

func testRule(id string, standards ...string) Rule {
	m, _ := matcher.NewRegex(`x`)
	return Rule{
		ID:        id,
		Severity:  model.SeverityHigh,
		Standards: standards,
		Matcher:   m,
	}
}

func TestBuiltinLoads(t *testing.T) {
	reg, err := Builtin()
	if err != nil {
		t.Fatalf("builtin catalog failed to load: %v", err)
	}
	if reg.Len() == 0 {
		t.Fatal("builtin catalog is empty")
	}
	stds := reg.Standards()
	want := []string{StdDPDP, StdGDPR, StdPCIDSS, StdPSD2, StdRBI, StdSEBI}
	if len(stds) != len(want) {
		t.Fatalf("expected %d standards, got %v", len(want), stds)
	}
}

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{"duplicate id", []Rule{testRule("R-1", "PCI-DSS"), testRule("R-1", "RBI")}},
		{"empty standards", []Rule{{ID: "R-1", Severity: model.SeverityLow, Matcher: matcher.NewCardNumber()}}},
		{"unknown severity", []Rule{{ID: "R-1", Severity: "fatal", Standards: []string{"PCI-DSS"}, Matcher: matcher.NewCardNumber()}}},
		{"missing matcher", []Rule{{ID: "R-1", Severity: model.SeverityLow, Standards: []string{"PCI-DSS"}}}},
		{"empty id", []Rule{testRule("", "PCI-DSS")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.rules); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}
}

func TestActiveRulesUnionSemantics(t *testing.T) {
	reg, err := NewRegistry([]Rule{
		testRule("A", "PCI-DSS"),
		testRule("B", "RBI"),
		testRule("C", "PCI-DSS", "RBI"),
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	if got := reg.ActiveRules(nil); len(got) != 3 {
		t.Errorf("empty request should activate all rules, got %d", len(got))
	}
	if got := reg.ActiveRules([]string{"PCI-DSS"}); len(got) != 2 {
		t.Errorf("PCI-DSS should select A and C, got %d", len(got))
	}
	// a rule in both requested standards appears once
	if got := reg.ActiveRules([]string{"PCI-DSS", "RBI"}); len(got) != 3 {
		t.Errorf("union of both standards should select all three once, got %d", len(got))
	}
	if got := reg.ActiveRules([]string{"ISO-27001"}); len(got) != 0 {
		t.Errorf("unknown standard should select nothing, got %d", len(got))
	}
}

func TestStandardNormalization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PCI-DSS", "PCI-DSS"},
		{"pci_dss", "PCI-DSS"},
		{" rbi ", "RBI"},
		{"uk_gdpr", "UK-GDPR"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeStandard(tt.in); got != tt.want {
			t.Errorf("NormalizeStandard(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveLegacySpellings(t *testing.T) {
	reg, err := Builtin()
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	upper := reg.Resolve([]string{"PCI-DSS"})
	legacy := reg.Resolve([]string{"pci_dss"})
	if len(upper) == 0 || len(upper) != len(legacy) {
		t.Fatalf("legacy spelling selected %d rules, canonical %d", len(legacy), len(upper))
	}
}

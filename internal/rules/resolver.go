package rules

import "strings"

// NormalizeStandard canonicalizes a standard code: case-insensitive,
// underscore and hyphen spellings are equivalent ("pci_dss" and "PCI-DSS"
// select the same rules). Legacy API clients send the lowercase forms.
func NormalizeStandard(code string) string {
	code = strings.TrimSpace(code)
	code = strings.ReplaceAll(code, "_", "-")
	return strings.ToUpper(code)
}

// Resolve normalizes the requested standard codes and returns the active
// rule subset. Unknown codes are trimmed rather than rejected so newer
// client standard lists stay non-breaking.
func (g *Registry) Resolve(requested []string) []Rule {
	return g.ActiveRules(requested)
}

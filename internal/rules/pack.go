package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"compliscan/scan-engine/internal/matcher"
	"compliscan/scan-engine/internal/model"
)

// Rule packs are the external-rule extension point: a directory of YAML
// files, each declaring regex rules for one or more standards. Only the
// regex matcher kind is loadable from data; the checksum, proximity and
// entropy matchers stay builtin so every matcher remains auditable and
// boundable in running time.

type packFile struct {
	Standard string     `yaml:"standard"`
	Rules    []packRule `yaml:"rules"`
}

type packRule struct {
	ID          string   `yaml:"id"`
	Category    string   `yaml:"category"`
	Severity    string   `yaml:"severity"`
	Standards   []string `yaml:"standards"`
	Patterns    []string `yaml:"patterns"`
	Description string   `yaml:"description"`
	Remediation string   `yaml:"remediation"`
	Sensitive   bool     `yaml:"sensitive"`
}

// LoadPacks reads every .yaml/.yml file in dir and returns the rules they
// declare. Malformed files, bad severities and bad patterns fail the load;
// rule packs are configuration, not request input.
func LoadPacks(dir string) ([]Rule, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []Rule
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var pf packFile
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		for _, pr := range pf.Rules {
			rule, err := pr.build(pf.Standard)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", entry.Name(), err)
			}
			out = append(out, rule)
		}
	}
	return out, nil
}

func (pr packRule) build(fileStandard string) (Rule, error) {
	sev := model.Severity(pr.Severity)
	if !sev.Valid() {
		return Rule{}, fmt.Errorf("rule %s: unknown severity %q", pr.ID, pr.Severity)
	}
	standards := pr.Standards
	if len(standards) == 0 && fileStandard != "" {
		standards = []string{fileStandard}
	}
	m, err := matcher.NewRegex(pr.Patterns...)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %s: %w", pr.ID, err)
	}
	return Rule{
		ID:          pr.ID,
		Category:    pr.Category,
		Severity:    sev,
		Standards:   standards,
		Description: pr.Description,
		Remediation: pr.Remediation,
		Sensitive:   pr.Sensitive,
		Matcher:     m,
	}, nil
}

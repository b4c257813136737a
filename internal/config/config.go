package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration, loaded from YAML with defaults
// applied for anything unset.
type Config struct {
	Listen       string `yaml:"listen"`
	Debug        bool   `yaml:"debug"`
	RulePackDir  string `yaml:"rule_pack_dir"`
	MaxCodeBytes int    `yaml:"max_code_bytes"`
	Engine       Engine `yaml:"engine"`
}

// Engine holds the scan budgets.
type Engine struct {
	RuleBudgetMS int `yaml:"rule_budget_ms"`
	ScanBudgetMS int `yaml:"scan_budget_ms"`
	Workers      int `yaml:"workers"`
}

func Default() Config {
	return Config{
		Listen:       "127.0.0.1:9040",
		MaxCodeBytes: 1 << 20,
		Engine: Engine{
			RuleBudgetMS: 200,
			ScanBudgetMS: 2000,
		},
	}
}

// Load reads the config file at path. An empty path or a missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Listen == "" {
		cfg.Listen = Default().Listen
	}
	if cfg.MaxCodeBytes <= 0 {
		cfg.MaxCodeBytes = Default().MaxCodeBytes
	}
	return cfg, nil
}

func (e Engine) RuleBudget() time.Duration {
	return time.Duration(e.RuleBudgetMS) * time.Millisecond
}

func (e Engine) ScanBudget() time.Duration {
	return time.Duration(e.ScanBudgetMS) * time.Millisecond
}

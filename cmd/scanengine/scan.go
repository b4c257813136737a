package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"compliscan/scan-engine/internal/config"
	"compliscan/scan-engine/internal/engine"
	"compliscan/scan-engine/internal/logging"
	"compliscan/scan-engine/internal/model"
	"compliscan/scan-engine/internal/rules"
)

var (
	scanStandards []string
	scanFormat    string
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Scan a source file locally and print the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		log, err := logging.New(cfg.Debug)
		if err != nil {
			return err
		}
		defer log.Sync()

		code, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		registry, err := rules.BuiltinWithPacks(cfg.RulePackDir)
		if err != nil {
			return err
		}
		eng := engine.New(registry, engine.Config{
			RuleBudget: cfg.Engine.RuleBudget(),
			ScanBudget: cfg.Engine.ScanBudget(),
			Workers:    cfg.Engine.Workers,
		}, log)

		result, err := eng.Scan(cmd.Context(), string(code), scanStandards)
		if err != nil {
			return err
		}

		switch scanFormat {
		case "json":
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		case "text":
			fmt.Print(textReport(result))
		default:
			return fmt.Errorf("unknown format %q", scanFormat)
		}
		if !result.Passed {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringSliceVarP(&scanStandards, "standards", "s", nil, "standards to check (default: all)")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "text", "output format: text|json")
}

func textReport(result *model.ScanResult) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString("COMPLIANCE REPORT\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")
	status := "FAILED"
	if result.Passed {
		status = "PASSED"
	}
	sb.WriteString(fmt.Sprintf("Status: %s\n", status))
	if result.TimedOut {
		sb.WriteString("Warning: scan budget exceeded, result is partial\n")
	}
	sb.WriteString("\nSummary:\n")
	for _, sev := range model.Severities {
		sb.WriteString(fmt.Sprintf("  %s: %d\n", capitalize(string(sev)), result.Summary[sev]))
	}
	if len(result.Issues) > 0 {
		sb.WriteString("\nIssues Found:\n")
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		for _, issue := range result.Issues {
			sb.WriteString(fmt.Sprintf("[%s] %s (line %d)\n", strings.ToUpper(string(issue.Severity)), issue.RuleID, issue.Line))
			sb.WriteString(fmt.Sprintf("  %s\n", issue.Description))
			if issue.Evidence != "" {
				sb.WriteString(fmt.Sprintf("  Evidence: %s\n", issue.Evidence))
			}
			sb.WriteString(fmt.Sprintf("  Fix: %s\n\n", issue.Remediation))
		}
	}
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

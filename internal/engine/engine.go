// Package engine coordinates a scan: it resolves the active rule set, fans
// the matchers out over a bounded worker pool under time budgets, and fans
// the raw matches into an assembled result.
package engine

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"compliscan/scan-engine/internal/matcher"
	"compliscan/scan-engine/internal/model"
	"compliscan/scan-engine/internal/rules"
)

// ErrEmptyCode rejects a scan request with no code before any matcher runs.
var ErrEmptyCode = errors.New("code must not be empty")

// Config bounds a scan. A slow or misbehaving rule is dropped when its
// budget expires; the overall budget caps the whole call.
type Config struct {
	RuleBudget time.Duration
	ScanBudget time.Duration
	Workers    int
}

func (c Config) withDefaults() Config {
	if c.RuleBudget <= 0 {
		c.RuleBudget = 200 * time.Millisecond
	}
	if c.ScanBudget <= 0 {
		c.ScanBudget = 2 * time.Second
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// Engine runs scans against a read-only rule registry. It holds no mutable
// state between calls, so one Engine serves any number of concurrent scans.
type Engine struct {
	registry *rules.Registry
	cfg      Config
	log      *zap.SugaredLogger
}

func New(registry *rules.Registry, cfg Config, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{registry: registry, cfg: cfg.withDefaults(), log: log}
}

type outcome struct {
	rule  rules.Rule
	spans []matcher.Span
	err   error
}

// Scan runs every active rule against code and assembles the result.
// Matcher invocations for distinct rules are independent, so they fan out
// one task per rule over the worker pool; the aggregator re-sorts, so
// completion order never affects the output.
func (e *Engine) Scan(ctx context.Context, code string, standards []string) (*model.ScanResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrEmptyCode
	}
	start := time.Now()
	active := e.registry.Resolve(standards)

	scanCtx, cancel := context.WithTimeout(ctx, e.cfg.ScanBudget)
	defer cancel()

	jobs := make(chan rules.Rule, len(active))
	results := make(chan outcome, len(active))
	workers := e.cfg.Workers
	if workers > len(active) {
		workers = len(active)
	}
	for w := 0; w < workers; w++ {
		go func() {
			for rule := range jobs {
				ruleCtx, ruleCancel := context.WithTimeout(scanCtx, e.cfg.RuleBudget)
				spans, err := rule.Matcher.Find(ruleCtx, code)
				ruleCancel()
				results <- outcome{rule: rule, spans: spans, err: err}
			}
		}()
	}
	for _, rule := range active {
		jobs <- rule
	}
	close(jobs)

	var completed []ruleMatches
	dropped := 0
	received := 0
collect:
	for received < len(active) {
		select {
		case out := <-results:
			received++
			if out.err != nil {
				// a broken rule degrades coverage, not availability
				dropped++
				e.log.Warnw("rule dropped", "rule", out.rule.ID, "error", out.err)
				continue
			}
			completed = append(completed, ruleMatches{rule: out.rule, spans: out.spans})
		case <-scanCtx.Done():
			break collect
		}
	}
	if err := ctx.Err(); err != nil {
		// caller cancellation propagates; workers observe it and return
		return nil, err
	}
	dropped += len(active) - received
	timedOut := received < len(active) && scanCtx.Err() != nil

	issues, summary := aggregate(code, completed)
	result := &model.ScanResult{
		Passed:       len(issues) == 0,
		Issues:       issues,
		Summary:      summary,
		TimedOut:     timedOut,
		DroppedRules: dropped,
	}

	e.log.Infow("scan complete",
		"rules_active", len(active),
		"rules_dropped", dropped,
		"issues", len(issues),
		"passed", result.Passed,
		"timed_out", timedOut,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// Standards lists the standard codes the engine's registry knows.
func (e *Engine) Standards() []string {
	return e.registry.Standards()
}

package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/log"
)

// Config configures an Engine.
type Config struct {
	// Rules are evaluated in order.
	Rules []Rule

	// Input names the model source in captured events, usually a path.
	Input string

	// RunID identifies the first run of the engine. Later runs, and the
	// first when RunID is empty, get a new UUID.
	RunID string

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// EventLog receives run, rule and outcome events.
	// If nil, events are discarded.
	EventLog log.Logger

	// Metrics is updated during runs when set.
	Metrics *Metrics

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Engine evaluates a fixed rule list.
type Engine struct {
	rules   []Rule
	input   string
	runID   string
	logger  *slog.Logger
	events  log.Logger
	metrics *Metrics
	now     func() time.Time
}

// NewEngine creates an Engine from config.
func NewEngine(config Config) *Engine {
	e := &Engine{
		rules:   append([]Rule(nil), config.Rules...),
		input:   config.Input,
		runID:   config.RunID,
		logger:  config.Logger,
		events:  config.EventLog,
		metrics: config.Metrics,
		now:     config.Now,
	}
	if e.events == nil {
		e.events = log.NoopLogger{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Rules returns the rules the engine evaluates.
func (e *Engine) Rules() []Rule { return append([]Rule(nil), e.rules...) }

// Report is the result of one run.
type Report struct {
	RunID     string        `json:"run_id"`
	Chid      string        `json:"chid"`
	Outcomes  []Outcome     `json:"outcomes"`
	Skipped   []string      `json:"skipped,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Counts tallies the report's outcomes by type.
func (r *Report) Counts() Counts { return CountByType(r.Outcomes) }

// HasFailures returns true if any outcome is a failure.
func (r *Report) HasFailures() bool { return HasFailures(r.Outcomes) }

func (e *Engine) debugLog(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func (e *Engine) emit(ev log.Event) {
	ev.Timestamp = e.now()
	e.events.Log(ev)
}

// Run evaluates every rule against m and, when out is non-nil, the
// realised output. Rules needing output are skipped when out is nil or
// reports ErrNoOutputData. Any other rule error aborts the run.
func (e *Engine) Run(ctx context.Context, m *fds.Model, out OutputSource) (*Report, error) {
	runID := e.runID
	if runID == "" {
		runID = uuid.New().String()
	}
	e.runID = ""
	report := &Report{
		RunID:     runID,
		Chid:      m.Chid,
		StartedAt: e.now(),
	}
	base := log.Event{RunID: report.RunID, Chid: m.Chid}

	ev := base
	ev.Category = log.CategoryRun
	ev.Run = &log.RunEvent{Phase: log.RunStarted, Input: e.input, HasOutput: out != nil, RuleCount: len(e.rules)}
	e.emit(ev)
	e.debugLog("verification started", "run_id", report.RunID, "chid", m.Chid, "rules", len(e.rules))

	for _, rule := range e.rules {
		if err := ctx.Err(); err != nil {
			return nil, e.abort(report, base, "", err)
		}

		ruleEv := base
		ruleEv.RuleID = rule.ID()
		ruleEv.Stage = rule.Stage().String()

		if rule.Stage().NeedsOutput() && out == nil {
			e.skip(report, ruleEv, "no output source")
			continue
		}

		start := e.now()
		results, err := check(ctx, rule, m, out)
		elapsed := e.now().Sub(start)
		if errors.Is(err, ErrNoOutputData) {
			e.skip(report, ruleEv, err.Error())
			continue
		}
		if err != nil {
			return nil, e.abort(report, ruleEv, rule.ID(), err)
		}

		e.metrics.observeRule(rule.ID(), elapsed, results)
		ruleEv.Category = log.CategoryRule
		ruleEv.Rule = &log.RuleEvent{Duration: elapsed, Outcomes: len(results)}
		e.emit(ruleEv)

		for _, r := range results {
			o := Outcome{ID: rule.ID(), Type: r.Type, Message: r.Message}
			oev := base
			oev.RuleID = rule.ID()
			oev.Stage = rule.Stage().String()
			oev.Category = log.CategoryOutcome
			oev.Outcome = &log.OutcomeEvent{Seq: len(report.Outcomes), Type: o.Type.String(), Message: o.Message}
			e.emit(oev)
			report.Outcomes = append(report.Outcomes, o)
		}
		e.debugLog("rule evaluated", "rule", rule.ID(), "outcomes", len(results), "duration", elapsed)
	}

	report.Duration = e.now().Sub(report.StartedAt)
	c := report.Counts()
	ev = base
	ev.Category = log.CategoryRun
	ev.Run = &log.RunEvent{
		Phase:    log.RunCompleted,
		Duration: &report.Duration,
		Counts:   &log.Counts{Success: c.Success, Warning: c.Warning, Failure: c.Failure},
	}
	e.emit(ev)
	e.metrics.observeRun("completed")
	e.debugLog("verification completed", "run_id", report.RunID,
		"success", c.Success, "warning", c.Warning, "failure", c.Failure)
	return report, nil
}

func (e *Engine) skip(report *Report, ev log.Event, reason string) {
	report.Skipped = append(report.Skipped, ev.RuleID)
	e.metrics.observeSkip(ev.RuleID)
	ev.Category = log.CategoryRule
	ev.Rule = &log.RuleEvent{Skipped: true, Reason: reason}
	e.emit(ev)
	e.debugLog("rule skipped", "rule", ev.RuleID, "reason", reason)
}

func (e *Engine) abort(report *Report, ev log.Event, ruleID string, err error) error {
	if ruleID != "" {
		err = fmt.Errorf("rule %s: %w", ruleID, err)
	}
	errEv := ev
	errEv.Category = log.CategoryError
	errEv.Error = &log.ErrorEventData{Message: err.Error(), Context: "evaluate rules"}
	e.emit(errEv)

	d := e.now().Sub(report.StartedAt)
	runEv := ev
	runEv.RuleID, runEv.Stage = "", ""
	runEv.Category = log.CategoryRun
	runEv.Run = &log.RunEvent{Phase: log.RunAborted, Duration: &d}
	e.emit(runEv)
	e.metrics.observeRun("aborted")
	if e.logger != nil {
		e.logger.Error("verification aborted", "run_id", report.RunID, "error", err)
	}
	return err
}

// RunChecks evaluates rules against m and an optional output source and
// returns the flattened outcomes.
func RunChecks(ctx context.Context, rules []Rule, m *fds.Model, out OutputSource) ([]Outcome, error) {
	report, err := NewEngine(Config{Rules: rules}).Run(ctx, m, out)
	if err != nil {
		return nil, err
	}
	return report.Outcomes, nil
}

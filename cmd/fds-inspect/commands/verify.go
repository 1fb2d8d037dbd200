// Package commands implements the fds-inspect CLI commands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/smoke-cloud/fds-inspect-go/internal/reporter"
	"github.com/smoke-cloud/fds-inspect-go/internal/store"
	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/log"
	"github.com/smoke-cloud/fds-inspect-go/pkg/smv"
	"github.com/smoke-cloud/fds-inspect-go/pkg/summary"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify/rules"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJUnit = "junit"
)

// VerifyOptions configures the verify command.
type VerifyOptions struct {
	// ModelPath is the model document (JSON or YAML).
	ModelPath string

	// SMVPath is the optional smv index of the realised output.
	SMVPath string

	// RulesPath is an optional YAML rule selection.
	RulesPath string

	Format       string
	Verbose      bool
	FailuresOnly bool

	// EventLog, DBPath and MetricsFile enable the corresponding sinks.
	EventLog    string
	DBPath      string
	MetricsFile string

	// Logger is the optional logger for debug output.
	Logger *slog.Logger
}

// NewReporter returns the reporter for format.
func NewReporter(format string, w io.Writer, verbose bool) (reporter.Reporter, error) {
	switch format {
	case "", FormatText:
		return reporter.NewTextReporter(w, verbose), nil
	case FormatJSON:
		return reporter.NewJSONReporter(w, true), nil
	case FormatJUnit:
		return reporter.NewJUnitReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// LoadModel reads the model at path and returns it with its raw bytes.
func LoadModel(path string) (*fds.Model, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &fds.LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	m, err := fds.Parse(data, fds.FormatFromPath(path))
	if err != nil {
		var le *fds.LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return nil, nil, err
	}
	return m, data, nil
}

// LoadRegistry returns the standard rule catalogue with the selection in
// rulesPath applied.
func LoadRegistry(rulesPath string) (*verify.RuleRegistry, error) {
	registry := rules.NewDefaultRegistry()
	if rulesPath == "" {
		return registry, nil
	}
	cfg, err := verify.LoadRuleConfig(rulesPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(registry); err != nil {
		return nil, fmt.Errorf("apply %s: %w", rulesPath, err)
	}
	return registry, nil
}

// RunVerify verifies the model and writes the report to w. A report with
// failures is not an error; callers inspect the returned report.
func RunVerify(ctx context.Context, opts VerifyOptions, w io.Writer) (*verify.Report, error) {
	rep, err := NewReporter(opts.Format, w, opts.Verbose)
	if err != nil {
		return nil, err
	}

	m, data, err := LoadModel(opts.ModelPath)
	if err != nil {
		return nil, err
	}
	registry, err := LoadRegistry(opts.RulesPath)
	if err != nil {
		return nil, err
	}

	var out verify.OutputSource
	if opts.SMVPath != "" {
		d, err := smv.LoadIndex(opts.SMVPath)
		if err != nil {
			return nil, err
		}
		out = d
	}

	cfg := verify.Config{
		Rules:  registry.EnabledRules(),
		Input:  opts.ModelPath,
		Logger: opts.Logger,
	}

	var sinks []log.Logger
	if opts.Logger != nil {
		sinks = append(sinks, log.NewSlogAdapter(opts.Logger))
	}
	if opts.EventLog != "" {
		fl, err := log.NewFileLogger(opts.EventLog)
		if err != nil {
			return nil, fmt.Errorf("open event log: %w", err)
		}
		defer fl.Close()
		sinks = append(sinks, fl)
	}
	if len(sinks) > 0 {
		cfg.EventLog = log.NewMultiLogger(sinks...)
	}

	var reg *prometheus.Registry
	if opts.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		cfg.Metrics = verify.NewMetrics(reg)
	}

	var st *store.Store
	var run *store.Run
	if opts.DBPath != "" {
		st, err = store.NewStore(opts.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open run store: %w", err)
		}
		defer st.Close()
		run = store.NewRun(m.Chid, opts.ModelPath, data)
		if err := st.CreateRun(run); err != nil {
			return nil, err
		}
		cfg.RunID = run.ID
	}

	report, runErr := verify.NewEngine(cfg).Run(ctx, m, out)

	if st != nil {
		if err := recordRun(st, run.ID, m, report, runErr); err != nil {
			return nil, err
		}
	}
	if reg != nil {
		if err := prometheus.WriteToTextfile(opts.MetricsFile, reg); err != nil {
			return nil, fmt.Errorf("write metrics: %w", err)
		}
	}
	if runErr != nil {
		return nil, runErr
	}

	shown := *report
	if opts.FailuresOnly {
		shown.Outcomes = verify.FilterByType(report.Outcomes, verify.Failure)
	}
	rep.ReportVerification(&shown)
	return report, nil
}

func recordRun(st *store.Store, runID string, m *fds.Model, report *verify.Report, runErr error) error {
	if runErr != nil {
		return st.CompleteRun(runID, verify.Counts{}, runErr.Error())
	}
	if err := st.AddOutcomes(runID, report.Outcomes); err != nil {
		return err
	}
	s := summary.Summarise(m)
	if err := st.SaveSummary(runID, &s); err != nil {
		return err
	}
	return st.CompleteRun(runID, report.Counts(), "")
}

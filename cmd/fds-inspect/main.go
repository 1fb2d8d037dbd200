// Command fds-inspect verifies FDS fire models against engineering
// conventions and, optionally, against the realised output of a run.
//
// Usage:
//
//	fds-inspect <command> [flags] <args>
//
// Commands:
//
//	verify   Check a model, optionally with its output
//	summary  Show the key figures of a model
//	rules    List the verification rules
//	log      View or summarise a captured run log (.flog)
//	history  List recorded runs or show one
//	shell    Explore a model interactively
//
// Examples:
//
//	# Check inputs only
//	fds-inspect verify office.json
//
//	# Check inputs and output, record the run and capture events
//	fds-inspect verify -smv office.smv.json -db runs.db -event-log office.flog office.json
//
//	# JUnit report for CI
//	fds-inspect verify -junit -failures-only office.json > verify.xml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/smoke-cloud/fds-inspect-go/cmd/fds-inspect/commands"
	"github.com/smoke-cloud/fds-inspect-go/pkg/log"
	"github.com/smoke-cloud/fds-inspect-go/pkg/smv"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitFailures = 2
)

const usage = `fds-inspect - FDS model verification

Usage:
  fds-inspect <command> [flags] <args>

Commands:
  verify   Check a model, optionally with its output
  summary  Show the key figures of a model
  rules    List the verification rules
  log      View or summarise a captured run log (view|stats)
  history  List recorded runs or show one
  shell    Explore a model interactively

Use "fds-inspect <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(exitError)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1], os.Args[2:])
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, cmd string, args []string) int {
	switch cmd {
	case "verify":
		return runVerify(ctx, args)
	case "summary":
		return runSummary(args)
	case "rules":
		return runRules(args)
	case "log":
		return runLog(args)
	case "history":
		return runHistory(args)
	case "shell":
		return runShell(ctx, args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		return exitError
	}
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitError
}

func newFlagSet(name, synopsis, usageLine string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "fds-inspect %s - %s\n\nUsage:\n  %s\n\nFlags:\n", name, synopsis, usageLine)
		fs.PrintDefaults()
	}
	return fs
}

// newLogger builds the operational logger on stderr.
func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}

func runVerify(ctx context.Context, args []string) int {
	fs := newFlagSet("verify", "Check a model", "fds-inspect verify [flags] <model.json|model.yaml>")

	var opts commands.VerifyOptions
	fs.StringVar(&opts.SMVPath, "smv", "", "Structured smv index of the realised output")
	fs.StringVar(&opts.RulesPath, "rules", "", "YAML rule selection")
	jsonOut := fs.Bool("json", false, "Write the report as JSON")
	junitOut := fs.Bool("junit", false, "Write the report as JUnit XML")
	fs.BoolVar(&opts.Verbose, "v", false, "Also list successful checks")
	fs.BoolVar(&opts.FailuresOnly, "failures-only", false, "Report failures only")
	fs.StringVar(&opts.EventLog, "event-log", "", "Append run events to this .flog file")
	fs.StringVar(&opts.DBPath, "db", "", "Record the run in this SQLite database")
	fs.StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	logLevel := fs.String("log-level", "info", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: model file path required")
		fs.Usage()
		return exitError
	}
	if *jsonOut && *junitOut {
		fmt.Fprintln(os.Stderr, "Error: -json and -junit are mutually exclusive")
		return exitError
	}
	opts.ModelPath = fs.Arg(0)
	switch {
	case *jsonOut:
		opts.Format = commands.FormatJSON
	case *junitOut:
		opts.Format = commands.FormatJUnit
	default:
		opts.Format = commands.FormatText
	}

	logger, err := newLogger(*logLevel)
	if err != nil {
		return fail(err)
	}
	opts.Logger = logger

	report, err := commands.RunVerify(ctx, opts, os.Stdout)
	if err != nil {
		return fail(err)
	}
	if report.HasFailures() {
		return exitFailures
	}
	return exitOK
}

func runSummary(args []string) int {
	fs := newFlagSet("summary", "Show the key figures of a model", "fds-inspect summary [flags] <model.json|model.yaml>")
	jsonOut := fs.Bool("json", false, "Write the summary as JSON")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: model file path required")
		fs.Usage()
		return exitError
	}

	format := commands.FormatText
	if *jsonOut {
		format = commands.FormatJSON
	}
	if err := commands.RunSummary(fs.Arg(0), format, os.Stdout); err != nil {
		return fail(err)
	}
	return exitOK
}

func runRules(args []string) int {
	fs := newFlagSet("rules", "List the verification rules", "fds-inspect rules [flags]")
	rulesPath := fs.String("rules", "", "YAML rule selection to apply")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	registry, err := commands.LoadRegistry(*rulesPath)
	if err != nil {
		return fail(err)
	}
	commands.RunRules(registry, os.Stdout)
	return exitOK
}

func runLog(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: log subcommand required (view, stats)")
		return exitError
	}
	sub := args[0]
	if sub != "view" && sub != "stats" {
		fmt.Fprintf(os.Stderr, "Unknown log command: %s\n", sub)
		return exitError
	}

	fs := newFlagSet("log "+sub, "Read a captured run log", "fds-inspect log "+sub+" [flags] <file.flog>")
	runID := fs.String("run", "", "Filter by run ID")
	chid := fs.String("chid", "", "Filter by CHID")
	ruleID := fs.String("rule", "", "Filter by rule ID")
	category := fs.String("category", "", "Filter by category (run, rule, outcome, error)")
	outcome := fs.String("type", "", "Filter outcomes by type (success, warning, failure)")

	if err := fs.Parse(args[1:]); err != nil {
		return exitError
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		return exitError
	}

	filter := log.Filter{RunID: *runID, Chid: *chid, RuleID: *ruleID}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			return fail(err)
		}
		filter.Category = &c
	}
	if *outcome != "" {
		t, err := verify.ParseOutcomeType(*outcome)
		if err != nil {
			return fail(err)
		}
		filter.OutcomeType = t.String()
	}

	var err error
	if sub == "view" {
		err = commands.RunView(fs.Arg(0), filter, os.Stdout)
	} else {
		err = commands.RunStats(fs.Arg(0), filter, os.Stdout)
	}
	if err != nil {
		return fail(err)
	}
	return exitOK
}

func runHistory(args []string) int {
	fs := newFlagSet("history", "List recorded runs or show one", "fds-inspect history [flags] [run-id]")
	dbPath := fs.String("db", "fds-inspect.db", "SQLite database of recorded runs")
	limit := fs.Int("limit", 20, "Maximum number of runs to list")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if err := commands.RunHistory(*dbPath, *limit, fs.Arg(0), os.Stdout); err != nil {
		return fail(err)
	}
	return exitOK
}

func runShell(ctx context.Context, args []string) int {
	fs := newFlagSet("shell", "Explore a model interactively", "fds-inspect shell [flags] <model.json|model.yaml>")
	smvPath := fs.String("smv", "", "Structured smv index of the realised output")
	rulesPath := fs.String("rules", "", "YAML rule selection")
	logLevel := fs.String("log-level", "warn", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: model file path required")
		fs.Usage()
		return exitError
	}

	logger, err := newLogger(*logLevel)
	if err != nil {
		return fail(err)
	}
	m, _, err := commands.LoadModel(fs.Arg(0))
	if err != nil {
		return fail(err)
	}
	registry, err := commands.LoadRegistry(*rulesPath)
	if err != nil {
		return fail(err)
	}
	var out verify.OutputSource
	if *smvPath != "" {
		d, err := smv.LoadIndex(*smvPath)
		if err != nil {
			return fail(err)
		}
		out = d
	}

	if err := commands.NewShell(m, out, registry, logger).Run(ctx); err != nil {
		return fail(err)
	}
	return exitOK
}

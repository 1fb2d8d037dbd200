package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/smoke-cloud/fds-inspect-go/pkg/log"
)

// ParseCategoryFlag parses a category name (run, rule, outcome, error).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid category %q: must be run, rule, outcome or error", s)
	}
	return c, nil
}

// RunView prints the events of the log at path that match filter.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [run:%s] %-7s", ts, shortenRunID(event.RunID), event.Category)
	if event.RuleID != "" {
		fmt.Fprintf(w, " %s", event.RuleID)
	}
	fmt.Fprintln(w)

	switch {
	case event.Run != nil:
		formatRunDetails(w, event.Chid, event.Run)
	case event.Rule != nil:
		formatRuleDetails(w, event.Stage, event.Rule)
	case event.Outcome != nil:
		fmt.Fprintf(w, "  #%d %s: %s\n", event.Outcome.Seq, event.Outcome.Type, event.Outcome.Message)
	case event.Error != nil:
		fmt.Fprintf(w, "  Error: %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}
}

// shortenRunID returns the first 8 characters of the run ID.
func shortenRunID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatRunDetails(w io.Writer, chid string, run *log.RunEvent) {
	fmt.Fprintf(w, "  %s %s", run.Phase, chid)
	if run.Input != "" {
		fmt.Fprintf(w, " (%s)", run.Input)
	}
	fmt.Fprintln(w)
	if run.Phase == log.RunStarted {
		fmt.Fprintf(w, "  Rules: %d, output: %t\n", run.RuleCount, run.HasOutput)
	}
	if run.Duration != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*run.Duration))
	}
	if run.Counts != nil {
		fmt.Fprintf(w, "  Outcomes: %d success, %d warning, %d failure\n",
			run.Counts.Success, run.Counts.Warning, run.Counts.Failure)
	}
}

func formatRuleDetails(w io.Writer, stage string, rule *log.RuleEvent) {
	if rule.Skipped {
		fmt.Fprintf(w, "  skipped (%s): %s\n", stage, rule.Reason)
		return
	}
	fmt.Fprintf(w, "  %d outcomes in %s (%s)\n", rule.Outcomes, formatDuration(rule.Duration), stage)
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// RunStats prints statistics about the events of the log at path.
func RunStats(path string, filter log.Filter, w io.Writer) error {
	stats, err := log.ComputeStats(path, filter)
	if err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}

	fmt.Fprintf(w, "Events:   %d\n", stats.Events)
	fmt.Fprintf(w, "Runs:     %d\n", stats.Runs)
	if stats.Events > 0 {
		fmt.Fprintf(w, "From:     %s\n", stats.First.UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "To:       %s\n", stats.Last.UTC().Format(time.RFC3339))
	}

	fmt.Fprintf(w, "\nBy category:\n")
	for _, c := range []log.Category{log.CategoryRun, log.CategoryRule, log.CategoryOutcome, log.CategoryError} {
		fmt.Fprintf(w, "  %-8s %d\n", c, stats.Categories[c])
	}

	fmt.Fprintf(w, "\nOutcomes:\n")
	fmt.Fprintf(w, "  success  %d\n", stats.Outcomes.Success)
	fmt.Fprintf(w, "  warning  %d\n", stats.Outcomes.Warning)
	fmt.Fprintf(w, "  failure  %d\n", stats.Outcomes.Failure)

	if failing := stats.FailingRules(); len(failing) > 0 {
		fmt.Fprintf(w, "\nFailing rules:\n")
		for _, id := range failing {
			fmt.Fprintf(w, "  %-38s %d\n", id, stats.RuleFailures[id])
		}
	}
	return nil
}

// Package log captures verification runs as a machine-readable event
// stream.
//
// Operational logging goes through slog. This package is separate: it
// records every run, rule evaluation and outcome so that a run can be
// replayed, filtered and compared later with the fds-inspect log command.
//
// # Basic Usage
//
// Callers hand a Logger to the verification engine:
//
//	// For development: mirror events to the console via slog
//	cfg.EventLog = log.NewSlogAdapter(slog.Default())
//
//	// For archiving: write to a binary file
//	cfg.EventLog, _ = log.NewFileLogger("runs/office.flog")
//
//	// Both: use MultiLogger
//	cfg.EventLog = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
//   - Run: a run started, completed or aborted (RunEvent)
//   - Rule: a rule was evaluated or skipped (RuleEvent)
//   - Outcome: a single verification outcome (OutcomeEvent)
//   - Error: a rule or data source failed (ErrorEventData)
//
// # File Format
//
// Log files are a concatenation of CBOR-encoded events with integer keys,
// conventionally named with a .flog extension.
package log

package log

import (
	"context"
	"log/slog"
)

// SlogAdapter mirrors events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event as a single structured record.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("run_id", event.RunID),
		slog.String("category", event.Category.String()),
	}
	if event.Chid != "" {
		attrs = append(attrs, slog.String("chid", event.Chid))
	}
	if event.RuleID != "" {
		attrs = append(attrs, slog.String("rule", event.RuleID))
	}
	if event.Stage != "" {
		attrs = append(attrs, slog.String("stage", event.Stage))
	}

	switch {
	case event.Run != nil:
		attrs = append(attrs, slog.String("phase", event.Run.Phase.String()))
		if event.Run.Input != "" {
			attrs = append(attrs, slog.String("input", event.Run.Input))
		}
		if event.Run.RuleCount > 0 {
			attrs = append(attrs, slog.Int("rules", event.Run.RuleCount))
		}
		if event.Run.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.Run.Duration))
		}
		if c := event.Run.Counts; c != nil {
			attrs = append(attrs,
				slog.Int("success", c.Success),
				slog.Int("warning", c.Warning),
				slog.Int("failure", c.Failure),
			)
		}
	case event.Rule != nil:
		attrs = append(attrs,
			slog.Duration("duration", event.Rule.Duration),
			slog.Int("outcomes", event.Rule.Outcomes),
		)
		if event.Rule.Skipped {
			attrs = append(attrs, slog.Bool("skipped", true), slog.String("reason", event.Rule.Reason))
		}
	case event.Outcome != nil:
		attrs = append(attrs,
			slog.Int("seq", event.Outcome.Seq),
			slog.String("type", event.Outcome.Type),
			slog.String("message", event.Outcome.Message),
		)
	case event.Error != nil:
		attrs = append(attrs, slog.String("error", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "verify", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)

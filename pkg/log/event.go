package log

import "time"

// Event is a single captured step of a verification run.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID identifies the run (UUID).
	RunID string `cbor:"2,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"3,keyasint"`

	// Chid is the model's case identifier.
	Chid string `cbor:"4,keyasint,omitempty"`

	// RuleID is set for rule, outcome and rule error events.
	RuleID string `cbor:"5,keyasint,omitempty"`

	// Stage is the rule's stage ("in", "out" or "inout").
	Stage string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Run     *RunEvent       `cbor:"10,keyasint,omitempty"`
	Rule    *RuleEvent      `cbor:"11,keyasint,omitempty"`
	Outcome *OutcomeEvent   `cbor:"12,keyasint,omitempty"`
	Error   *ErrorEventData `cbor:"13,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryRun marks run lifecycle events.
	CategoryRun Category = 0
	// CategoryRule marks the evaluation of one rule.
	CategoryRule Category = 1
	// CategoryOutcome marks a verification outcome.
	CategoryOutcome Category = 2
	// CategoryError marks a failure of a rule or a data source.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRun:
		return "RUN"
	case CategoryRule:
		return "RULE"
	case CategoryOutcome:
		return "OUTCOME"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name as printed by String.
func ParseCategory(s string) (Category, bool) {
	for _, c := range []Category{CategoryRun, CategoryRule, CategoryOutcome, CategoryError} {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// RunPhase is the lifecycle point a run event marks.
type RunPhase uint8

const (
	RunStarted   RunPhase = 0
	RunCompleted RunPhase = 1
	RunAborted   RunPhase = 2
)

// String returns the phase name.
func (p RunPhase) String() string {
	switch p {
	case RunStarted:
		return "STARTED"
	case RunCompleted:
		return "COMPLETED"
	case RunAborted:
		return "ABORTED"
	default:
		return "UNKNOWN"
	}
}

// RunEvent describes the start or end of a run.
type RunEvent struct {
	Phase RunPhase `cbor:"1,keyasint"`

	// Input is the model source, usually a file path.
	Input string `cbor:"2,keyasint,omitempty"`

	// HasOutput is true when realised output was supplied.
	HasOutput bool `cbor:"3,keyasint,omitempty"`

	// RuleCount is the number of rules selected for the run.
	RuleCount int `cbor:"4,keyasint,omitempty"`

	// Duration of the run (completed/aborted only), in nanoseconds.
	Duration *time.Duration `cbor:"5,keyasint,omitempty"`

	// Counts of outcomes by type (completed only).
	Counts *Counts `cbor:"6,keyasint,omitempty"`
}

// Counts tallies outcomes by type.
type Counts struct {
	Success int `cbor:"1,keyasint" json:"success"`
	Warning int `cbor:"2,keyasint" json:"warning"`
	Failure int `cbor:"3,keyasint" json:"failure"`
}

// Total returns the number of outcomes.
func (c Counts) Total() int { return c.Success + c.Warning + c.Failure }

// RuleEvent describes the evaluation of one rule.
type RuleEvent struct {
	// Duration of the evaluation, in nanoseconds.
	Duration time.Duration `cbor:"1,keyasint"`

	// Outcomes is the number of outcomes the rule produced.
	Outcomes int `cbor:"2,keyasint"`

	// Skipped is true when the rule did not run.
	Skipped bool `cbor:"3,keyasint,omitempty"`

	// Reason explains a skip.
	Reason string `cbor:"4,keyasint,omitempty"`
}

// OutcomeEvent captures one verification outcome.
type OutcomeEvent struct {
	// Seq is the position of the outcome in the run's flattened list.
	Seq int `cbor:"1,keyasint"`

	// Type is "success", "warning" or "failure".
	Type string `cbor:"2,keyasint"`

	// Message is the human-readable verdict.
	Message string `cbor:"3,keyasint"`
}

// ErrorEventData captures a failure that aborted a rule or a run.
type ErrorEventData struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context describes what was being done.
	Context string `cbor:"2,keyasint,omitempty"`
}

package verify

import "fmt"

// OutcomeType grades a verification result.
type OutcomeType int

const (
	Success OutcomeType = iota
	Warning
	Failure
)

func (t OutcomeType) String() string {
	switch t {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// ParseOutcomeType parses "success", "warning" or "failure".
func ParseOutcomeType(s string) (OutcomeType, error) {
	switch s {
	case "success":
		return Success, nil
	case "warning":
		return Warning, nil
	case "failure":
		return Failure, nil
	}
	return 0, fmt.Errorf("unknown outcome type %q", s)
}

// MarshalText encodes the type by name for JSON and YAML.
func (t OutcomeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name.
func (t *OutcomeType) UnmarshalText(b []byte) error {
	v, err := ParseOutcomeType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Result is what a rule reports before it is attributed to the rule.
type Result struct {
	Type    OutcomeType
	Message string
}

// Successf returns a success result with a formatted message.
func Successf(format string, args ...any) Result {
	return Result{Type: Success, Message: fmt.Sprintf(format, args...)}
}

// Warningf returns a warning result with a formatted message.
func Warningf(format string, args ...any) Result {
	return Result{Type: Warning, Message: fmt.Sprintf(format, args...)}
}

// Failuref returns a failure result with a formatted message.
func Failuref(format string, args ...any) Result {
	return Result{Type: Failure, Message: fmt.Sprintf(format, args...)}
}

// NewSuccess, NewWarning and NewFailure build results with a fixed message.
func NewSuccess(msg string) Result { return Result{Type: Success, Message: msg} }
func NewWarning(msg string) Result { return Result{Type: Warning, Message: msg} }
func NewFailure(msg string) Result { return Result{Type: Failure, Message: msg} }

// Outcome is a Result attributed to the rule that produced it.
type Outcome struct {
	ID      string      `json:"id" yaml:"id"`
	Type    OutcomeType `json:"type" yaml:"type"`
	Message string      `json:"message" yaml:"message"`
}

// String returns a one-line representation of the outcome.
func (o Outcome) String() string {
	return fmt.Sprintf("[%s] %s: %s", o.ID, o.Type, o.Message)
}

// Counts tallies outcomes by type.
type Counts struct {
	Success int `json:"success"`
	Warning int `json:"warning"`
	Failure int `json:"failure"`
}

// Total returns the number of outcomes counted.
func (c Counts) Total() int { return c.Success + c.Warning + c.Failure }

// CountByType tallies outcomes.
func CountByType(outcomes []Outcome) Counts {
	var c Counts
	for _, o := range outcomes {
		switch o.Type {
		case Success:
			c.Success++
		case Warning:
			c.Warning++
		case Failure:
			c.Failure++
		}
	}
	return c
}

// FilterByType returns the outcomes whose type is one of types.
func FilterByType(outcomes []Outcome, types ...OutcomeType) []Outcome {
	var out []Outcome
	for _, o := range outcomes {
		for _, t := range types {
			if o.Type == t {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// ClearSuccess drops successful outcomes, keeping warnings and failures.
func ClearSuccess(outcomes []Outcome) []Outcome {
	return FilterByType(outcomes, Warning, Failure)
}

// HasFailures returns true if any outcome is a failure.
func HasFailures(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Type == Failure {
			return true
		}
	}
	return false
}

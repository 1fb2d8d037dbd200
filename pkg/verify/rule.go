package verify

import (
	"context"
	"errors"
	"fmt"

	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/series"
)

var (
	// ErrNoOutputData is returned by an OutputSource, or a rule, when the
	// realised output needed is not available. The rule is skipped.
	ErrNoOutputData = errors.New("no output data")

	// ErrStageMismatch means a rule's declared stage has no matching
	// check method.
	ErrStageMismatch = errors.New("rule stage does not match its checks")
)

// Stage declares which inputs a rule consumes.
type Stage int

const (
	StageInput Stage = iota
	StageOutput
	StageInputOutput
)

func (s Stage) String() string {
	switch s {
	case StageInput:
		return "in"
	case StageOutput:
		return "out"
	case StageInputOutput:
		return "inout"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// NeedsOutput reports whether rules of this stage read realised output.
func (s Stage) NeedsOutput() bool {
	return s == StageOutput || s == StageInputOutput
}

// OutputSource gives access to the realised output of a simulation.
type OutputSource interface {
	// Chid returns the case identifier the output was produced for.
	Chid() string
	// Series returns a named time series such as "hrr". It returns
	// ErrNoOutputData when the series does not exist.
	Series(ctx context.Context, name string) (*series.DataVector, error)
}

// Rule is a named verification check.
type Rule interface {
	// ID returns the unique identifier, e.g. "input.meshes.overlap".
	ID() string
	// Name returns a human-readable name for the rule.
	Name() string
	// Category groups related rules, e.g. "reaction".
	Category() string
	// Stage declares the inputs the rule needs.
	Stage() Stage
}

// InputChecker is implemented by StageInput rules.
type InputChecker interface {
	Rule
	CheckInput(m *fds.Model) []Result
}

// OutputChecker is implemented by StageOutput rules.
type OutputChecker interface {
	Rule
	CheckOutput(ctx context.Context, out OutputSource) ([]Result, error)
}

// InputOutputChecker is implemented by StageInputOutput rules.
type InputOutputChecker interface {
	Rule
	CheckInputOutput(ctx context.Context, m *fds.Model, out OutputSource) ([]Result, error)
}

// BaseRule provides the metadata methods of Rule.
type BaseRule struct {
	id       string
	name     string
	category string
	stage    Stage
}

// NewBaseRule creates a new BaseRule with the given properties.
func NewBaseRule(id, name, category string, stage Stage) *BaseRule {
	return &BaseRule{id: id, name: name, category: category, stage: stage}
}

// ID, Name, Category and Stage implement Rule.
func (r *BaseRule) ID() string       { return r.id }
func (r *BaseRule) Name() string     { return r.name }
func (r *BaseRule) Category() string { return r.category }
func (r *BaseRule) Stage() Stage     { return r.stage }

// check dispatches on the rule's stage.
func check(ctx context.Context, rule Rule, m *fds.Model, out OutputSource) ([]Result, error) {
	switch rule.Stage() {
	case StageInput:
		c, ok := rule.(InputChecker)
		if !ok {
			return nil, ErrStageMismatch
		}
		return c.CheckInput(m), nil
	case StageOutput:
		c, ok := rule.(OutputChecker)
		if !ok {
			return nil, ErrStageMismatch
		}
		return c.CheckOutput(ctx, out)
	case StageInputOutput:
		c, ok := rule.(InputOutputChecker)
		if !ok {
			return nil, ErrStageMismatch
		}
		return c.CheckInputOutput(ctx, m, out)
	}
	return nil, ErrStageMismatch
}

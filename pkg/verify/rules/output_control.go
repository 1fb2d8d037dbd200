package rules

import (
	"math"

	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// NFrames checks that NFRAMES divides the simulated time evenly, so that
// output is written at round times up to the end of the run.
type NFrames struct {
	*verify.BaseRule
}

// NewNFrames creates the input.dump.nFrames rule.
func NewNFrames() *NFrames {
	return &NFrames{
		BaseRule: verify.NewBaseRule("input.dump.nFrames", "Output frames divide the simulation", CategoryOutputControl, verify.StageInput),
	}
}

// CheckInput implements verify.InputChecker.
func (r *NFrames) CheckInput(m *fds.Model) []verify.Result {
	n := m.Dump.NFrames
	if n == nil || *n == 0 {
		return []verify.Result{verify.NewFailure("NFRAMES not specified")}
	}
	begin, end := 0.0, 1.0
	if m.Time != nil {
		begin, end = m.Time.Begin, m.Time.End
	}
	interval := math.Round(end - begin)
	if math.Mod(interval, float64(*n)) == 0 {
		return []verify.Result{verify.Successf("Value %d, results in round number of frames", *n)}
	}
	return []verify.Result{verify.Failuref("Value %d may result in clipped output", *n)}
}

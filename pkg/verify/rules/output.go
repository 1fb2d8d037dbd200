package rules

import (
	"context"

	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// HRRSeries checks that the realised HRR series is usable: it has samples
// and its time column strictly increases.
type HRRSeries struct {
	*verify.BaseRule
}

// NewHRRSeries creates the output.hrr.series rule.
func NewHRRSeries() *HRRSeries {
	return &HRRSeries{
		BaseRule: verify.NewBaseRule("output.hrr.series", "HRR output is well formed", CategoryOutput, verify.StageOutput),
	}
}

// CheckOutput implements verify.OutputChecker.
func (r *HRRSeries) CheckOutput(ctx context.Context, out verify.OutputSource) ([]verify.Result, error) {
	v, err := out.Series(ctx, HRRSeriesName)
	if err != nil {
		return nil, err
	}
	switch {
	case v.Len() == 0:
		return []verify.Result{verify.NewFailure("HRR output has no samples")}, nil
	case !v.Monotonic():
		return []verify.Result{verify.NewFailure("HRR output time is not strictly increasing")}, nil
	}
	return []verify.Result{verify.Successf("HRR output has %d samples up to %s s", v.Len(), num(v.LastX()))}, nil
}

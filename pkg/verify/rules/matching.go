package rules

import (
	"context"
	"fmt"

	"github.com/smoke-cloud/fds-inspect-go/pkg/combustion"
	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// HRRSeriesName is the output series holding the realised heat release
// rate in kW.
const HRRSeriesName = "hrr"

// MatchingChid checks that the output was produced for this model.
type MatchingChid struct {
	*verify.BaseRule
}

// NewMatchingChid creates the matching.chid rule.
func NewMatchingChid() *MatchingChid {
	return &MatchingChid{
		BaseRule: verify.NewBaseRule("matching.chid", "Output CHID matches input", CategoryMatching, verify.StageInputOutput),
	}
}

// CheckInputOutput implements verify.InputOutputChecker.
func (r *MatchingChid) CheckInputOutput(_ context.Context, m *fds.Model, out verify.OutputSource) ([]verify.Result, error) {
	if m.Chid == out.Chid() {
		return []verify.Result{verify.Successf("CHIDs match, %s = %s", m.Chid, out.Chid())}, nil
	}
	return []verify.Result{verify.Failuref("CHIDs don't match, %s ≠ %s", m.Chid, out.Chid())}, nil
}

// MatchingHRR compares the realised heat release rate with the rate the
// burners prescribe. After the first minute the realised rate may leave a
// 10% band only for less than 10 s at a time.
type MatchingHRR struct {
	*verify.BaseRule
	opts combustion.BreachOptions
}

// NewMatchingHRR creates the matching.hrr rule.
func NewMatchingHRR() *MatchingHRR {
	return &MatchingHRR{
		BaseRule: verify.NewBaseRule("matching.hrr", "Realised HRR matches specification", CategoryMatching, verify.StageInputOutput),
		opts:     combustion.DefaultBreachOptions(),
	}
}

// CheckInputOutput implements verify.InputOutputChecker.
func (r *MatchingHRR) CheckInputOutput(ctx context.Context, m *fds.Model, out verify.OutputSource) ([]verify.Result, error) {
	spec, ok := m.HrrSpec()
	if !ok || spec.IsComposite() {
		return nil, nil
	}
	realised, err := out.Series(ctx, HRRSeriesName)
	if err != nil {
		return nil, err
	}
	diff, err := combustion.RelativeDifference(spec, realised)
	if err != nil {
		return nil, fmt.Errorf("compare hrr: %w", err)
	}

	report := combustion.AnalyseBreaches(diff, r.opts)
	switch report.Verdict() {
	case combustion.VerdictSustained:
		return []verify.Result{verify.Failuref(
			"HRR exceeds 10%% bounds for greater than 10 s (%.2f s in total for a maximum of %.2f s)",
			report.Total, report.Longest)}, nil
	case combustion.VerdictMomentary:
		return []verify.Result{verify.NewWarning("HRR exceeds 10% bounds, albeit only momentarily")}, nil
	default:
		return []verify.Result{verify.NewSuccess("HRR matches specification within 10% bounds")}, nil
	}
}

package rules

import (
	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

var (
	knownSootYields        = []float64{0.07, 0.1}
	knownCOYields          = []float64{0.05, 0.014}
	knownVisibilityFactors = []float64{3, 8}
)

// MinimumVisibility is the shortest acceptable maximum visibility in m.
const MinimumVisibility = 100.0

// checkValue grades an optional value against a set of recognised ones.
// Zero is treated as unset, as FDS defaults these values to zero.
func checkValue(name string, v *float64, known []float64) verify.Result {
	if v == nil || *v == 0 {
		return verify.Failuref("%s was not specified.", name)
	}
	if recognised(*v, known) {
		return verify.Successf("%s was %s, a recognised value.", name, num(*v))
	}
	return verify.Failuref("%s was %s, which is not one of the usual values of %s.", name, num(*v), numSet(known))
}

// SootYield checks the soot yield of every reaction.
type SootYield struct {
	*verify.BaseRule
}

// NewSootYield creates the input.reac.sootYield rule.
func NewSootYield() *SootYield {
	return &SootYield{
		BaseRule: verify.NewBaseRule("input.reac.sootYield", "Soot yield is a recognised value", CategoryReaction, verify.StageInput),
	}
}

// CheckInput implements verify.InputChecker.
func (r *SootYield) CheckInput(m *fds.Model) []verify.Result {
	var results []verify.Result
	for i := range m.Reacs {
		results = append(results, checkValue("Soot Yield", m.Reacs[i].SootYield, knownSootYields))
	}
	return results
}

// COYield checks the CO yield of every reaction.
type COYield struct {
	*verify.BaseRule
}

// NewCOYield creates the input.reac.coYield rule.
func NewCOYield() *COYield {
	return &COYield{
		BaseRule: verify.NewBaseRule("input.reac.coYield", "CO yield is a recognised value", CategoryReaction, verify.StageInput),
	}
}

// CheckInput implements verify.InputChecker.
func (r *COYield) CheckInput(m *fds.Model) []verify.Result {
	var results []verify.Result
	for i := range m.Reacs {
		results = append(results, checkValue("CO Yield", m.Reacs[i].COYield, knownCOYields))
	}
	return results
}

// Formula checks the fuel composition of the single reaction against the
// standard polyurethane-like fuel C1 H1.45 O0.46 N0.04.
type Formula struct {
	*verify.BaseRule
}

// NewFormula creates the input.reac.formula rule.
func NewFormula() *Formula {
	return &Formula{
		BaseRule: verify.NewBaseRule("input.reac.formula", "Fuel formula is recognised", CategoryReaction, verify.StageInput),
	}
}

// CheckInput implements verify.InputChecker.
func (r *Formula) CheckInput(m *fds.Model) []verify.Result {
	switch len(m.Reacs) {
	case 0:
		return []verify.Result{verify.NewFailure("No REAC has been specified")}
	case 1:
	default:
		return []verify.Result{verify.Failuref("Multiple REACs specified (%d)", len(m.Reacs))}
	}
	reac := &m.Reacs[0]
	return []verify.Result{
		checkValue("C", reac.C, []float64{1}),
		checkValue("H", reac.H, []float64{1.45}),
		checkValue("N", reac.N, []float64{0.04}),
		checkValue("O", reac.O, []float64{0.46}),
	}
}

// VisibilityFactor checks that VISIBILITY_FACTOR is 3 or 8.
type VisibilityFactor struct {
	*verify.BaseRule
}

// NewVisibilityFactor creates the input.reac.visibilityFactor rule.
func NewVisibilityFactor() *VisibilityFactor {
	return &VisibilityFactor{
		BaseRule: verify.NewBaseRule("input.reac.visibilityFactor", "Visibility factor is a known value", CategoryReaction, verify.StageInput),
	}
}

// CheckInput implements verify.InputChecker.
func (r *VisibilityFactor) CheckInput(m *fds.Model) []verify.Result {
	vf := m.VisibilityFactor
	if vf == nil || *vf == 0 {
		return []verify.Result{verify.NewFailure("Visibility Factor Not Set")}
	}
	if recognised(*vf, knownVisibilityFactors) {
		return []verify.Result{verify.Successf("Visibility Factor is %s, a known value.", num(*vf))}
	}
	return []verify.Result{verify.Failuref("Visibility Factor is %s. Known good visibility factors are 3 and 8.", num(*vf))}
}

// MaximumVisibility checks that VISIBILITY_FACTOR / EC_LL allows at least
// MinimumVisibility metres of visibility.
type MaximumVisibility struct {
	*verify.BaseRule
}

// NewMaximumVisibility creates the input.reac.maximumVisibility rule.
func NewMaximumVisibility() *MaximumVisibility {
	return &MaximumVisibility{
		BaseRule: verify.NewBaseRule("input.reac.maximumVisibility", "Maximum visibility is at least 100 m", CategoryReaction, verify.StageInput),
	}
}

// CheckInput implements verify.InputChecker.
func (r *MaximumVisibility) CheckInput(m *fds.Model) []verify.Result {
	vis, ok := m.MaximumVisibility()
	if !ok {
		return []verify.Result{verify.NewFailure("Maximum Visibility Not Set")}
	}
	if vis >= MinimumVisibility {
		return []verify.Result{verify.Successf("Maximum Visibility is %s m, at least 100 m.", num(vis))}
	}
	return []verify.Result{verify.Failuref(
		"Maximum Visibility is %s m. This is a low value and may cause issues when trying to visualise results.", num(vis))}
}

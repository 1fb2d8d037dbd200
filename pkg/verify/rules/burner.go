package rules

import (
	"math"

	"github.com/smoke-cloud/fds-inspect-go/pkg/combustion"
	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// SteadyStateRamp is the ramp time in s used by convention for fires that
// are meant to be steady.
const SteadyStateRamp = 30.0

// GrowthRate checks that the combined burner ramp follows a standard
// t-squared growth rate, or the steady-state convention.
type GrowthRate struct {
	*verify.BaseRule
}

// NewGrowthRate creates the input.burner.growthRate rule.
func NewGrowthRate() *GrowthRate {
	return &GrowthRate{
		BaseRule: verify.NewBaseRule("input.burner.growthRate", "Burner growth rate is standard", CategoryBurner, verify.StageInput),
	}
}

// CheckInput implements verify.InputChecker.
func (r *GrowthRate) CheckInput(m *fds.Model) []verify.Result {
	spec, ok := m.HrrSpec()
	if !ok {
		return nil
	}
	if spec.IsComposite() {
		return []verify.Result{verify.NewFailure("Growth rate is composite")}
	}
	if spec.TauQ == nil {
		return []verify.Result{verify.NewWarning(
			"No growth rate specified. If steady-state is intended a ramp-up of 30 s should be used.")}
	}
	if math.Abs(*spec.TauQ) == SteadyStateRamp {
		return []verify.Result{verify.NewSuccess("Growth rate is 30 s (as used for steady-state)")}
	}

	rate := "no standard rate"
	c, classified := combustion.ClassifyGrowthRate(spec)
	if classified && c.Matched {
		rate = string(c.Rate)
	}
	info := "TAU_Q = " + num(*spec.TauQ) + " s, (" + rate + "), MaxHRR = " + num(spec.Peak/1000) + " kW"
	if classified && c.Matched {
		return []verify.Result{verify.Successf("Alpha matches standard value: %s", info)}
	}
	return []verify.Result{verify.Failuref("Alpha value deviates from standard values: %s", info)}
}

// BurnerExists checks that the model contains at least one burner.
type BurnerExists struct {
	*verify.BaseRule
}

// NewBurnerExists creates the input.burner.exists rule.
func NewBurnerExists() *BurnerExists {
	return &BurnerExists{
		BaseRule: verify.NewBaseRule("input.burner.exists", "A burner exists", CategoryBurner, verify.StageInput),
	}
}

// CheckInput implements verify.InputChecker.
func (r *BurnerExists) CheckInput(m *fds.Model) []verify.Result {
	n := len(m.Burners())
	if n == 0 {
		return []verify.Result{verify.NewFailure("No burners")}
	}
	return []verify.Result{verify.Successf("%d burners were found", n)}
}

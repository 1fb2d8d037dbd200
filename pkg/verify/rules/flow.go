package rules

import (
	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// FlowTemperature checks that surfaces imposing a flow on a vent leave
// TMP_FRONT at ambient. Each surface is reported once, in order of first
// use.
type FlowTemperature struct {
	*verify.BaseRule
}

// NewFlowTemperature creates the input.flows.parameters.temperature rule.
func NewFlowTemperature() *FlowTemperature {
	return &FlowTemperature{
		BaseRule: verify.NewBaseRule("input.flows.parameters.temperature", "Flow surfaces at ambient temperature", CategoryFlow, verify.StageInput),
	}
}

// CheckInput implements verify.InputChecker.
func (r *FlowTemperature) CheckInput(m *fds.Model) []verify.Result {
	var results []verify.Result
	seen := make(map[string]bool)
	for _, v := range m.Vents() {
		if v.Surface == "" || seen[v.Surface] {
			continue
		}
		seen[v.Surface] = true
		s, ok := m.Surface(v.Surface)
		if !ok || !s.HasFlow() {
			continue
		}
		if s.LeavesAmbientFront() {
			results = append(results, verify.Successf("Flow Temp for Surface `%s` leaves TMP_FRONT as default", s.ID))
			continue
		}
		results = append(results, verify.Failuref(
			"Flow Temp for Surface `%s` sets TMP_FRONT to `%s`, which is not an expected value", s.ID, num(*s.TmpFront)))
	}
	return results
}

// FlowCoverage checks that every supply and extract vent is measured by a
// flow device with exactly the vent's dimensions. Flows driven through
// HVAC ducts are not covered.
type FlowCoverage struct {
	*verify.BaseRule
}

// NewFlowCoverage creates the input.measure.flow rule.
func NewFlowCoverage() *FlowCoverage {
	return &FlowCoverage{
		BaseRule: verify.NewBaseRule("input.measure.flow", "Flow vents are measured", CategoryMeasurement, verify.StageInput),
	}
}

// CheckInput implements verify.InputChecker.
func (r *FlowCoverage) CheckInput(m *fds.Model) []verify.Result {
	var results []verify.Result
	vents := append(m.Supplies(), m.Extracts()...)
	for _, v := range vents {
		if !m.HasFlowDevice(v) {
			results = append(results, verify.Failuref("Vent `%s` has no adequate volume flow measuring device", v.ID))
		}
	}
	if len(results) == 0 {
		return []verify.Result{verify.NewSuccess("All Flows Vents and Obsts Measured")}
	}
	return results
}

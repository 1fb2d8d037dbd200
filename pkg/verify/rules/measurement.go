package rules

import (
	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// DeviceInSolid fails for every device with a PROP_ID whose sample points
// fall inside a solid cell. Devices without a property are usually gas
// phase probes and are not checked.
type DeviceInSolid struct {
	*verify.BaseRule
}

// NewDeviceInSolid creates the input.measure.device.inSolid rule.
func NewDeviceInSolid() *DeviceInSolid {
	return &DeviceInSolid{
		BaseRule: verify.NewBaseRule("input.measure.device.inSolid", "Devices are not inside solids", CategoryMeasurement, verify.StageInput),
	}
}

// CheckInput implements verify.InputChecker.
func (r *DeviceInSolid) CheckInput(m *fds.Model) []verify.Result {
	var results []verify.Result
	for i := range m.Devices {
		d := &m.Devices[i]
		if d.PropID != "" && d.StuckInSolid() {
			results = append(results, verify.Failuref("Devc `%s` positioned within solid obstruction", d.ID))
		}
	}
	if len(results) == 0 {
		return []verify.Result{verify.NewSuccess("No stuck devices")}
	}
	return results
}

// DeviceUnderCeiling checks that sprinklers and detectors sit directly
// beneath a solid cell.
type DeviceUnderCeiling struct {
	*verify.BaseRule
}

// NewDeviceUnderCeiling creates the input.measure.device.underCeiling rule.
func NewDeviceUnderCeiling() *DeviceUnderCeiling {
	return &DeviceUnderCeiling{
		BaseRule: verify.NewBaseRule("input.measure.device.underCeiling", "Sprinklers and detectors are beneath a ceiling", CategoryMeasurement, verify.StageInput),
	}
}

// CheckInput implements verify.InputChecker.
func (r *DeviceUnderCeiling) CheckInput(m *fds.Model) []verify.Result {
	var results []verify.Result
	for _, d := range m.Detectors() {
		if !d.BeneathCeiling() {
			results = append(results, verify.Failuref("Devc `%s` is not immediately beneath solid obstruction", d.ID))
		}
	}
	if len(results) == 0 {
		return []verify.Result{verify.NewSuccess("All sprinklers and detectors are immediately below the ceiling")}
	}
	return results
}

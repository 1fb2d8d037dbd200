package fds

import "github.com/smoke-cloud/fds-inspect-go/pkg/geom"

// Quantity names used to classify devices and properties.
const (
	QuantityVolumeFlow        = "VOLUME FLOW"
	QuantityNormalVelocity    = "NORMAL VELOCITY"
	StatisticSurfaceIntegral  = "SURFACE INTEGRAL"
	QuantitySprinklerLinkTemp = "SPRINKLER LINK TEMPERATURE"
	QuantityLinkTemperature   = "LINK TEMPERATURE"
	QuantityChamberObscure    = "CHAMBER OBSCURATION"
)

// DevcPoint is a sampled grid location of a device with the solidity of
// its cell and the cell above.
type DevcPoint struct {
	I              int   `json:"i" yaml:"i"`
	J              int   `json:"j" yaml:"j"`
	K              int   `json:"k" yaml:"k"`
	InitSolid      bool  `json:"init_solid" yaml:"init_solid"`
	InitSolidZPlus *bool `json:"init_solid_zplus,omitempty" yaml:"init_solid_zplus,omitempty"`
}

// Devc is a measuring device.
type Devc struct {
	Index            int         `json:"index" yaml:"index"`
	ID               string      `json:"id" yaml:"id"`
	Label            string      `json:"label,omitempty" yaml:"label,omitempty"`
	SpatialStatistic string      `json:"spatial_statistic,omitempty" yaml:"spatial_statistic,omitempty"`
	SpecID           string      `json:"spec_id,omitempty" yaml:"spec_id,omitempty"`
	PropID           string      `json:"prop_id,omitempty" yaml:"prop_id,omitempty"`
	Mesh             int         `json:"mesh" yaml:"mesh"`
	Setpoint         *float64    `json:"setpoint,omitempty" yaml:"setpoint,omitempty"`
	Dimensions       geom.Xb     `json:"dimensions" yaml:"dimensions"`
	Location         geom.Xyz    `json:"location" yaml:"location"`
	Quantities       []string    `json:"quantities" yaml:"quantities"`
	Points           []DevcPoint `json:"points" yaml:"points"`
}

// IsFlowDevice reports whether the device measures a volume flow, either
// directly or as a surface integral of normal velocity.
func (d *Devc) IsFlowDevice() bool {
	if len(d.Quantities) == 0 {
		return false
	}
	q := d.Quantities[0]
	return q == QuantityVolumeFlow ||
		(q == QuantityNormalVelocity && d.SpatialStatistic == StatisticSurfaceIntegral)
}

// StuckInSolid reports whether any sample point lies in a solid cell.
func (d *Devc) StuckInSolid() bool {
	for _, p := range d.Points {
		if p.InitSolid {
			return true
		}
	}
	return false
}

// BeneathCeiling reports whether every sample point has a solid cell
// directly above it. A point without a recorded value counts as beneath.
func (d *Devc) BeneathCeiling() bool {
	for _, p := range d.Points {
		if p.InitSolidZPlus != nil && !*p.InitSolidZPlus {
			return false
		}
	}
	return true
}

// Prop describes the behaviour of a class of devices.
type Prop struct {
	Index                 int     `json:"index" yaml:"index"`
	ID                    string  `json:"id" yaml:"id"`
	PartID                string  `json:"part_id,omitempty" yaml:"part_id,omitempty"`
	SpecID                string  `json:"spec_id,omitempty" yaml:"spec_id,omitempty"`
	Quantity              string  `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	ActivationTemperature float64 `json:"activation_temperature" yaml:"activation_temperature"`
	ActivationObscuration float64 `json:"activation_obscuration" yaml:"activation_obscuration"`
	FlowRate              float64 `json:"flow_rate" yaml:"flow_rate"`
	ParticleVelocity      float64 `json:"particle_velocity" yaml:"particle_velocity"`
}

// IsSprinkler, IsThermalDetector and IsSmokeDetector classify a property by
// its quantity.
func (p *Prop) IsSprinkler() bool       { return p.Quantity == QuantitySprinklerLinkTemp }
func (p *Prop) IsThermalDetector() bool { return p.Quantity == QuantityLinkTemperature }
func (p *Prop) IsSmokeDetector() bool   { return p.Quantity == QuantityChamberObscure }

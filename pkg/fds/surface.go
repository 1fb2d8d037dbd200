package fds

// AmbientTemperature is the default TMP_FRONT in K.
const AmbientTemperature = 293.15

// Surf is a named boundary condition.
type Surf struct {
	Index      int      `json:"index" yaml:"index"`
	ID         string   `json:"id" yaml:"id"`
	HRRPUA     *float64 `json:"hrrpua,omitempty" yaml:"hrrpua,omitempty"`
	MLRPUA     *float64 `json:"mlrpua,omitempty" yaml:"mlrpua,omitempty"`
	TmpFront   *float64 `json:"tmp_front,omitempty" yaml:"tmp_front,omitempty"`
	TauQ       *float64 `json:"tau_q,omitempty" yaml:"tau_q,omitempty"`
	Vel        *float64 `json:"vel,omitempty" yaml:"vel,omitempty"`
	VolumeFlow *float64 `json:"volume_flow,omitempty" yaml:"volume_flow,omitempty"`
}

func positive(v *float64) bool { return v != nil && *v > 0 }

// IsBurner reports whether the surface releases heat.
func (s *Surf) IsBurner() bool {
	return positive(s.HRRPUA) || positive(s.MLRPUA)
}

// HasFlow reports whether the surface imposes a velocity or volume flow.
func (s *Surf) HasFlow() bool {
	return s.Vel != nil || s.VolumeFlow != nil
}

// FlowValue returns the imposed volume flow, or the velocity when no
// volume flow is set. The sign follows FDS: negative flows into the domain.
func (s *Surf) FlowValue() (float64, bool) {
	switch {
	case s.VolumeFlow != nil:
		return *s.VolumeFlow, true
	case s.Vel != nil:
		return *s.Vel, true
	}
	return 0, false
}

// IsSupply reports whether the surface blows into the domain.
func (s *Surf) IsSupply() bool {
	v, ok := s.FlowValue()
	return ok && v < 0
}

// IsExtract reports whether the surface draws out of the domain.
func (s *Surf) IsExtract() bool {
	v, ok := s.FlowValue()
	return ok && v > 0
}

// LeavesAmbientFront reports whether TMP_FRONT is unset or the ambient
// default.
func (s *Surf) LeavesAmbientFront() bool {
	return s.TmpFront == nil || *s.TmpFront == AmbientTemperature
}

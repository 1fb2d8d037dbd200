package combustion

import (
	"errors"
	"fmt"
	"math"

	"github.com/smoke-cloud/fds-inspect-go/pkg/series"
)

// ErrCompositeSpec is returned when a curve is requested from a composite
// specification.
var ErrCompositeSpec = errors.New("composite HRR specification has no single curve")

// SpecKind discriminates HrrSpec.
type SpecKind int

const (
	// KindSimple is a single capped t-squared ramp.
	KindSimple SpecKind = iota
	// KindComposite is a combination of ramps that cannot be reduced.
	KindComposite
)

func (k SpecKind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindComposite:
		return "composite"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// HrrSpec describes the specified heat release of a model.
type HrrSpec struct {
	Kind SpecKind
	// TauQ is the ramp time in seconds. Nil means no ramp: the peak applies
	// from the start. FDS uses a negative value for a t-squared ramp.
	TauQ *float64
	// Peak heat release in W.
	Peak float64
}

// Simple creates a simple spec.
func Simple(tauQ *float64, peak float64) HrrSpec {
	return HrrSpec{Kind: KindSimple, TauQ: tauQ, Peak: peak}
}

// Composite creates a composite spec.
func Composite() HrrSpec {
	return HrrSpec{Kind: KindComposite}
}

// IsComposite reports whether the spec is composite.
func (s HrrSpec) IsComposite() bool { return s.Kind == KindComposite }

// CapTime returns |tau_q|, or 0 when no ramp is set.
func (s HrrSpec) CapTime() float64 {
	if s.TauQ == nil {
		return 0
	}
	return math.Abs(*s.TauQ)
}

// Alpha returns the growth coefficient peak / tau_q² in W/s. It is zero
// when no ramp is set.
func (s HrrSpec) Alpha() float64 {
	if s.TauQ == nil || *s.TauQ == 0 {
		return 0
	}
	return s.Peak / (*s.TauQ * *s.TauQ)
}

// AlphaKW returns Alpha in kW/s².
func (s HrrSpec) AlphaKW() float64 {
	if s.TauQ == nil || *s.TauQ == 0 {
		return 0
	}
	return (s.Peak / 1000) / (*s.TauQ * *s.TauQ)
}

// Combine merges several specs into one. Simple specs sharing the same ramp
// time sum their peaks; a difference in ramp time, or any composite input,
// gives a composite spec. Combining nothing yields a zero simple spec.
func Combine(specs ...HrrSpec) HrrSpec {
	if len(specs) == 0 {
		return Simple(nil, 0)
	}
	acc := specs[0]
	for _, s := range specs[1:] {
		if acc.IsComposite() || s.IsComposite() || !sameTau(acc.TauQ, s.TauQ) {
			return Composite()
		}
		acc.Peak += s.Peak
	}
	return acc
}

func sameTau(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// CalcHrr evaluates the capped t-squared curve at time t, in W.
func CalcHrr(spec HrrSpec, t float64) (float64, error) {
	if spec.IsComposite() {
		return 0, ErrCompositeSpec
	}
	if t <= 0 {
		return 0, nil
	}
	if spec.TauQ == nil || *spec.TauQ == 0 {
		return spec.Peak, nil
	}
	capTime := spec.CapTime()
	alpha := spec.Alpha()
	if t > capTime {
		return alpha * capTime * capTime, nil
	}
	return alpha * t * t, nil
}

// Synthesize builds the reference curve from 0 to tEnd at step dt, in kW so
// that it can be plotted against realised output.
func Synthesize(spec HrrSpec, tEnd, dt float64) (*series.DataVector, error) {
	if spec.IsComposite() {
		return nil, ErrCompositeSpec
	}
	if dt <= 0 {
		return nil, fmt.Errorf("invalid time step %v", dt)
	}
	out := series.New("Time", "s", "HRR", "kW")
	n := int(math.Floor(tEnd/dt + 1e-9))
	for i := 0; i <= n; i++ {
		t := float64(i) * dt
		q, err := CalcHrr(spec, t)
		if err != nil {
			return nil, err
		}
		out.Append(t, q/1000)
	}
	return out, nil
}

package fds

import (
	"fmt"

	"github.com/smoke-cloud/fds-inspect-go/pkg/combustion"
)

// BurnerKind discriminates Burner.
type BurnerKind int

const (
	BurnerObst BurnerKind = iota + 1
	BurnerVent
)

func (k BurnerKind) String() string {
	switch k {
	case BurnerObst:
		return "obst"
	case BurnerVent:
		return "vent"
	default:
		return fmt.Sprintf("burner(%d)", int(k))
	}
}

// Burner is an obstruction or vent that releases heat. Use NewObstBurner or
// NewVentBurner; the zero value is invalid.
type Burner struct {
	kind BurnerKind
	obst *Obst
	vent *Vent
}

// NewObstBurner wraps an obstruction.
func NewObstBurner(o *Obst) Burner { return Burner{kind: BurnerObst, obst: o} }

// NewVentBurner wraps a vent.
func NewVentBurner(v *Vent) Burner { return Burner{kind: BurnerVent, vent: v} }

// Kind returns the variant.
func (b Burner) Kind() BurnerKind { return b.kind }

// Obst returns the wrapped obstruction, or nil for a vent burner.
func (b Burner) Obst() *Obst { return b.obst }

// Vent returns the wrapped vent, or nil for an obstruction burner.
func (b Burner) Vent() *Vent { return b.vent }

func (b Burner) invalid() string {
	return fmt.Sprintf("fds: invalid burner kind %v", b.kind)
}

// ID returns the id of the wrapped object.
func (b Burner) ID() string {
	switch b.kind {
	case BurnerObst:
		return b.obst.ID
	case BurnerVent:
		return b.vent.ID
	}
	panic(b.invalid())
}

// SurfaceID returns the surface that supplies the heat release. For an
// obstruction only the top face is considered.
func (b Burner) SurfaceID() string {
	switch b.kind {
	case BurnerObst:
		if b.obst.Surfaces == nil {
			return ""
		}
		return b.obst.Surfaces.ZMax
	case BurnerVent:
		return b.vent.Surface
	}
	panic(b.invalid())
}

// FuelArea returns the burning area in m².
func (b Burner) FuelArea() float64 {
	switch b.kind {
	case BurnerObst:
		return b.obst.TopArea()
	case BurnerVent:
		return b.vent.FaceArea()
	}
	panic(b.invalid())
}

// Surface resolves the burning surface in m.
func (b Burner) Surface(m *Model) (*Surf, bool) {
	id := b.SurfaceID()
	if id == "" {
		return nil, false
	}
	return m.Surface(id)
}

// HRRPUA returns the heat release per unit area in kW/m². A surface given
// as a mass loss rate is converted with the reaction's heat of combustion.
func (b Burner) HRRPUA(m *Model) float64 {
	s, ok := b.Surface(m)
	if !ok {
		return 0
	}
	switch {
	case positive(s.HRRPUA):
		return *s.HRRPUA
	case positive(s.MLRPUA):
		r, ok := m.Reac()
		if !ok {
			return 0
		}
		return r.HeatOfCombustion * *s.MLRPUA
	}
	return 0
}

// MaxHRR returns the peak heat release in W.
func (b Burner) MaxHRR(m *Model) float64 {
	return b.FuelArea() * b.HRRPUA(m) * 1000
}

// TauQ returns the ramp time of the burning surface.
func (b Burner) TauQ(m *Model) *float64 {
	s, ok := b.Surface(m)
	if !ok {
		return nil
	}
	return s.TauQ
}

// HrrSpec returns the simple ramp this burner follows.
func (b Burner) HrrSpec(m *Model) combustion.HrrSpec {
	return combustion.Simple(b.TauQ(m), b.MaxHRR(m))
}

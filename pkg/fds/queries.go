package fds

import (
	"math"

	"github.com/smoke-cloud/fds-inspect-go/pkg/combustion"
	"github.com/smoke-cloud/fds-inspect-go/pkg/geom"
)

// Surface finds a surface by id.
func (m *Model) Surface(id string) (*Surf, bool) {
	for i := range m.Surfaces {
		if m.Surfaces[i].ID == id {
			return &m.Surfaces[i], true
		}
	}
	return nil, false
}

// Prop finds a property by id.
func (m *Model) Prop(id string) (*Prop, bool) {
	if id == "" {
		return nil, false
	}
	for i := range m.Props {
		if m.Props[i].ID == id {
			return &m.Props[i], true
		}
	}
	return nil, false
}

// Reac returns the first reaction, if any.
func (m *Model) Reac() (*Reac, bool) {
	if len(m.Reacs) == 0 {
		return nil, false
	}
	return &m.Reacs[0], true
}

// Vents returns every vent in mesh order.
func (m *Model) Vents() []*Vent {
	var out []*Vent
	for i := range m.Meshes {
		for j := range m.Meshes[i].Vents {
			out = append(out, &m.Meshes[i].Vents[j])
		}
	}
	return out
}

// Obsts returns every obstruction in mesh order.
func (m *Model) Obsts() []*Obst {
	var out []*Obst
	for i := range m.Meshes {
		for j := range m.Meshes[i].Obsts {
			out = append(out, &m.Meshes[i].Obsts[j])
		}
	}
	return out
}

func (m *Model) anyBurnerSurface(ids ...string) bool {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if s, ok := m.Surface(id); ok && s.IsBurner() {
			return true
		}
	}
	return false
}

// IsBurnerObst reports whether any face of o references a burner surface.
func (m *Model) IsBurnerObst(o *Obst) bool {
	if o.Surfaces == nil {
		return false
	}
	return m.anyBurnerSurface(o.Surfaces.IDs()...)
}

// IsBurnerVent reports whether v references a burner surface.
func (m *Model) IsBurnerVent(v *Vent) bool {
	return m.anyBurnerSurface(v.Surface)
}

// Burners returns all burning obstructions followed by all burning vents.
func (m *Model) Burners() []Burner {
	var out []Burner
	for _, o := range m.Obsts() {
		if m.IsBurnerObst(o) {
			out = append(out, NewObstBurner(o))
		}
	}
	for _, v := range m.Vents() {
		if m.IsBurnerVent(v) {
			out = append(out, NewVentBurner(v))
		}
	}
	return out
}

// HrrSpec combines the specs of every burner. The second result is false
// when the model has no burners.
func (m *Model) HrrSpec() (combustion.HrrSpec, bool) {
	burners := m.Burners()
	if len(burners) == 0 {
		return combustion.HrrSpec{}, false
	}
	specs := make([]combustion.HrrSpec, len(burners))
	for i, b := range burners {
		specs[i] = b.HrrSpec(m)
	}
	return combustion.Combine(specs...), true
}

// TotalMaxHRR sums the peak heat release of all burners in W.
func (m *Model) TotalMaxHRR() float64 {
	var total float64
	for _, b := range m.Burners() {
		total += b.MaxHRR(m)
	}
	return total
}

// VentHasFlow reports whether the vent's surface imposes a flow.
func (m *Model) VentHasFlow(v *Vent) bool {
	if m.ventHasHvacFlow(v) {
		return true
	}
	if v.Surface == "" {
		return false
	}
	s, ok := m.Surface(v.Surface)
	return ok && s.HasFlow()
}

// ventHasHvacFlow is where flow driven through a linked HVAC node would be
// detected. Duct flows are not resolved yet, so linked vents are not
// treated as flow vents.
// TODO: resolve HVAC node flows once duct definitions are exported.
func (m *Model) ventHasHvacFlow(v *Vent) bool {
	return false
}

// HvacLinks returns the HVAC nodes that reference v.
func (m *Model) HvacLinks(v *Vent) []Hvac {
	var out []Hvac
	for _, h := range m.Hvac {
		if h.LinksVent(v) {
			out = append(out, h)
		}
	}
	return out
}

// FlowDevices returns the devices that measure a volume flow.
func (m *Model) FlowDevices() []*Devc {
	var out []*Devc
	for i := range m.Devices {
		if m.Devices[i].IsFlowDevice() {
			out = append(out, &m.Devices[i])
		}
	}
	return out
}

// HasFlowDevice reports whether a flow measuring device covers exactly the
// vent's box.
func (m *Model) HasFlowDevice(v *Vent) bool {
	for _, d := range m.FlowDevices() {
		if geom.DimensionsMatch(v.Dimensions, d.Dimensions) {
			return true
		}
	}
	return false
}

// flowVents returns the distinct flow vents accepted by keep. Vents split
// across mesh boundaries share an id and box and are counted once.
func (m *Model) flowVents(keep func(*Surf) bool) []*Vent {
	var out []*Vent
	for _, v := range m.Vents() {
		if !m.VentHasFlow(v) {
			continue
		}
		s, ok := m.Surface(v.Surface)
		if !ok || !keep(s) {
			continue
		}
		dup := false
		for _, seen := range out {
			if seen.ID == v.ID && geom.DimensionsMatch(seen.Dimensions, v.Dimensions) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

// Supplies returns the distinct vents blowing into the domain.
func (m *Model) Supplies() []*Vent {
	return m.flowVents((*Surf).IsSupply)
}

// Extracts returns the distinct vents drawing out of the domain.
func (m *Model) Extracts() []*Vent {
	return m.flowVents((*Surf).IsExtract)
}

// VentFlowRate returns the magnitude of the vent's volume flow in m³/s.
// A velocity boundary is converted using the vent's face area.
func (m *Model) VentFlowRate(v *Vent) float64 {
	s, ok := m.Surface(v.Surface)
	if !ok {
		return 0
	}
	switch {
	case s.VolumeFlow != nil:
		return math.Abs(*s.VolumeFlow)
	case s.Vel != nil:
		return math.Abs(*s.Vel) * v.FaceArea()
	}
	return 0
}

func (m *Model) devcProp(d *Devc) (*Prop, bool) {
	return m.Prop(d.PropID)
}

// DevcIsSprinkler reports whether the device's property is a sprinkler link.
func (m *Model) DevcIsSprinkler(d *Devc) bool {
	p, ok := m.devcProp(d)
	return ok && p.IsSprinkler()
}

// DevcIsThermalDetector reports whether the device's property is a heat
// detector link.
func (m *Model) DevcIsThermalDetector(d *Devc) bool {
	p, ok := m.devcProp(d)
	return ok && p.IsThermalDetector()
}

// DevcIsSmokeDetector reports whether the device's property is a smoke
// detector chamber.
func (m *Model) DevcIsSmokeDetector(d *Devc) bool {
	p, ok := m.devcProp(d)
	return ok && p.IsSmokeDetector()
}

// Sprinklers returns the sprinkler devices.
func (m *Model) Sprinklers() []*Devc { return m.devicesWhere(m.DevcIsSprinkler) }

// SmokeDetectors returns the smoke detector devices.
func (m *Model) SmokeDetectors() []*Devc { return m.devicesWhere(m.DevcIsSmokeDetector) }

// Detectors returns sprinklers, heat detectors and smoke detectors in
// device order.
func (m *Model) Detectors() []*Devc {
	return m.devicesWhere(func(d *Devc) bool {
		return m.DevcIsSprinkler(d) || m.DevcIsSmokeDetector(d) || m.DevcIsThermalDetector(d)
	})
}

func (m *Model) devicesWhere(keep func(*Devc) bool) []*Devc {
	var out []*Devc
	for i := range m.Devices {
		if keep(&m.Devices[i]) {
			out = append(out, &m.Devices[i])
		}
	}
	return out
}

// SimulationLength returns End - Begin, or 0 when no time is set.
func (m *Model) SimulationLength() float64 {
	if m.Time == nil {
		return 0
	}
	return m.Time.End - m.Time.Begin
}

// MaximumVisibility returns visibility_factor / ec_ll in m. The second
// result is false when either value is unset or zero.
func (m *Model) MaximumVisibility() (float64, bool) {
	if m.VisibilityFactor == nil || m.EcLL == nil || *m.VisibilityFactor == 0 || *m.EcLL == 0 {
		return 0, false
	}
	return *m.VisibilityFactor / *m.EcLL, true
}

// MeshBoxes returns the dimensions of every mesh.
func (m *Model) MeshBoxes() []geom.Xb {
	out := make([]geom.Xb, len(m.Meshes))
	for i := range m.Meshes {
		out[i] = m.Meshes[i].Dimensions
	}
	return out
}

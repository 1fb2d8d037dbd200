package fds

import (
	"github.com/smoke-cloud/fds-inspect-go/pkg/combustion"
	"github.com/smoke-cloud/fds-inspect-go/pkg/geom"
)

// Model is the root of an FDS input.
type Model struct {
	Chid             string   `json:"chid" yaml:"chid"`
	EcLL             *float64 `json:"ec_ll,omitempty" yaml:"ec_ll,omitempty"`
	VisibilityFactor *float64 `json:"visibility_factor,omitempty" yaml:"visibility_factor,omitempty"`
	Dump             Dump     `json:"dump" yaml:"dump"`
	Time             *Time    `json:"time,omitempty" yaml:"time,omitempty"`
	Surfaces         []Surf   `json:"surfaces" yaml:"surfaces"`
	Meshes           []Mesh   `json:"meshes" yaml:"meshes"`
	Devices          []Devc   `json:"devices" yaml:"devices"`
	Hvac             []Hvac   `json:"hvac" yaml:"hvac"`
	Props            []Prop   `json:"props" yaml:"props"`
	Parts            []Part   `json:"parts" yaml:"parts"`
	Reacs            []Reac   `json:"reacs" yaml:"reacs"`
}

// Dump holds output cadence parameters.
type Dump struct {
	NFrames *int `json:"nframes,omitempty" yaml:"nframes,omitempty"`
}

// Time holds the simulation time bounds in seconds.
type Time struct {
	Begin float64 `json:"begin" yaml:"begin"`
	End   float64 `json:"end" yaml:"end"`
}

// Resolution is the cell size of a mesh.
type Resolution struct {
	Dx float64 `json:"dx" yaml:"dx"`
	Dy float64 `json:"dy" yaml:"dy"`
	Dz float64 `json:"dz" yaml:"dz"`
}

// IJK is the number of cells of a mesh on each axis.
type IJK struct {
	I int `json:"i" yaml:"i"`
	J int `json:"j" yaml:"j"`
	K int `json:"k" yaml:"k"`
}

// Cells returns I*J*K.
func (n IJK) Cells() int { return n.I * n.J * n.K }

// Mesh is a rectilinear computational domain and the geometry inside it.
type Mesh struct {
	Index      int        `json:"index" yaml:"index"`
	ID         string     `json:"id" yaml:"id"`
	IJK        IJK        `json:"ijk" yaml:"ijk"`
	Dimensions geom.Xb    `json:"dimensions" yaml:"dimensions"`
	CellSizes  Resolution `json:"cell_sizes" yaml:"cell_sizes"`
	Vents      []Vent     `json:"vents" yaml:"vents"`
	Obsts      []Obst     `json:"obsts" yaml:"obsts"`
}

// CellFootprint returns the horizontal area of one cell.
func (m *Mesh) CellFootprint() float64 {
	if m.IJK.I == 0 || m.IJK.J == 0 {
		return 0
	}
	return m.Dimensions.Area(geom.AxisZ) / float64(m.IJK.I*m.IJK.J)
}

// CellHeight returns the vertical size of one cell.
func (m *Mesh) CellHeight() float64 {
	if m.IJK.K == 0 {
		return 0
	}
	return m.Dimensions.Span(geom.AxisZ).Length() / float64(m.IJK.K)
}

// Vent is a planar patch carrying a boundary condition.
type Vent struct {
	Index      int     `json:"index" yaml:"index"`
	ID         string  `json:"id" yaml:"id"`
	Surface    string  `json:"surface,omitempty" yaml:"surface,omitempty"`
	DevcID     string  `json:"devc_id,omitempty" yaml:"devc_id,omitempty"`
	CtrlID     string  `json:"ctrl_id,omitempty" yaml:"ctrl_id,omitempty"`
	Dimensions geom.Xb `json:"dimensions" yaml:"dimensions"`
	// Bounds are the cell indices the vent was snapped to.
	Bounds geom.IjkBounds `json:"bounds" yaml:"bounds"`
	// Area is the face area as computed by FDS after snapping to the grid.
	Area float64 `json:"fds_area" yaml:"fds_area"`
}

// FaceArea returns Area, or the area of the vent box's face when FDS did
// not record one.
func (v *Vent) FaceArea() float64 {
	if v.Area > 0 {
		return v.Area
	}
	d := v.Dimensions
	switch {
	case d.Flat(geom.AxisX):
		return d.Area(geom.AxisX)
	case d.Flat(geom.AxisY):
		return d.Area(geom.AxisY)
	default:
		return d.Area(geom.AxisZ)
	}
}

// ObstSurfaces names the surface on each face of an obstruction.
type ObstSurfaces struct {
	XMin string `json:"x_min" yaml:"x_min"`
	XMax string `json:"x_max" yaml:"x_max"`
	YMin string `json:"y_min" yaml:"y_min"`
	YMax string `json:"y_max" yaml:"y_max"`
	ZMin string `json:"z_min" yaml:"z_min"`
	ZMax string `json:"z_max" yaml:"z_max"`
}

// IDs returns the face surface ids in x_min..z_max order.
func (s ObstSurfaces) IDs() []string {
	return []string{s.XMin, s.XMax, s.YMin, s.YMax, s.ZMin, s.ZMax}
}

// AxisAreas are the face areas normal to each axis.
type AxisAreas struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Obst is a solid obstruction.
type Obst struct {
	Index      int            `json:"index" yaml:"index"`
	ID         string         `json:"id" yaml:"id"`
	Surfaces   *ObstSurfaces  `json:"surfaces,omitempty" yaml:"surfaces,omitempty"`
	DevcID     string         `json:"devc_id,omitempty" yaml:"devc_id,omitempty"`
	CtrlID     string         `json:"ctrl_id,omitempty" yaml:"ctrl_id,omitempty"`
	Dimensions geom.Xb        `json:"dimensions" yaml:"dimensions"`
	Bounds     geom.IjkBounds `json:"bounds" yaml:"bounds"`
	Area       AxisAreas      `json:"fds_area" yaml:"fds_area"`
}

// TopArea returns the area of the top face, falling back to the box's
// footprint when FDS did not record one.
func (o *Obst) TopArea() float64 {
	if o.Area.Z > 0 {
		return o.Area.Z
	}
	return o.Dimensions.Area(geom.AxisZ)
}

// Hvac links a duct node to vents.
type Hvac struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	VentID  string `json:"vent_id,omitempty" yaml:"vent_id,omitempty"`
	Vent2ID string `json:"vent2_id,omitempty" yaml:"vent2_id,omitempty"`
}

// LinksVent reports whether the node references the vent by id.
func (h Hvac) LinksVent(v *Vent) bool {
	return v.ID != "" && (h.VentID == v.ID || h.Vent2ID == v.ID)
}

// Part is a Lagrangian particle class.
type Part struct {
	Index          int     `json:"index" yaml:"index"`
	ID             string  `json:"id" yaml:"id"`
	SpecID         string  `json:"spec_id,omitempty" yaml:"spec_id,omitempty"`
	DevcID         string  `json:"devc_id,omitempty" yaml:"devc_id,omitempty"`
	CtrlID         string  `json:"ctrl_id,omitempty" yaml:"ctrl_id,omitempty"`
	SurfID         string  `json:"surf_id,omitempty" yaml:"surf_id,omitempty"`
	PropID         string  `json:"prop_id,omitempty" yaml:"prop_id,omitempty"`
	Diameter       string  `json:"diameter,omitempty" yaml:"diameter,omitempty"`
	Monodisperse   bool    `json:"monodisperse" yaml:"monodisperse"`
	Age            float64 `json:"age" yaml:"age"`
	SamplingFactor float64 `json:"sampling_factor" yaml:"sampling_factor"`
}

// Reac holds the combustion reaction.
type Reac struct {
	ID            string   `json:"id,omitempty" yaml:"id,omitempty"`
	Fuel          string   `json:"fuel,omitempty" yaml:"fuel,omitempty"`
	C             *float64 `json:"c,omitempty" yaml:"c,omitempty"`
	H             *float64 `json:"h,omitempty" yaml:"h,omitempty"`
	O             *float64 `json:"o,omitempty" yaml:"o,omitempty"`
	N             *float64 `json:"n,omitempty" yaml:"n,omitempty"`
	SootYield     *float64 `json:"soot_yield,omitempty" yaml:"soot_yield,omitempty"`
	COYield       *float64 `json:"co_yield,omitempty" yaml:"co_yield,omitempty"`
	SootHFraction *float64 `json:"soot_h_fraction,omitempty" yaml:"soot_h_fraction,omitempty"`
	EPUMO2        *float64 `json:"epumo2,omitempty" yaml:"epumo2,omitempty"`
	// HeatOfCombustion is the value FDS derived, in kJ/kg.
	HeatOfCombustion float64 `json:"heat_of_combustion" yaml:"heat_of_combustion"`
}

// Stoichiometry returns the coefficients used by the heat of combustion
// calculation.
func (r *Reac) Stoichiometry() combustion.Stoichiometry {
	return combustion.Stoichiometry{
		C: r.C, H: r.H, O: r.O, N: r.N,
		SootYield:     r.SootYield,
		COYield:       r.COYield,
		SootHFraction: r.SootHFraction,
		EPUMO2:        r.EPUMO2,
	}
}

// CalculatedHeatOfCombustion returns the stoichiometric heat of combustion
// in kJ/kg.
func (r *Reac) CalculatedHeatOfCombustion() float64 {
	return combustion.HeatOfCombustion(r.Stoichiometry())
}

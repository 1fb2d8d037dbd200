package geom

import (
	"fmt"
	"math"
	"strings"
)

// Epsilon is the overlap margin below which two spans are considered to be
// touching rather than overlapping.
const Epsilon = 1e-14

// Axis identifies one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// ParseAxis parses "x", "y" or "z" (case-insensitive).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// Xyz is a point in model coordinates.
type Xyz struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Xb is an axis-aligned box given by its bounds on each axis.
type Xb struct {
	X1 float64 `json:"x1" yaml:"x1"`
	X2 float64 `json:"x2" yaml:"x2"`
	Y1 float64 `json:"y1" yaml:"y1"`
	Y2 float64 `json:"y2" yaml:"y2"`
	Z1 float64 `json:"z1" yaml:"z1"`
	Z2 float64 `json:"z2" yaml:"z2"`
}

func (b Xb) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g]x[%g,%g]", b.X1, b.X2, b.Y1, b.Y2, b.Z1, b.Z2)
}

// WellOrdered reports whether the lower bound is strictly below the upper
// bound on every axis.
func (b Xb) WellOrdered() bool {
	return b.X1 < b.X2 && b.Y1 < b.Y2 && b.Z1 < b.Z2
}

// Span returns the box's projection onto an axis.
func (b Xb) Span(axis Axis) Interval {
	switch axis {
	case AxisX:
		return Interval{Start: b.X1, End: b.X2}
	case AxisY:
		return Interval{Start: b.Y1, End: b.Y2}
	default:
		return Interval{Start: b.Z1, End: b.Z2}
	}
}

// Area returns the area of the face normal to the given axis.
func (b Xb) Area(axis Axis) float64 {
	switch axis {
	case AxisX:
		return b.Span(AxisY).Length() * b.Span(AxisZ).Length()
	case AxisY:
		return b.Span(AxisX).Length() * b.Span(AxisZ).Length()
	default:
		return b.Span(AxisX).Length() * b.Span(AxisY).Length()
	}
}

// Volume returns the volume of the box.
func (b Xb) Volume() float64 {
	return b.Span(AxisX).Length() * b.Span(AxisY).Length() * b.Span(AxisZ).Length()
}

// Flat reports whether the box has zero thickness along the given axis.
func (b Xb) Flat(axis Axis) bool {
	return b.Span(axis).Length() == 0
}

// Contains reports whether p lies inside the box, boundaries included.
func (b Xb) Contains(p Xyz) bool {
	return b.ContainsXY(p.X, p.Y) && p.Z >= b.Z1 && p.Z <= b.Z2
}

// ContainsXY reports whether (x, y) lies within the horizontal footprint.
func (b Xb) ContainsXY(x, y float64) bool {
	return x >= b.X1 && x <= b.X2 && y >= b.Y1 && y <= b.Y2
}

// Intersect reports whether two boxes overlap on all three axes by more
// than Epsilon. Boxes touching at a face do not intersect.
func Intersect(a, b Xb) bool {
	return overlaps(a.X1, a.X2, b.X1, b.X2) &&
		overlaps(a.Y1, a.Y2, b.Y1, b.Y2) &&
		overlaps(a.Z1, a.Z2, b.Z1, b.Z2)
}

// OverlapXY reports whether the horizontal footprints of two boxes overlap.
func OverlapXY(a, b Xb) bool {
	return overlaps(a.X1, a.X2, b.X1, b.X2) && overlaps(a.Y1, a.Y2, b.Y1, b.Y2)
}

func overlaps(a1, a2, b1, b2 float64) bool {
	return a2-b1 > Epsilon && b2-a1 > Epsilon
}

// DimensionsMatch reports whether two boxes have exactly the same bounds.
func DimensionsMatch(a, b Xb) bool {
	return a == b
}

// Bounding returns the smallest box enclosing all of boxes. The second
// result is false when boxes is empty.
func Bounding(boxes []Xb) (Xb, bool) {
	if len(boxes) == 0 {
		return Xb{}, false
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out.X1 = math.Min(out.X1, b.X1)
		out.X2 = math.Max(out.X2, b.X2)
		out.Y1 = math.Min(out.Y1, b.Y1)
		out.Y2 = math.Max(out.Y2, b.Y2)
		out.Z1 = math.Min(out.Z1, b.Z1)
		out.Z2 = math.Max(out.Z2, b.Z2)
	}
	return out, true
}

// Interval is a closed span [Start, End] on one axis.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Length returns End - Start, or 0 for an inverted interval.
func (i Interval) Length() float64 {
	if i.End < i.Start {
		return 0
	}
	return i.End - i.Start
}

// Contains reports whether v lies in the interval, bounds included.
func (i Interval) Contains(v float64) bool {
	return v >= i.Start && v <= i.End
}

// IjkBounds are inclusive-exclusive cell index bounds on the mesh grid.
type IjkBounds struct {
	IMin int `json:"i_min" yaml:"i_min"`
	IMax int `json:"i_max" yaml:"i_max"`
	JMin int `json:"j_min" yaml:"j_min"`
	JMax int `json:"j_max" yaml:"j_max"`
	KMin int `json:"k_min" yaml:"k_min"`
	KMax int `json:"k_max" yaml:"k_max"`
}

// Flat reports whether the bounds have zero cell thickness on an axis.
func (b IjkBounds) Flat(axis Axis) bool {
	switch axis {
	case AxisX:
		return b.IMin == b.IMax
	case AxisY:
		return b.JMin == b.JMax
	default:
		return b.KMin == b.KMax
	}
}

// FlatAny reports whether the bounds are flat on any of the given axes.
func (b IjkBounds) FlatAny(axes ...Axis) bool {
	for _, a := range axes {
		if b.Flat(a) {
			return true
		}
	}
	return false
}

// Package sweep decomposes the geometry of a model along an axis into
// segments of constant open area, and the floor plan at a chosen elevation
// into regions of constant clear height.
package sweep

import (
	"math"
	"sort"

	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/geom"
)

// Segment is a span along an axis with a constant net open area.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Area  float64 `json:"area"`
}

// Extent is the sequence of sorted, non-overlapping segments along an axis.
type Extent struct {
	Axis     geom.Axis
	Segments []Segment
}

// Options control Extents.
type Options struct {
	// ExcludeObsts sweeps the mesh volumes only.
	ExcludeObsts bool
}

type element struct {
	value float64
	area  float64
}

// obstArea returns the face area FDS recorded for the obstruction, or the
// area of its box when none was recorded.
func obstArea(axis geom.Axis, o *fds.Obst) float64 {
	var a float64
	switch axis {
	case geom.AxisX:
		a = o.Area.X
	case geom.AxisY:
		a = o.Area.Y
	default:
		a = o.Area.Z
	}
	if a > 0 {
		return a
	}
	return o.Dimensions.Area(axis)
}

func areaEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// Extents sweeps along axis. Each mesh opens its cross-section area at the
// start of its span and closes it at the end; each obstruction closes its
// face area over its span. The running sum gives the net open area between
// consecutive coordinates, and neighbouring segments with equal area are
// merged.
func Extents(axis geom.Axis, meshes []fds.Mesh, opts Options) Extent {
	var elems []element
	for i := range meshes {
		mesh := &meshes[i]
		span := mesh.Dimensions.Span(axis)
		area := mesh.Dimensions.Area(axis)
		if !opts.ExcludeObsts {
			for j := range mesh.Obsts {
				o := &mesh.Obsts[j]
				os := o.Dimensions.Span(axis)
				oa := obstArea(axis, o)
				elems = append(elems, element{os.Start, -oa}, element{os.End, oa})
			}
		}
		elems = append(elems, element{span.Start, area}, element{span.End, -area})
	}
	sort.SliceStable(elems, func(a, b int) bool { return elems[a].value < elems[b].value })

	merged := make([]element, 0, len(elems))
	for _, e := range elems {
		if n := len(merged); n > 0 && merged[n-1].value == e.value {
			merged[n-1].area += e.area
			continue
		}
		merged = append(merged, e)
	}

	out := Extent{Axis: axis}
	var current float64
	for i := 0; i+1 < len(merged); i++ {
		current += merged[i].area
		seg := Segment{Start: merged[i].value, End: merged[i+1].value, Area: current}
		if n := len(out.Segments); n > 0 && areaEqual(out.Segments[n-1].Area, seg.Area) {
			out.Segments[n-1].End = seg.End
			continue
		}
		out.Segments = append(out.Segments, seg)
	}
	return out
}

// GreatestExtent returns the first segment with the largest open area.
func GreatestExtent(axis geom.Axis, meshes []fds.Mesh) (Segment, bool) {
	ext := Extents(axis, meshes, Options{})
	if len(ext.Segments) == 0 {
		return Segment{}, false
	}
	best := ext.Segments[0]
	for _, s := range ext.Segments[1:] {
		if s.Area > best.Area {
			best = s
		}
	}
	return best, true
}

// BoundingExtent returns the box enclosing all meshes.
func BoundingExtent(meshes []fds.Mesh) (geom.Xb, bool) {
	boxes := make([]geom.Xb, len(meshes))
	for i := range meshes {
		boxes[i] = meshes[i].Dimensions
	}
	return geom.Bounding(boxes)
}

// ColumnSegment is a span of a vertical (or other axis) column that is
// either a mesh volume (Gas) or an obstruction.
type ColumnSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Gas   bool    `json:"gas"`
}

// ColumnExtents lists, for the column through (x, y), the span of every
// mesh containing it followed by the spans of that mesh's obstructions
// that contain it.
func ColumnExtents(axis geom.Axis, meshes []fds.Mesh, x, y float64) []ColumnSegment {
	var out []ColumnSegment
	for i := range meshes {
		mesh := &meshes[i]
		if !mesh.Dimensions.ContainsXY(x, y) {
			continue
		}
		span := mesh.Dimensions.Span(axis)
		out = append(out, ColumnSegment{Start: span.Start, End: span.End, Gas: true})
		for j := range mesh.Obsts {
			o := &mesh.Obsts[j]
			if !o.Dimensions.ContainsXY(x, y) {
				continue
			}
			os := o.Dimensions.Span(axis)
			out = append(out, ColumnSegment{Start: os.Start, End: os.End})
		}
	}
	return out
}

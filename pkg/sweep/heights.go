package sweep

import (
	"math"
	"sort"

	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/geom"
)

// heightScale sets the precision (1 µm) at which clear heights are grouped.
const heightScale = 1e6

// HeightArea is one bar of the ceiling height histogram.
type HeightArea struct {
	Height float64 `json:"height"`
	Area   float64 `json:"area"`
}

// CellMap records, for each (i, j) column of a mesh, the vertical cell
// index intervals occupied by obstructions.
type CellMap struct {
	Mesh  *fds.Mesh
	cells [][]geom.Interval
}

// NewCellMap creates an empty map over the mesh's columns.
func NewCellMap(mesh *fds.Mesh) *CellMap {
	n := mesh.IJK.I * mesh.IJK.J
	if n < 0 {
		n = 0
	}
	return &CellMap{Mesh: mesh, cells: make([][]geom.Interval, n)}
}

func (c *CellMap) index(i, j int) (int, bool) {
	if i < 0 || j < 0 || i >= c.Mesh.IJK.I || j >= c.Mesh.IJK.J {
		return 0, false
	}
	return i*c.Mesh.IJK.J + j, true
}

// Add records a k interval against column (i, j). Columns outside the mesh
// are ignored.
func (c *CellMap) Add(i, j int, k geom.Interval) {
	if n, ok := c.index(i, j); ok {
		c.cells[n] = append(c.cells[n], k)
	}
}

// At returns the intervals recorded for column (i, j).
func (c *CellMap) At(i, j int) []geom.Interval {
	if n, ok := c.index(i, j); ok {
		return c.cells[n]
	}
	return nil
}

// Len returns the number of columns.
func (c *CellMap) Len() int { return len(c.cells) }

// RegionExtents builds a CellMap for each mesh whose vertical span
// contains elevation. Every obstruction that is not flat in x or y marks
// its [k_min, k_max) against each column it covers.
func RegionExtents(meshes []fds.Mesh, elevation float64) []*CellMap {
	var out []*CellMap
	for i := range meshes {
		mesh := &meshes[i]
		if !mesh.Dimensions.Span(geom.AxisZ).Contains(elevation) {
			continue
		}
		cm := NewCellMap(mesh)
		for j := range mesh.Obsts {
			b := mesh.Obsts[j].Bounds
			if b.FlatAny(geom.AxisX, geom.AxisY) {
				continue
			}
			k := geom.Interval{Start: float64(b.KMin), End: float64(b.KMax)}
			for ci := max(b.IMin, 0); ci < min(b.IMax, mesh.IJK.I); ci++ {
				for cj := max(b.JMin, 0); cj < min(b.JMax, mesh.IJK.J); cj++ {
					cm.Add(ci, cj, k)
				}
			}
		}
		out = append(out, cm)
	}
	return out
}

// unionLength returns the measure of the union of intervals clipped to
// [lo, hi]. Overlapping and nested intervals are counted once.
func unionLength(intervals []geom.Interval, lo, hi float64) float64 {
	clipped := make([]geom.Interval, 0, len(intervals))
	for _, iv := range intervals {
		s, e := math.Max(iv.Start, lo), math.Min(iv.End, hi)
		if e > s {
			clipped = append(clipped, geom.Interval{Start: s, End: e})
		}
	}
	sort.Slice(clipped, func(a, b int) bool { return clipped[a].Start < clipped[b].Start })

	var total float64
	var cur geom.Interval
	open := false
	for _, iv := range clipped {
		if open && iv.Start <= cur.End {
			cur.End = math.Max(cur.End, iv.End)
			continue
		}
		if open {
			total += cur.Length()
		}
		cur, open = iv, true
	}
	if open {
		total += cur.Length()
	}
	return total
}

func roundHeight(h float64) float64 {
	return math.Round(h*heightScale) / heightScale
}

// ClearHeights groups the columns of a CellMap by clear height: the
// mesh's vertical span less the union of the column's solid intervals.
// Each column contributes one cell footprint of area, so the areas sum to
// the mesh's horizontal area.
func ClearHeights(cm *CellMap) []HeightArea {
	mesh := cm.Mesh
	dz := mesh.CellHeight()
	footprint := mesh.CellFootprint()
	k := float64(mesh.IJK.K)

	areas := make(map[float64]float64)
	for n := range cm.cells {
		solid := unionLength(cm.cells[n], 0, k)
		h := roundHeight((k - solid) * dz)
		areas[h] += footprint
	}
	return sortHistogram(areas)
}

func sortHistogram(areas map[float64]float64) []HeightArea {
	out := make([]HeightArea, 0, len(areas))
	for h, a := range areas {
		out = append(out, HeightArea{Height: h, Area: a})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Area != out[b].Area {
			return out[a].Area > out[b].Area
		}
		return out[a].Height < out[b].Height
	})
	return out
}

// CeilingHeights samples the floor plan at the midpoint of the largest
// horizontal layer and returns the clear height histogram across all
// meshes at that elevation, largest area first.
func CeilingHeights(meshes []fds.Mesh) []HeightArea {
	g, ok := GreatestExtent(geom.AxisZ, meshes)
	if !ok {
		return nil
	}
	elevation := (g.Start + g.End) / 2

	areas := make(map[float64]float64)
	for _, cm := range RegionExtents(meshes, elevation) {
		for _, ha := range ClearHeights(cm) {
			areas[ha.Height] += ha.Area
		}
	}
	return sortHistogram(areas)
}

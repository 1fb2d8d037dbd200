package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/geom"
)

func box(x1, x2, y1, y2, z1, z2 float64) geom.Xb {
	return geom.Xb{X1: x1, X2: x2, Y1: y1, Y2: y2, Z1: z1, Z2: z2}
}

func mesh(id string, dims geom.Xb, i, j, k int, obsts ...fds.Obst) fds.Mesh {
	return fds.Mesh{ID: id, Dimensions: dims, IJK: fds.IJK{I: i, J: j, K: k}, Obsts: obsts}
}

func assertSortedDisjoint(t *testing.T, segs []Segment) {
	t.Helper()
	for i, s := range segs {
		assert.Less(t, s.Start, s.End, "segment %d must have positive length", i)
		if i > 0 {
			assert.GreaterOrEqual(t, s.Start, segs[i-1].End, "segments %d and %d overlap", i-1, i)
		}
	}
}

func TestExtentsSingleMesh(t *testing.T) {
	ext := Extents(geom.AxisZ, []fds.Mesh{mesh("M", box(0, 10, 0, 10, 0, 3), 10, 10, 6)}, Options{})
	require.Len(t, ext.Segments, 1)
	assert.Equal(t, Segment{Start: 0, End: 3, Area: 100}, ext.Segments[0])
}

func TestExtentsObstructionSubtractsArea(t *testing.T) {
	o := fds.Obst{ID: "table", Dimensions: box(0, 2, 0, 2, 0, 1), Area: fds.AxisAreas{Z: 4}}
	meshes := []fds.Mesh{mesh("M", box(0, 10, 0, 10, 0, 3), 10, 10, 6, o)}

	ext := Extents(geom.AxisZ, meshes, Options{})
	assert.Equal(t, []Segment{{0, 1, 96}, {1, 3, 100}}, ext.Segments)
	assertSortedDisjoint(t, ext.Segments)

	ext = Extents(geom.AxisZ, meshes, Options{ExcludeObsts: true})
	assert.Equal(t, []Segment{{0, 3, 100}}, ext.Segments)
}

func TestExtentsMergesEqualAreas(t *testing.T) {
	meshes := []fds.Mesh{
		mesh("low", box(0, 10, 0, 10, 0, 3), 10, 10, 6),
		mesh("high", box(0, 10, 0, 10, 3, 6), 10, 10, 6),
	}
	ext := Extents(geom.AxisZ, meshes, Options{})
	assert.Equal(t, []Segment{{0, 6, 100}}, ext.Segments)
}

func TestExtentsAlongX(t *testing.T) {
	meshes := []fds.Mesh{
		mesh("a", box(0, 5, 0, 2, 0, 3), 5, 2, 3),
		mesh("b", box(5, 10, 0, 4, 0, 3), 5, 4, 3),
	}
	ext := Extents(geom.AxisX, meshes, Options{})
	assert.Equal(t, geom.AxisX, ext.Axis)
	assert.Equal(t, []Segment{{0, 5, 6}, {5, 10, 12}}, ext.Segments)
}

func TestGreatestExtent(t *testing.T) {
	meshes := []fds.Mesh{
		mesh("tall", box(0, 10, 0, 10, 0, 3), 10, 10, 6),
		mesh("short", box(10, 15, 0, 10, 0, 2), 5, 10, 4),
	}
	g, ok := GreatestExtent(geom.AxisZ, meshes)
	require.True(t, ok)
	assert.Equal(t, Segment{Start: 0, End: 2, Area: 150}, g)

	_, ok = GreatestExtent(geom.AxisZ, nil)
	assert.False(t, ok)
}

func TestBoundingExtent(t *testing.T) {
	_, ok := BoundingExtent(nil)
	assert.False(t, ok)

	b, ok := BoundingExtent([]fds.Mesh{
		mesh("a", box(0, 5, 0, 2, 0, 3), 1, 1, 1),
		mesh("b", box(5, 10, -1, 4, 0, 6), 1, 1, 1),
	})
	require.True(t, ok)
	assert.Equal(t, box(0, 10, -1, 4, 0, 6), b)
}

func TestClearHeightsUnion(t *testing.T) {
	m := mesh("M", box(0, 10, 0, 10, 0, 5), 10, 10, 10)
	cm := NewCellMap(&m)

	// overlapping and nested intervals in the same column count once
	cm.Add(0, 0, geom.Interval{Start: 8, End: 10})
	cm.Add(0, 0, geom.Interval{Start: 9, End: 10})
	cm.Add(0, 0, geom.Interval{Start: 6, End: 9})
	// disjoint intervals add up
	cm.Add(1, 0, geom.Interval{Start: 0, End: 2})
	cm.Add(1, 0, geom.Interval{Start: 4, End: 10})
	// outside the mesh, ignored
	cm.Add(10, 0, geom.Interval{Start: 0, End: 10})
	cm.Add(-1, 0, geom.Interval{Start: 0, End: 10})

	assert.Len(t, cm.At(0, 0), 3)
	assert.Nil(t, cm.At(10, 0))

	got := ClearHeights(cm)
	assert.Equal(t, []HeightArea{{Height: 5, Area: 98}, {Height: 1, Area: 1}, {Height: 3, Area: 1}}, got)
}

func TestClearHeightsClipsToMesh(t *testing.T) {
	m := mesh("M", box(0, 2, 0, 1, 0, 2), 2, 1, 4)
	cm := NewCellMap(&m)
	cm.Add(0, 0, geom.Interval{Start: -3, End: 1})
	cm.Add(1, 0, geom.Interval{Start: 3, End: 12})

	got := ClearHeights(cm)
	require.Len(t, got, 1)
	assert.InDelta(t, 1.5, got[0].Height, 1e-9)
	assert.InDelta(t, 2, got[0].Area, 1e-9)
}

func TestRegionExtents(t *testing.T) {
	soffit := fds.Obst{ID: "soffit", Bounds: geom.IjkBounds{IMin: 0, IMax: 5, JMin: 0, JMax: 10, KMin: 8, KMax: 10}}
	flat := fds.Obst{ID: "plate", Bounds: geom.IjkBounds{IMin: 5, IMax: 5, JMin: 0, JMax: 10, KMin: 0, KMax: 10}}
	overhang := fds.Obst{ID: "overhang", Bounds: geom.IjkBounds{IMin: 8, IMax: 14, JMin: 0, JMax: 1, KMin: 9, KMax: 10}}
	meshes := []fds.Mesh{
		mesh("ground", box(0, 10, 0, 10, 0, 5), 10, 10, 10, soffit, flat, overhang),
		mesh("upper", box(0, 10, 0, 10, 5, 10), 10, 10, 10),
	}

	maps := RegionExtents(meshes, 2.5)
	require.Len(t, maps, 1)
	cm := maps[0]
	assert.Equal(t, "ground", cm.Mesh.ID)
	assert.Equal(t, 100, cm.Len())
	assert.Len(t, cm.At(0, 0), 1)
	assert.Empty(t, cm.At(5, 0), "flat obstruction must be skipped")
	assert.Len(t, cm.At(9, 0), 1, "overhang is clipped to the mesh")

	assert.Len(t, RegionExtents(meshes, 5), 2, "a shared boundary belongs to both meshes")
}

func TestCeilingHeights(t *testing.T) {
	soffit := fds.Obst{
		ID:         "soffit",
		Dimensions: box(0, 10, 0, 5, 4, 5),
		Area:       fds.AxisAreas{Z: 50},
		Bounds:     geom.IjkBounds{IMin: 0, IMax: 10, JMin: 0, JMax: 5, KMin: 8, KMax: 10},
	}
	meshes := []fds.Mesh{
		mesh("hall", box(0, 10, 0, 10, 0, 5), 10, 10, 10, soffit),
		mesh("annex", box(10, 20, 0, 10, 0, 3), 10, 10, 6),
	}

	got := CeilingHeights(meshes)
	require.Len(t, got, 3)
	assert.InDelta(t, 3, got[0].Height, 1e-9)
	assert.InDelta(t, 100, got[0].Area, 1e-9)
	assert.InDelta(t, 4, got[1].Height, 1e-9)
	assert.InDelta(t, 5, got[2].Height, 1e-9)

	var total float64
	for i, h := range got {
		total += h.Area
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Area, h.Area)
		}
	}
	assert.InDelta(t, 200, total, 1e-9, "areas must sum to the sampled floor area")
}

func TestCeilingHeightsEmpty(t *testing.T) {
	assert.Nil(t, CeilingHeights(nil))
}

func TestColumnExtents(t *testing.T) {
	beam := fds.Obst{ID: "beam", Dimensions: box(0, 10, 4, 6, 2.5, 3)}
	meshes := []fds.Mesh{
		mesh("a", box(0, 10, 0, 10, 0, 3), 1, 1, 1, beam),
		mesh("b", box(20, 30, 0, 10, 0, 3), 1, 1, 1),
	}

	got := ColumnExtents(geom.AxisZ, meshes, 5, 5)
	assert.Equal(t, []ColumnSegment{{0, 3, true}, {2.5, 3, false}}, got)

	got = ColumnExtents(geom.AxisZ, meshes, 5, 1)
	assert.Equal(t, []ColumnSegment{{0, 3, true}}, got)

	assert.Empty(t, ColumnExtents(geom.AxisZ, meshes, 15, 5))
}

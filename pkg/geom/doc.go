// Package geom provides the axis-aligned geometry used throughout the FDS
// model: boxes in metres (Xb), points (Xyz), integer cell bounds (IjkBounds)
// and one-dimensional intervals.
//
// # Intersection
//
// Two boxes intersect only when all three axis projections overlap by more
// than Epsilon. Boxes that share a face, as adjacent meshes usually do, do
// not intersect. The tolerance absorbs the rounding that upstream tools
// introduce when snapping geometry to the grid.
package geom

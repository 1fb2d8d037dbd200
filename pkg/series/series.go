// Package series holds named, unit-labelled (x, y) sample vectors used for
// both realised simulation output and synthesized reference curves.
package series

import "math"

// Point is a single sample.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DataVector is a named time series.
type DataVector struct {
	XName  string  `json:"x_name"`
	XUnit  string  `json:"x_unit"`
	YName  string  `json:"y_name"`
	YUnit  string  `json:"y_unit"`
	Values []Point `json:"values"`
}

// New creates an empty vector with the given axis labels.
func New(xName, xUnit, yName, yUnit string) *DataVector {
	return &DataVector{XName: xName, XUnit: xUnit, YName: yName, YUnit: yUnit}
}

// Append adds a sample.
func (d *DataVector) Append(x, y float64) {
	d.Values = append(d.Values, Point{X: x, Y: y})
}

// Len returns the number of samples.
func (d *DataVector) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Values)
}

// MaxY returns the largest y value, or NaN for an empty vector.
func (d *DataVector) MaxY() float64 {
	if d.Len() == 0 {
		return math.NaN()
	}
	m := d.Values[0].Y
	for _, p := range d.Values[1:] {
		if p.Y > m {
			m = p.Y
		}
	}
	return m
}

// LastX returns the x value of the final sample, or 0 if empty.
func (d *DataVector) LastX() float64 {
	if d.Len() == 0 {
		return 0
	}
	return d.Values[len(d.Values)-1].X
}

// Monotonic reports whether x strictly increases across samples.
func (d *DataVector) Monotonic() bool {
	for i := 1; i < d.Len(); i++ {
		if d.Values[i].X <= d.Values[i-1].X {
			return false
		}
	}
	return true
}

// Map returns a copy with f applied to every sample's y value. Samples for
// which f reports false are dropped.
func (d *DataVector) Map(yName, yUnit string, f func(p Point) (float64, bool)) *DataVector {
	out := New(d.XName, d.XUnit, yName, yUnit)
	for _, p := range d.Values {
		if y, ok := f(p); ok {
			out.Append(p.X, y)
		}
	}
	return out
}

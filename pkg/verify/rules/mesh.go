package rules

import (
	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/geom"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// MeshesOverlap fails for every pair of meshes whose volumes intersect.
// Meshes that only share a face do not intersect.
type MeshesOverlap struct {
	*verify.BaseRule
}

// NewMeshesOverlap creates the input.meshes.overlap rule.
func NewMeshesOverlap() *MeshesOverlap {
	return &MeshesOverlap{
		BaseRule: verify.NewBaseRule("input.meshes.overlap", "Meshes do not overlap", CategoryMesh, verify.StageInput),
	}
}

// CheckInput implements verify.InputChecker.
func (r *MeshesOverlap) CheckInput(m *fds.Model) []verify.Result {
	var results []verify.Result
	for i := range m.Meshes {
		for j := i + 1; j < len(m.Meshes); j++ {
			a, b := &m.Meshes[i], &m.Meshes[j]
			if geom.Intersect(a.Dimensions, b.Dimensions) {
				results = append(results, verify.Failuref("Mesh `%s` intersects with `%s`", a.ID, b.ID))
			}
		}
	}
	if len(results) == 0 {
		return []verify.Result{verify.NewSuccess("No Intersections")}
	}
	return results
}

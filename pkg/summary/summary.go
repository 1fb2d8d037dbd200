// Package summary aggregates a model into a flat statistics record.
package summary

import (
	"sort"

	"github.com/smoke-cloud/fds-inspect-go/pkg/combustion"
	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/sweep"
)

// InputSummary is the key information of an FDS input.
type InputSummary struct {
	Chid string `json:"chid"`
	// SimulationLength is the simulated time in s.
	SimulationLength float64 `json:"simulation_length"`
	// NBurners counts the vents and obstructions that release heat.
	NBurners int `json:"n_burners"`
	// TotalMaxHRR is the sum of burner peaks in W.
	TotalMaxHRR float64 `json:"total_max_hrr"`
	// HeatOfCombustionCalc is derived from the reaction coefficients, kJ/kg.
	HeatOfCombustionCalc float64 `json:"heat_of_combustion_calc"`
	// HeatOfCombustion is the value FDS reports, kJ/kg.
	HeatOfCombustion float64 `json:"heat_of_combustion"`
	// TotalSootProduction is the peak soot production in kg/s.
	TotalSootProduction             float64            `json:"total_soot_production"`
	NSprinklers                     int                `json:"n_sprinklers"`
	SprinklerActivationTemperatures []float64          `json:"sprinkler_activation_temperatures"`
	NSmokeDetectors                 int                `json:"n_smoke_detectors"`
	SmokeDetectorObscurations       []float64          `json:"smoke_detector_obscurations"`
	NExtractVents                   int                `json:"n_extract_vents"`
	TotalExtractRate                float64            `json:"total_extract_rate"`
	NSupplyVents                    int                `json:"n_supply_vents"`
	TotalSupplyRate                 float64            `json:"total_supply_rate"`
	NMeshes                         int                `json:"n_meshes"`
	NCells                          int                `json:"n_cells"`
	MeshResolutions                 []fds.Resolution   `json:"mesh_resolutions"`
	CeilingHeights                  []sweep.HeightArea `json:"ceiling_heights"`
}

// Summarise builds the summary of m. Without a reaction the combustion
// figures are zero.
func Summarise(m *fds.Model) InputSummary {
	s := InputSummary{
		Chid:             m.Chid,
		SimulationLength: m.SimulationLength(),
		NBurners:         len(m.Burners()),
		TotalMaxHRR:      m.TotalMaxHRR(),
		NMeshes:          len(m.Meshes),
		NCells:           CountCells(m.Meshes),
		CeilingHeights:   sweep.CeilingHeights(m.Meshes),
	}

	if r, ok := m.Reac(); ok {
		s.HeatOfCombustionCalc = r.CalculatedHeatOfCombustion()
		s.HeatOfCombustion = r.HeatOfCombustion
		var ys float64
		if r.SootYield != nil {
			ys = *r.SootYield
		}
		s.TotalSootProduction = combustion.SootProductionRate(ys, s.HeatOfCombustionCalc, s.TotalMaxHRR/1000)
	}

	for _, d := range m.Sprinklers() {
		s.NSprinklers++
		if p, ok := m.Prop(d.PropID); ok {
			s.SprinklerActivationTemperatures = append(s.SprinklerActivationTemperatures, p.ActivationTemperature)
		}
	}
	sort.Float64s(s.SprinklerActivationTemperatures)

	for _, d := range m.SmokeDetectors() {
		s.NSmokeDetectors++
		if p, ok := m.Prop(d.PropID); ok {
			s.SmokeDetectorObscurations = append(s.SmokeDetectorObscurations, p.ActivationObscuration)
		}
	}
	sort.Float64s(s.SmokeDetectorObscurations)

	for _, v := range m.Supplies() {
		s.NSupplyVents++
		s.TotalSupplyRate += m.VentFlowRate(v)
	}
	for _, v := range m.Extracts() {
		s.NExtractVents++
		s.TotalExtractRate += m.VentFlowRate(v)
	}

	for i := range m.Meshes {
		s.MeshResolutions = append(s.MeshResolutions, m.Meshes[i].CellSizes)
	}
	return s
}

// CountCells returns the total number of cells across meshes.
func CountCells(meshes []fds.Mesh) int {
	n := 0
	for i := range meshes {
		n += meshes[i].IJK.Cells()
	}
	return n
}

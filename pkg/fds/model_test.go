package fds

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smoke-cloud/fds-inspect-go/pkg/geom"
)

func fp(v float64) *float64 { return &v }
func bp(v bool) *bool       { return &v }

func box(x1, x2, y1, y2, z1, z2 float64) geom.Xb {
	return geom.Xb{X1: x1, X2: x2, Y1: y1, Y2: y2, Z1: z1, Z2: z2}
}

// testModel has one burner obstruction, one burner vent, a supply split
// across two meshes, an extract and a set of devices.
func testModel() *Model {
	supplyBox := box(4, 6, 0, 0, 1, 2)
	return &Model{
		Chid: "room",
		Surfaces: []Surf{
			{ID: "FIRE", HRRPUA: fp(500), TauQ: fp(-300)},
			{ID: "POOL", MLRPUA: fp(0.02), TauQ: fp(-300)},
			{ID: "SUPPLY", VolumeFlow: fp(-1.5)},
			{ID: "EXHAUST", Vel: fp(2)},
			{ID: "INERT"},
		},
		Reacs: []Reac{{ID: "R", HeatOfCombustion: 20000}},
		Meshes: []Mesh{
			{
				ID: "M1", IJK: IJK{I: 10, J: 10, K: 5}, Dimensions: box(0, 5, 0, 5, 0, 3),
				Obsts: []Obst{
					{ID: "burner", Dimensions: box(1, 2, 1, 2, 0, 0.5), Area: AxisAreas{Z: 1},
						Surfaces: &ObstSurfaces{XMin: "INERT", XMax: "INERT", YMin: "INERT", YMax: "INERT", ZMin: "INERT", ZMax: "FIRE"}},
					{ID: "wall", Dimensions: box(3, 3.5, 0, 5, 0, 3),
						Surfaces: &ObstSurfaces{ZMax: "INERT"}},
				},
				Vents: []Vent{
					{ID: "supply", Surface: "SUPPLY", Dimensions: supplyBox, Area: 1},
					{ID: "pool", Surface: "POOL", Dimensions: box(0.5, 1, 0.5, 1, 0, 0), Area: 0.25},
				},
			},
			{
				ID: "M2", IJK: IJK{I: 10, J: 10, K: 5}, Dimensions: box(5, 10, 0, 5, 0, 3),
				Vents: []Vent{
					{ID: "supply", Surface: "SUPPLY", Dimensions: supplyBox, Area: 1},
					{ID: "exhaust", Surface: "EXHAUST", Dimensions: box(8, 9, 4, 5, 3, 3)},
				},
			},
		},
		Props: []Prop{
			{ID: "SPK", Quantity: QuantitySprinklerLinkTemp, ActivationTemperature: 68},
			{ID: "SMOKE", Quantity: QuantityChamberObscure, ActivationObscuration: 3.24},
			{ID: "HEAT", Quantity: QuantityLinkTemperature},
		},
		Devices: []Devc{
			{ID: "spk1", PropID: "SPK", Points: []DevcPoint{{InitSolidZPlus: bp(true)}}},
			{ID: "smoke1", PropID: "SMOKE", Points: []DevcPoint{{InitSolidZPlus: bp(false)}}},
			{ID: "heat1", PropID: "HEAT", Points: []DevcPoint{{}}},
			{ID: "flow", Quantities: []string{QuantityVolumeFlow}, Dimensions: supplyBox},
			{ID: "nv", Quantities: []string{QuantityNormalVelocity}, SpatialStatistic: StatisticSurfaceIntegral},
			{ID: "temp", Quantities: []string{"TEMPERATURE"}, Points: []DevcPoint{{InitSolid: true}}},
		},
		Time: &Time{Begin: 0, End: 600},
	}
}

func TestSurfaceClassification(t *testing.T) {
	tests := []struct {
		name                       string
		surf                       Surf
		burner, flow, supply, extr bool
	}{
		{"hrrpua", Surf{HRRPUA: fp(100)}, true, false, false, false},
		{"mlrpua", Surf{MLRPUA: fp(0.01)}, true, false, false, false},
		{"zero hrrpua", Surf{HRRPUA: fp(0)}, false, false, false, false},
		{"supply volume flow", Surf{VolumeFlow: fp(-1)}, false, true, true, false},
		{"extract velocity", Surf{Vel: fp(3)}, false, true, false, true},
		{"zero velocity", Surf{Vel: fp(0)}, false, true, false, false},
		{"volume flow wins", Surf{Vel: fp(-1), VolumeFlow: fp(2)}, false, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.surf
			if s.IsBurner() != tt.burner {
				t.Errorf("IsBurner() = %v, want %v", s.IsBurner(), tt.burner)
			}
			if s.HasFlow() != tt.flow {
				t.Errorf("HasFlow() = %v, want %v", s.HasFlow(), tt.flow)
			}
			if s.IsSupply() != tt.supply {
				t.Errorf("IsSupply() = %v, want %v", s.IsSupply(), tt.supply)
			}
			if s.IsExtract() != tt.extr {
				t.Errorf("IsExtract() = %v, want %v", s.IsExtract(), tt.extr)
			}
		})
	}
}

func TestBurners(t *testing.T) {
	m := testModel()
	burners := m.Burners()
	if len(burners) != 2 {
		t.Fatalf("Burners() returned %d, want 2", len(burners))
	}

	if burners[0].Kind() != BurnerObst || burners[0].ID() != "burner" {
		t.Errorf("first burner = %v %q, want obst burner", burners[0].Kind(), burners[0].ID())
	}
	if burners[1].Kind() != BurnerVent || burners[1].ID() != "pool" {
		t.Errorf("second burner = %v %q, want vent pool", burners[1].Kind(), burners[1].ID())
	}

	if got := burners[0].MaxHRR(m); got != 500_000 {
		t.Errorf("obst MaxHRR = %v, want 500000", got)
	}
	// 0.25 m² * 0.02 kg/m²/s * 20000 kJ/kg = 100 kW
	if got := burners[1].MaxHRR(m); got != 100_000 {
		t.Errorf("vent MaxHRR = %v, want 100000", got)
	}
	if got := m.TotalMaxHRR(); got != 600_000 {
		t.Errorf("TotalMaxHRR = %v, want 600000", got)
	}

	spec, ok := m.HrrSpec()
	if !ok {
		t.Fatal("HrrSpec should exist")
	}
	if spec.IsComposite() || spec.Peak != 600_000 || *spec.TauQ != -300 {
		t.Errorf("HrrSpec = %+v", spec)
	}
}

func TestHrrSpecComposite(t *testing.T) {
	m := testModel()
	m.Surfaces[1].TauQ = fp(-150)
	spec, ok := m.HrrSpec()
	if !ok || !spec.IsComposite() {
		t.Errorf("expected composite spec, got %+v", spec)
	}
}

func TestHrrSpecNoBurners(t *testing.T) {
	m := &Model{}
	if _, ok := m.HrrSpec(); ok {
		t.Error("model without burners should have no spec")
	}
}

func TestBurnerInvalidKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero Burner")
		}
	}()
	var b Burner
	b.FuelArea()
}

func TestBurnerMLRPUAWithoutReac(t *testing.T) {
	m := testModel()
	m.Reacs = nil
	if got := NewVentBurner(&m.Meshes[0].Vents[1]).HRRPUA(m); got != 0 {
		t.Errorf("HRRPUA without REAC = %v, want 0", got)
	}
}

func TestSuppliesAndExtracts(t *testing.T) {
	m := testModel()

	supplies := m.Supplies()
	if len(supplies) != 1 || supplies[0].ID != "supply" {
		t.Errorf("Supplies() = %d vents, want the single deduplicated supply", len(supplies))
	}
	extracts := m.Extracts()
	if len(extracts) != 1 || extracts[0].ID != "exhaust" {
		t.Fatalf("Extracts() = %d vents", len(extracts))
	}

	if got := m.VentFlowRate(supplies[0]); got != 1.5 {
		t.Errorf("supply rate = %v, want 1.5", got)
	}
	// velocity 2 m/s over a 1 m² face computed from the box
	if got := m.VentFlowRate(extracts[0]); got != 2 {
		t.Errorf("extract rate = %v, want 2", got)
	}
}

func TestVentFlowAndDevices(t *testing.T) {
	m := testModel()
	supply := &m.Meshes[0].Vents[0]
	exhaust := &m.Meshes[1].Vents[1]
	pool := &m.Meshes[0].Vents[1]

	if !m.VentHasFlow(supply) || !m.VentHasFlow(exhaust) {
		t.Error("flow vents should report flow")
	}
	if m.VentHasFlow(pool) {
		t.Error("burner vent should not report flow")
	}
	if !m.HasFlowDevice(supply) {
		t.Error("supply should be measured by the matching flow device")
	}
	if m.HasFlowDevice(exhaust) {
		t.Error("exhaust has no matching device")
	}
	if n := len(m.FlowDevices()); n != 2 {
		t.Errorf("FlowDevices() = %d, want 2", n)
	}
}

func TestHvacLinks(t *testing.T) {
	m := testModel()
	m.Hvac = []Hvac{{ID: "node", VentID: "exhaust"}}
	exhaust := &m.Meshes[1].Vents[1]
	if len(m.HvacLinks(exhaust)) != 1 {
		t.Error("expected HVAC link for exhaust")
	}
	if len(m.HvacLinks(&Vent{})) != 0 {
		t.Error("anonymous vent should not be linked")
	}
}

func TestDeviceClassification(t *testing.T) {
	m := testModel()

	if n := len(m.Sprinklers()); n != 1 {
		t.Errorf("Sprinklers() = %d, want 1", n)
	}
	if n := len(m.SmokeDetectors()); n != 1 {
		t.Errorf("SmokeDetectors() = %d, want 1", n)
	}
	if n := len(m.Detectors()); n != 3 {
		t.Errorf("Detectors() = %d, want 3", n)
	}

	beneath := map[string]bool{"spk1": true, "smoke1": false, "heat1": true}
	for _, d := range m.Detectors() {
		if d.BeneathCeiling() != beneath[d.ID] {
			t.Errorf("%s BeneathCeiling() = %v", d.ID, d.BeneathCeiling())
		}
	}

	stuck := 0
	for i := range m.Devices {
		if m.Devices[i].StuckInSolid() {
			stuck++
		}
	}
	if stuck != 1 {
		t.Errorf("stuck devices = %d, want 1", stuck)
	}
}

func TestMaximumVisibility(t *testing.T) {
	m := &Model{}
	if _, ok := m.MaximumVisibility(); ok {
		t.Error("unset values should not give a visibility")
	}
	m.VisibilityFactor = fp(3)
	m.EcLL = fp(0.01)
	if v, ok := m.MaximumVisibility(); !ok || v < 299.999 || v > 300.001 {
		t.Errorf("MaximumVisibility() = %v, %v", v, ok)
	}
}

func TestMeshCells(t *testing.T) {
	m := testModel()
	mesh := &m.Meshes[0]
	if mesh.IJK.Cells() != 500 {
		t.Errorf("Cells() = %d", mesh.IJK.Cells())
	}
	if mesh.CellFootprint() != 0.25 {
		t.Errorf("CellFootprint() = %v", mesh.CellFootprint())
	}
	if mesh.CellHeight() != 0.6 {
		t.Errorf("CellHeight() = %v", mesh.CellHeight())
	}
}

const sampleJSON = `{
  "chid": "demo",
  "visibility_factor": 3,
  "ec_ll": 0.01,
  "dump": {"nframes": 600},
  "time": {"begin": 0, "end": 600},
  "surfaces": [{"index": 0, "id": "FIRE", "hrrpua": 500, "tau_q": -150}],
  "meshes": [{
    "index": 0, "id": "M1",
    "ijk": {"i": 10, "j": 10, "k": 10},
    "dimensions": {"x1": 0, "x2": 1, "y1": 0, "y2": 1, "z1": 0, "z2": 1},
    "cell_sizes": {"dx": 0.1, "dy": 0.1, "dz": 0.1},
    "vents": [{"index": 0, "id": "v", "surface": "FIRE",
      "dimensions": {"x1": 0, "x2": 1, "y1": 0, "y2": 1, "z1": 0, "z2": 0},
      "bounds": {"i_min": 0, "i_max": 10, "j_min": 0, "j_max": 10, "k_min": 0, "k_max": 0},
      "fds_area": 1}],
    "obsts": []
  }],
  "devices": [{"index": 0, "id": "d", "quantities": ["TEMPERATURE"],
    "points": [{"i": 1, "j": 1, "k": 1, "init_solid": false, "init_solid_zplus": false}]}],
  "hvac": [], "props": [], "parts": [],
  "reacs": [{"c": 1, "h": 1.45, "o": 0.46, "n": 0.04, "soot_yield": 0.07, "heat_of_combustion": 20000}]
}`

const sampleYAML = `
chid: demo
visibility_factor: 3
surfaces:
  - id: FIRE
    hrrpua: 500
meshes:
  - id: M1
    ijk: {i: 10, j: 10, k: 10}
    dimensions: {x1: 0, x2: 1, y1: 0, y2: 1, z1: 0, z2: 1}
    vents:
      - id: v
        surface: FIRE
        dimensions: {x1: 0, x2: 1, y1: 0, y2: 1, z1: 0, z2: 0}
`

func TestParseJSON(t *testing.T) {
	m, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if m.Chid != "demo" || len(m.Meshes) != 1 || len(m.Burners()) != 1 {
		t.Errorf("unexpected model: %+v", m)
	}
	if m.Dump.NFrames == nil || *m.Dump.NFrames != 600 {
		t.Error("nframes not decoded")
	}
	if b := m.Meshes[0].Vents[0].Bounds; b.IMax != 10 || !b.Flat(geom.AxisZ) {
		t.Errorf("vent bounds = %+v", b)
	}
	if m.Surfaces[0].TmpFront != nil {
		t.Error("absent tmp_front should stay unset")
	}
	p := m.Devices[0].Points[0]
	if p.InitSolidZPlus == nil || *p.InitSolidZPlus {
		t.Error("init_solid_zplus should decode as explicit false")
	}
	if *m.Reacs[0].SootYield != 0.07 {
		t.Error("soot_yield not decoded")
	}
}

func TestParseYAML(t *testing.T) {
	m, err := ParseYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if m.Chid != "demo" || *m.VisibilityFactor != 3 || len(m.Burners()) != 1 {
		t.Errorf("unexpected model: %+v", m)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := ParseJSON([]byte("{\n  \"chid\": \n}"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if le.Line != 3 {
		t.Errorf("Line = %d, want 3", le.Line)
	}
	if le.Unwrap() == nil {
		t.Error("expected wrapped cause")
	}

	bad := `{"meshes": [{"id": "M", "dimensions": {"x1": 1, "x2": 0, "y1": 0, "y2": 1, "z1": 0, "z2": 1}}]}`
	_, err = ParseJSON([]byte(bad))
	if !errors.As(err, &le) || !strings.Contains(le.Message, "not well ordered") {
		t.Errorf("expected ordering error, got %v", err)
	}

	_, err = ParseYAML([]byte("chid: [unterminated"))
	if !errors.As(err, &le) {
		t.Errorf("expected LoadError for bad YAML, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "model.json")
	yamlPath := filepath.Join(dir, "model.yml")
	if err := os.WriteFile(jsonPath, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, yamlPath} {
		m, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", path, err)
		}
		if m.Chid != "demo" {
			t.Errorf("Load(%s) chid = %q", path, m.Chid)
		}
	}

	_, err := Load(filepath.Join(dir, "missing.json"))
	var le *LoadError
	if !errors.As(err, &le) || le.File == "" {
		t.Errorf("expected LoadError with file, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("expected wrapped not-exist error")
	}
}

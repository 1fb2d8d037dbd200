package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smoke-cloud/fds-inspect-go/pkg/combustion"
	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/geom"
	"github.com/smoke-cloud/fds-inspect-go/pkg/series"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }
func bp(v bool) *bool       { return &v }

func box(x1, x2, y1, y2, z1, z2 float64) geom.Xb {
	return geom.Xb{X1: x1, X2: x2, Y1: y1, Y2: y2, Z1: z1, Z2: z2}
}

func types(results []verify.Result) []verify.OutcomeType {
	out := make([]verify.OutcomeType, len(results))
	for i, r := range results {
		out[i] = r.Type
	}
	return out
}

// burnerModel has a single 1 m² vent burner of 1000 kW/m² ramping over tau.
func burnerModel(tau *float64) *fds.Model {
	return &fds.Model{
		Chid:     "office",
		Surfaces: []fds.Surf{{ID: "FIRE", HRRPUA: fp(1000), TauQ: tau}},
		Meshes: []fds.Mesh{{
			ID:         "M1",
			Dimensions: box(0, 10, 0, 10, 0, 3),
			Vents:      []fds.Vent{{ID: "burner", Surface: "FIRE", Dimensions: box(4, 5, 4, 5, 0, 0), Area: 1}},
		}},
	}
}

type fakeSource struct {
	chid   string
	series map[string]*series.DataVector
}

func (f *fakeSource) Chid() string { return f.chid }

func (f *fakeSource) Series(_ context.Context, name string) (*series.DataVector, error) {
	v, ok := f.series[name]
	if !ok {
		return nil, verify.ErrNoOutputData
	}
	return v, nil
}

func TestStandardRules(t *testing.T) {
	reg := NewDefaultRegistry()
	assert.Equal(t, 16, reg.Count())

	seen := make(map[string]bool)
	for _, r := range StandardRules() {
		assert.False(t, seen[r.ID()], "duplicate id %s", r.ID())
		seen[r.ID()] = true
	}
	assert.Equal(t, "input.meshes.overlap", reg.AllRules()[0].ID())
	assert.Len(t, reg.RulesByCategory(CategoryReaction), 5)
	assert.Equal(t, verify.StageOutput, reg.GetRule("output.hrr.series").Stage())
	assert.Equal(t, verify.StageInputOutput, reg.GetRule("matching.hrr").Stage())
}

func TestMeshesOverlap(t *testing.T) {
	rule := NewMeshesOverlap()

	tests := []struct {
		name   string
		meshes []fds.Mesh
		want   []verify.OutcomeType
	}{
		{
			name: "overlapping",
			meshes: []fds.Mesh{
				{ID: "A", Dimensions: box(0, 10, 0, 10, 0, 10)},
				{ID: "B", Dimensions: box(5, 15, 0, 10, 0, 10)},
			},
			want: []verify.OutcomeType{verify.Failure},
		},
		{
			name: "touching face",
			meshes: []fds.Mesh{
				{ID: "A", Dimensions: box(0, 10, 0, 10, 0, 10)},
				{ID: "B", Dimensions: box(10, 20, 0, 10, 0, 10)},
			},
			want: []verify.OutcomeType{verify.Success},
		},
		{
			name: "identical bounds",
			meshes: []fds.Mesh{
				{ID: "A", Dimensions: box(0, 1, 0, 1, 0, 1)},
				{ID: "B", Dimensions: box(0, 1, 0, 1, 0, 1)},
			},
			want: []verify.OutcomeType{verify.Failure},
		},
		{
			name:   "single mesh",
			meshes: []fds.Mesh{{ID: "A", Dimensions: box(0, 1, 0, 1, 0, 1)}},
			want:   []verify.OutcomeType{verify.Success},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := rule.CheckInput(&fds.Model{Meshes: tt.meshes})
			assert.Equal(t, tt.want, types(results))
		})
	}

	results := rule.CheckInput(&fds.Model{Meshes: tests[0].meshes})
	assert.Equal(t, "Mesh `A` intersects with `B`", results[0].Message)
}

func TestFlowTemperature(t *testing.T) {
	m := &fds.Model{
		Surfaces: []fds.Surf{
			{ID: "SUPPLY", VolumeFlow: fp(-1)},
			{ID: "HOT", VolumeFlow: fp(-1), TmpFront: fp(400)},
			{ID: "AMBIENT", Vel: fp(1), TmpFront: fp(293.15)},
			{ID: "WALL"},
		},
		Meshes: []fds.Mesh{{Vents: []fds.Vent{
			{ID: "v1", Surface: "SUPPLY"},
			{ID: "v2", Surface: "HOT"},
			{ID: "v3", Surface: "SUPPLY"},
			{ID: "v4", Surface: "AMBIENT"},
			{ID: "v5", Surface: "WALL"},
			{ID: "v6"},
		}}},
	}
	results := NewFlowTemperature().CheckInput(m)
	require.Equal(t, []verify.OutcomeType{verify.Success, verify.Failure, verify.Success}, types(results))
	assert.Equal(t, "Flow Temp for Surface `HOT` sets TMP_FRONT to `400`, which is not an expected value", results[1].Message)
}

func TestSootYield(t *testing.T) {
	tests := []struct {
		name     string
		yield    *float64
		want     verify.OutcomeType
		contains string
	}{
		{"recognised", fp(0.07), verify.Success, "0.07"},
		{"recognised alternative", fp(0.1), verify.Success, "0.1"},
		{"unrecognised", fp(0.09), verify.Failure, "0.09"},
		{"unset", nil, verify.Failure, "not specified"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := NewSootYield().CheckInput(&fds.Model{Reacs: []fds.Reac{{SootYield: tt.yield}}})
			require.Len(t, results, 1)
			assert.Equal(t, tt.want, results[0].Type)
			assert.Contains(t, results[0].Message, tt.contains)
		})
	}

	assert.Empty(t, NewSootYield().CheckInput(&fds.Model{}))
}

func TestCOYield(t *testing.T) {
	m := &fds.Model{Reacs: []fds.Reac{{COYield: fp(0.014)}, {COYield: fp(0.2)}, {}}}
	results := NewCOYield().CheckInput(m)
	assert.Equal(t, []verify.OutcomeType{verify.Success, verify.Failure, verify.Failure}, types(results))
	assert.Equal(t, "CO Yield was 0.2, which is not one of the usual values of {0.05, 0.014}.", results[1].Message)
	assert.Equal(t, "CO Yield was not specified.", results[2].Message)
}

func TestFormula(t *testing.T) {
	rule := NewFormula()

	results := rule.CheckInput(&fds.Model{})
	require.Len(t, results, 1)
	assert.Equal(t, "No REAC has been specified", results[0].Message)

	results = rule.CheckInput(&fds.Model{Reacs: make([]fds.Reac, 2)})
	require.Len(t, results, 1)
	assert.Equal(t, verify.Failure, results[0].Type)
	assert.True(t, strings.HasPrefix(results[0].Message, "Multiple REACs"))

	results = rule.CheckInput(&fds.Model{Reacs: []fds.Reac{{C: fp(1), H: fp(1.45), N: fp(0.04), O: fp(0.5)}}})
	assert.Equal(t, []verify.OutcomeType{verify.Success, verify.Success, verify.Success, verify.Failure}, types(results))

	results = rule.CheckInput(&fds.Model{Reacs: []fds.Reac{{C: fp(1), H: fp(1.45 + 1e-12), N: fp(0.04), O: fp(0.46)}}})
	assert.Equal(t, []verify.OutcomeType{verify.Success, verify.Success, verify.Success, verify.Success}, types(results))
}

func TestVisibilityFactor(t *testing.T) {
	tests := []struct {
		name string
		vf   *float64
		want string
	}{
		{"three", fp(3), "Visibility Factor is 3, a known value."},
		{"eight", fp(8), "Visibility Factor is 8, a known value."},
		{"other", fp(5), "Visibility Factor is 5. Known good visibility factors are 3 and 8."},
		{"unset", nil, "Visibility Factor Not Set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := NewVisibilityFactor().CheckInput(&fds.Model{VisibilityFactor: tt.vf})
			require.Len(t, results, 1)
			assert.Equal(t, tt.want, results[0].Message)
		})
	}
}

func TestMaximumVisibility(t *testing.T) {
	rule := NewMaximumVisibility()

	results := rule.CheckInput(&fds.Model{VisibilityFactor: fp(3), EcLL: fp(0.01)})
	require.Len(t, results, 1)
	assert.Equal(t, verify.Success, results[0].Type)
	assert.Equal(t, "Maximum Visibility is 300 m, at least 100 m.", results[0].Message)

	results = rule.CheckInput(&fds.Model{VisibilityFactor: fp(3), EcLL: fp(0.1)})
	assert.Equal(t, verify.Failure, results[0].Type)

	results = rule.CheckInput(&fds.Model{VisibilityFactor: fp(3)})
	assert.Equal(t, "Maximum Visibility Not Set", results[0].Message)
}

func TestNFrames(t *testing.T) {
	tests := []struct {
		name    string
		nframes *int
		time    *fds.Time
		want    verify.OutcomeType
	}{
		{"divides", ip(900), &fds.Time{End: 900}, verify.Success},
		{"rounds interval", ip(300), &fds.Time{Begin: 0.2, End: 600.3}, verify.Success},
		{"clips", ip(7), &fds.Time{End: 900}, verify.Failure},
		{"default time", ip(1), nil, verify.Success},
		{"unset", nil, &fds.Time{End: 900}, verify.Failure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := NewNFrames().CheckInput(&fds.Model{Dump: fds.Dump{NFrames: tt.nframes}, Time: tt.time})
			require.Len(t, results, 1)
			assert.Equal(t, tt.want, results[0].Type)
		})
	}
}

func TestFlowCoverage(t *testing.T) {
	inlet := box(1, 2, 0, 0, 1, 2)
	outlet := box(8, 9, 10, 10, 1, 2)
	m := &fds.Model{
		Surfaces: []fds.Surf{{ID: "SUPPLY", VolumeFlow: fp(-1)}, {ID: "EXTRACT", VolumeFlow: fp(1)}},
		Meshes: []fds.Mesh{{Vents: []fds.Vent{
			{ID: "in", Surface: "SUPPLY", Dimensions: inlet},
			{ID: "out", Surface: "EXTRACT", Dimensions: outlet},
		}}},
		Devices: []fds.Devc{{ID: "flow-in", Quantities: []string{fds.QuantityVolumeFlow}, Dimensions: inlet}},
	}

	results := NewFlowCoverage().CheckInput(m)
	require.Len(t, results, 1)
	assert.Equal(t, "Vent `out` has no adequate volume flow measuring device", results[0].Message)

	m.Devices = append(m.Devices, fds.Devc{
		ID: "flow-out", Quantities: []string{fds.QuantityNormalVelocity},
		SpatialStatistic: fds.StatisticSurfaceIntegral, Dimensions: outlet,
	})
	results = NewFlowCoverage().CheckInput(m)
	assert.Equal(t, []verify.OutcomeType{verify.Success}, types(results))
}

func TestDeviceRules(t *testing.T) {
	m := &fds.Model{
		Props: []fds.Prop{
			{ID: "SPK", Quantity: fds.QuantitySprinklerLinkTemp},
			{ID: "SD", Quantity: fds.QuantityChamberObscure},
		},
		Devices: []fds.Devc{
			{ID: "spk-ok", PropID: "SPK", Points: []fds.DevcPoint{{InitSolidZPlus: bp(true)}}},
			{ID: "spk-low", PropID: "SPK", Points: []fds.DevcPoint{{InitSolidZPlus: bp(false)}}},
			{ID: "sd-stuck", PropID: "SD", Points: []fds.DevcPoint{{InitSolid: true}}},
			{ID: "probe-stuck", Points: []fds.DevcPoint{{InitSolid: true, InitSolidZPlus: bp(false)}}},
		},
	}

	results := NewDeviceInSolid().CheckInput(m)
	require.Len(t, results, 1)
	assert.Equal(t, "Devc `sd-stuck` positioned within solid obstruction", results[0].Message)

	results = NewDeviceUnderCeiling().CheckInput(m)
	require.Len(t, results, 1)
	assert.Equal(t, "Devc `spk-low` is not immediately beneath solid obstruction", results[0].Message)

	clean := &fds.Model{Props: m.Props, Devices: m.Devices[:1]}
	assert.Equal(t, []verify.OutcomeType{verify.Success}, types(NewDeviceInSolid().CheckInput(clean)))
	assert.Equal(t, []verify.OutcomeType{verify.Success}, types(NewDeviceUnderCeiling().CheckInput(clean)))
}

func TestGrowthRate(t *testing.T) {
	rule := NewGrowthRate()

	tests := []struct {
		name     string
		tau      *float64
		want     verify.OutcomeType
		contains string
	}{
		{"eurocode fast", fp(-150), verify.Success, "(fast)"},
		{"steady convention", fp(-30), verify.Success, "30 s"},
		{"positive steady convention", fp(30), verify.Success, "30 s"},
		{"unset", nil, verify.Warning, "No growth rate specified"},
		{"non standard", fp(-200), verify.Failure, "deviates"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := rule.CheckInput(burnerModel(tt.tau))
			require.Len(t, results, 1)
			assert.Equal(t, tt.want, results[0].Type)
			assert.Contains(t, results[0].Message, tt.contains)
		})
	}

	assert.Empty(t, rule.CheckInput(&fds.Model{}))
}

func TestGrowthRateComposite(t *testing.T) {
	m := burnerModel(fp(-150))
	m.Surfaces = append(m.Surfaces, fds.Surf{ID: "FIRE2", HRRPUA: fp(500), TauQ: fp(-300)})
	m.Meshes[0].Vents = append(m.Meshes[0].Vents, fds.Vent{ID: "b2", Surface: "FIRE2", Area: 1})

	results := NewGrowthRate().CheckInput(m)
	require.Len(t, results, 1)
	assert.Equal(t, "Growth rate is composite", results[0].Message)
}

func TestBurnerExists(t *testing.T) {
	results := NewBurnerExists().CheckInput(burnerModel(nil))
	assert.Equal(t, "1 burners were found", results[0].Message)

	results = NewBurnerExists().CheckInput(&fds.Model{})
	assert.Equal(t, "No burners", results[0].Message)
}

func TestMatchingChid(t *testing.T) {
	rule := NewMatchingChid()
	ctx := context.Background()

	results, err := rule.CheckInputOutput(ctx, &fds.Model{Chid: "a"}, &fakeSource{chid: "a"})
	require.NoError(t, err)
	assert.Equal(t, "CHIDs match, a = a", results[0].Message)

	results, err = rule.CheckInputOutput(ctx, &fds.Model{Chid: "a"}, &fakeSource{chid: "b"})
	require.NoError(t, err)
	assert.Equal(t, verify.Failure, results[0].Type)
}

// realisedHRR follows the prescribed curve in kW from 0 to 300 s, scaled by
// factor over [from, to).
func realisedHRR(t *testing.T, spec combustion.HrrSpec, from, to, factor float64) *series.DataVector {
	t.Helper()
	v := series.New("Time", "s", "HRR", "kW")
	for s := 0; s <= 300; s++ {
		x := float64(s)
		y, err := combustion.CalcHrr(spec, x)
		require.NoError(t, err)
		y /= 1000
		if x >= from && x < to {
			y *= factor
		}
		v.Append(x, y)
	}
	return v
}

func TestMatchingHRR(t *testing.T) {
	m := burnerModel(fp(-100))
	spec, ok := m.HrrSpec()
	require.True(t, ok)

	tests := []struct {
		name     string
		from, to float64
		factor   float64
		want     verify.OutcomeType
		contains string
	}{
		{"within 5%", 0, 301, 1.05, verify.Success, "within 10% bounds"},
		{"sustained", 150, 165, 1.12, verify.Failure, "greater than 10 s"},
		{"momentary", 150, 153, 1.15, verify.Warning, "momentarily"},
		{"early deviation ignored", 10, 50, 2, verify.Success, "within 10% bounds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{chid: "office", series: map[string]*series.DataVector{
				HRRSeriesName: realisedHRR(t, spec, tt.from, tt.to, tt.factor),
			}}
			results, err := NewMatchingHRR().CheckInputOutput(context.Background(), m, src)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, tt.want, results[0].Type)
			assert.Contains(t, results[0].Message, tt.contains)
		})
	}
}

func TestMatchingHRRWithoutData(t *testing.T) {
	_, err := NewMatchingHRR().CheckInputOutput(context.Background(), burnerModel(fp(-100)), &fakeSource{})
	assert.ErrorIs(t, err, verify.ErrNoOutputData)

	results, err := NewMatchingHRR().CheckInputOutput(context.Background(), &fds.Model{}, &fakeSource{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestHRRSeries(t *testing.T) {
	good := series.New("Time", "s", "HRR", "kW")
	good.Append(0, 0)
	good.Append(0.5, 1)
	bad := series.New("Time", "s", "HRR", "kW")
	bad.Append(1, 0)
	bad.Append(1, 1)

	tests := []struct {
		name string
		v    *series.DataVector
		want string
	}{
		{"good", good, "HRR output has 2 samples up to 0.5 s"},
		{"repeated time", bad, "HRR output time is not strictly increasing"},
		{"empty", series.New("Time", "s", "HRR", "kW"), "HRR output has no samples"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{series: map[string]*series.DataVector{HRRSeriesName: tt.v}}
			results, err := NewHRRSeries().CheckOutput(context.Background(), src)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, tt.want, results[0].Message)
		})
	}
}

func TestCatalogueWithoutOutput(t *testing.T) {
	m := burnerModel(fp(-150))
	report, err := verify.NewEngine(verify.Config{Rules: StandardRules()}).Run(context.Background(), m, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"matching.chid", "matching.hrr", "output.hrr.series"}, report.Skipped)
	for _, o := range report.Outcomes {
		assert.True(t, strings.HasPrefix(o.ID, "input."), o.ID)
	}
}

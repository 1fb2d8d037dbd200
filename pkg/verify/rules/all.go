// Package rules is the standard catalogue of FDS verification rules.
package rules

import (
	"math"
	"strconv"
	"strings"

	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// Rule categories.
const (
	CategoryMesh          = "mesh"
	CategoryFlow          = "flow"
	CategoryReaction      = "reaction"
	CategoryOutputControl = "output-control"
	CategoryMeasurement   = "measurement"
	CategoryBurner        = "burner"
	CategoryMatching      = "matching"
	CategoryOutput        = "output"
)

// StandardRules returns a fresh instance of every rule in catalogue order.
func StandardRules() []verify.Rule {
	return []verify.Rule{
		NewMeshesOverlap(),
		NewFlowTemperature(),
		NewSootYield(),
		NewCOYield(),
		NewFormula(),
		NewVisibilityFactor(),
		NewMaximumVisibility(),
		NewNFrames(),
		NewFlowCoverage(),
		NewDeviceInSolid(),
		NewDeviceUnderCeiling(),
		NewGrowthRate(),
		NewBurnerExists(),
		NewMatchingChid(),
		NewMatchingHRR(),
		NewHRRSeries(),
	}
}

// RegisterAllRules registers the standard catalogue with registry.
func RegisterAllRules(registry *verify.RuleRegistry) {
	for _, r := range StandardRules() {
		registry.Register(r)
	}
}

// NewDefaultRegistry creates a new registry with all rules registered.
func NewDefaultRegistry() *verify.RuleRegistry {
	registry := verify.NewRuleRegistry()
	RegisterAllRules(registry)
	return registry
}

// valueTolerance is the absolute difference within which a value counts as
// one of a rule's recognised values.
const valueTolerance = 1e-9

func recognised(v float64, known []float64) bool {
	for _, k := range known {
		if math.Abs(v-k) <= valueTolerance {
			return true
		}
	}
	return false
}

// num formats a number the shortest way that round-trips.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func numSet(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = num(v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

var (
	_ verify.InputChecker       = (*MeshesOverlap)(nil)
	_ verify.InputChecker       = (*FlowTemperature)(nil)
	_ verify.InputChecker       = (*SootYield)(nil)
	_ verify.InputChecker       = (*COYield)(nil)
	_ verify.InputChecker       = (*Formula)(nil)
	_ verify.InputChecker       = (*VisibilityFactor)(nil)
	_ verify.InputChecker       = (*MaximumVisibility)(nil)
	_ verify.InputChecker       = (*NFrames)(nil)
	_ verify.InputChecker       = (*FlowCoverage)(nil)
	_ verify.InputChecker       = (*DeviceInSolid)(nil)
	_ verify.InputChecker       = (*DeviceUnderCeiling)(nil)
	_ verify.InputChecker       = (*GrowthRate)(nil)
	_ verify.InputChecker       = (*BurnerExists)(nil)
	_ verify.InputOutputChecker = (*MatchingChid)(nil)
	_ verify.InputOutputChecker = (*MatchingHRR)(nil)
	_ verify.OutputChecker      = (*HRRSeries)(nil)
)

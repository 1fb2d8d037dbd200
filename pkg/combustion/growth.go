package combustion

import (
	"fmt"
	"math"
)

// MatchTolerance is the relative deviation below which a growth coefficient
// is considered to match a standard rate.
const MatchTolerance = 0.001

// GrowthRate is one of the standard t-squared fire growth rates.
type GrowthRate string

const (
	NFPASlow          GrowthRate = "nfpa-slow"
	NFPAMedium        GrowthRate = "nfpa-medium"
	NFPAFast          GrowthRate = "nfpa-fast"
	NFPAUltrafast     GrowthRate = "nfpa-ultrafast"
	EurocodeSlow      GrowthRate = "slow"
	EurocodeMedium    GrowthRate = "medium"
	EurocodeFast      GrowthRate = "fast"
	EurocodeUltrafast GrowthRate = "ultrafast"
)

// AllGrowthRates lists the standard rates in a fixed order.
var AllGrowthRates = []GrowthRate{
	NFPASlow, NFPAMedium, NFPAFast, NFPAUltrafast,
	EurocodeSlow, EurocodeMedium, EurocodeFast, EurocodeUltrafast,
}

const (
	nfpaNumerator     = 1055.0
	eurocodeNumerator = 1000.0
)

// ParseGrowthRate parses a growth rate name.
func ParseGrowthRate(s string) (GrowthRate, error) {
	for _, r := range AllGrowthRates {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown growth rate %q", s)
}

// CharacteristicTime returns the time in seconds to reach the rate's
// reference heat release.
func (g GrowthRate) CharacteristicTime() float64 {
	switch g {
	case NFPASlow, EurocodeSlow:
		return 600
	case NFPAMedium, EurocodeMedium:
		return 300
	case NFPAFast, EurocodeFast:
		return 150
	case NFPAUltrafast, EurocodeUltrafast:
		return 75
	}
	return math.NaN()
}

// Alpha returns the growth coefficient in kW/s².
func (g GrowthRate) Alpha() float64 {
	tc := g.CharacteristicTime()
	switch g {
	case NFPASlow, NFPAMedium, NFPAFast, NFPAUltrafast:
		return nfpaNumerator / (tc * tc)
	default:
		return eurocodeNumerator / (tc * tc)
	}
}

// SpecFor returns the simple spec that follows rate up to peak (W). The
// ramp time is negative, as FDS expects for t-squared growth.
func SpecFor(rate GrowthRate, peak float64) HrrSpec {
	tau := -math.Sqrt(peak / 1000 / rate.Alpha())
	return Simple(&tau, peak)
}

// Classification is the result of comparing a spec with the standard rates.
type Classification struct {
	// Rate is the closest standard rate.
	Rate GrowthRate
	// Deviation is |alpha - alpha_ref| / alpha_ref for Rate.
	Deviation float64
	// Matched is true when Deviation is below MatchTolerance.
	Matched bool
}

// ClassifyGrowthRate finds the standard rate closest to spec. The second
// result is false when spec has no growth coefficient to compare.
func ClassifyGrowthRate(spec HrrSpec) (Classification, bool) {
	if spec.IsComposite() || spec.TauQ == nil || *spec.TauQ == 0 {
		return Classification{}, false
	}
	alpha := spec.AlphaKW()
	best := Classification{Deviation: math.Inf(1)}
	for _, r := range AllGrowthRates {
		ref := r.Alpha()
		dev := math.Abs(alpha-ref) / ref
		if dev < best.Deviation {
			best = Classification{Rate: r, Deviation: dev}
		}
	}
	best.Matched = best.Deviation < MatchTolerance
	return best, true
}

// FindMatchingGrowthRate returns the standard rate spec follows, if any.
func FindMatchingGrowthRate(spec HrrSpec) (GrowthRate, bool) {
	c, ok := ClassifyGrowthRate(spec)
	if !ok || !c.Matched {
		return "", false
	}
	return c.Rate, true
}

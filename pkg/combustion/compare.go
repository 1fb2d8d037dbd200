package combustion

import (
	"math"

	"github.com/smoke-cloud/fds-inspect-go/pkg/geom"
	"github.com/smoke-cloud/fds-inspect-go/pkg/series"
)

// Verdict is the outcome of a realised-vs-specified comparison.
type Verdict int

const (
	VerdictMatch Verdict = iota
	VerdictMomentary
	VerdictSustained
)

func (v Verdict) String() string {
	switch v {
	case VerdictMatch:
		return "match"
	case VerdictMomentary:
		return "momentary"
	case VerdictSustained:
		return "sustained"
	default:
		return "unknown"
	}
}

// RelativeDifference compares a realised HRR series (kW) against spec (W) and
// returns (realised*1000 - prescribed) / prescribed at every realised sample.
// Samples where the prescribed value is zero are omitted.
func RelativeDifference(spec HrrSpec, realised *series.DataVector) (*series.DataVector, error) {
	if spec.IsComposite() {
		return nil, ErrCompositeSpec
	}
	out := series.New(realised.XName, realised.XUnit, "HRR relative difference", "-")
	for _, p := range realised.Values {
		prescribed, err := CalcHrr(spec, p.X)
		if err != nil {
			return nil, err
		}
		if prescribed == 0 {
			continue
		}
		out.Append(p.X, (p.Y*1000-prescribed)/prescribed)
	}
	return out, nil
}

// BreachOptions control AnalyseBreaches.
type BreachOptions struct {
	// IgnoreBefore skips samples at or before this time (s).
	IgnoreBefore float64
	// Tolerance is the relative deviation a sample must exceed to breach.
	Tolerance float64
	// MaxDuration is the breach length (s) at which a breach is sustained.
	MaxDuration float64
}

// DefaultBreachOptions ignores the first 60 s and allows 10% deviation for
// less than 10 s.
func DefaultBreachOptions() BreachOptions {
	return BreachOptions{IgnoreBefore: 60, Tolerance: 0.1, MaxDuration: 10}
}

// BreachReport summarises the intervals where a relative difference series
// left the tolerance band.
type BreachReport struct {
	Occurred  bool
	Longest   float64
	Total     float64
	Intervals []geom.Interval
	opts      BreachOptions
}

// Verdict classifies the report.
func (r BreachReport) Verdict() Verdict {
	switch {
	case r.Longest >= r.opts.MaxDuration:
		return VerdictSustained
	case r.Occurred:
		return VerdictMomentary
	default:
		return VerdictMatch
	}
}

// AnalyseBreaches scans diff for contiguous runs of samples whose magnitude
// exceeds the tolerance. A run lasts from its first breaching sample to the
// first sample back within tolerance; a run still open at the end of the
// series is closed at the final sample.
func AnalyseBreaches(diff *series.DataVector, opts BreachOptions) BreachReport {
	r := BreachReport{opts: opts}
	var (
		open  bool
		start float64
		last  float64
	)
	closeAt := func(t float64) {
		period := t - start
		r.Intervals = append(r.Intervals, geom.Interval{Start: start, End: t})
		r.Longest = math.Max(r.Longest, period)
		r.Total += period
		open = false
	}
	for _, p := range diff.Values {
		if p.X <= opts.IgnoreBefore {
			continue
		}
		last = p.X
		if math.Abs(p.Y) > opts.Tolerance {
			r.Occurred = true
			if !open {
				open = true
				start = p.X
			}
			continue
		}
		if open {
			closeAt(p.X)
		}
	}
	if open {
		closeAt(last)
	}
	return r
}

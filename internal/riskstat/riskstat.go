// Package riskstat computes portfolio-level dispersion statistics
// surfaced as scenario-result metadata: how concentrated a gap or
// exposure profile is across buckets or currencies, using gonum/stat.
package riskstat

import "gonum.org/v1/gonum/stat"

// Dispersion summarizes the spread of a set of bucket or currency
// amounts: a concentrated gap profile (one dominant bucket) has a high
// coefficient of variation; an even spread has a low one.
type Dispersion struct {
	Mean                   float64
	StdDev                 float64
	CoefficientOfVariation float64
}

// Compute returns the Dispersion of values, the weights defaulting to
// uniform (nil). Returns the zero Dispersion for an empty input.
func Compute(values []float64) Dispersion {
	if len(values) == 0 {
		return Dispersion{}
	}

	mean := stat.Mean(values, nil)
	stdDev := stat.StdDev(values, nil)

	cv := 0.0
	if mean != 0 {
		cv = stdDev / mean
	}

	return Dispersion{Mean: mean, StdDev: stdDev, CoefficientOfVariation: cv}
}

// GapConcentration computes the Dispersion of the absolute gap amounts
// across a per-bucket (or per-currency) gap map, used to flag a
// portfolio whose interest-rate or liquidity risk concentrates in one or
// two buckets rather than spreading evenly.
func GapConcentration[K comparable](gaps map[K]float64) Dispersion {
	values := make([]float64, 0, len(gaps))
	for _, v := range gaps {
		if v < 0 {
			v = -v
		}
		values = append(values, v)
	}
	return Compute(values)
}

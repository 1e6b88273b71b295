// Package irr implements the IRR Gap Calculator & Sensitivity of spec.md
// §4.8: per-currency rate-sensitive asset/liability ladders and NII/EVE
// sensitivity to a parallel rate shock.
package irr

import (
	"github.com/aristath/alm-risk-engine/internal/aggregate"
	"github.com/aristath/alm-risk-engine/internal/bucket"
)

// gapLimitThreshold is the |gap_ratio| breach threshold of §4.8.
const gapLimitThreshold = 0.20

// niiBuckets are the repricing buckets summed for the one-year NII
// sensitivity, per §4.8.
var niiBuckets = map[bucket.Repricing]bool{
	bucket.Repricing0to1m:  true,
	bucket.Repricing1to3m:  true,
	bucket.Repricing3to6m:  true,
	bucket.Repricing6to12m: true,
}

// BucketRow is one row of the per-currency gap table of §4.8.
type BucketRow struct {
	RSA           float64
	RSL           float64
	Gap           float64
	GapRatio      float64
	CumulativeGap float64
}

// CurrencyGaps is the gap table for one currency: one BucketRow for each
// repricing bucket of bucket.RepricingOrder, keyed by bucket.
type CurrencyGaps struct {
	Rows map[bucket.Repricing]BucketRow
}

// Sensitivity holds the parallel-shock sensitivity measures of §4.8.
type Sensitivity struct {
	NIIImpact1Y       float64
	EVEImpact         float64
	GapLimitsBreached bool
}

// Result is the Calculator's output: a gap table and sensitivity per
// currency.
type Result struct {
	Gaps        map[string]CurrencyGaps
	Sensitivity map[string]Sensitivity
}

// Calculator computes gap tables and sensitivities from an Aggregator's
// InterestRateGaps output.
type Calculator struct{}

// NewCalculator constructs a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute builds the Result from per-currency repricing gaps (as produced
// by aggregate.Aggregator) and a parallel shock in basis points.
func (c *Calculator) Compute(interestRateGaps map[string]map[bucket.Repricing]float64, shockBps float64) Result {
	s := shockBps / 10000.0

	res := Result{
		Gaps:        make(map[string]CurrencyGaps, len(interestRateGaps)),
		Sensitivity: make(map[string]Sensitivity, len(interestRateGaps)),
	}

	for currency, amounts := range interestRateGaps {
		rows := make(map[bucket.Repricing]BucketRow, len(bucket.RepricingOrder))

		totalRSA := 0.0
		for _, b := range bucket.RepricingOrder {
			amount := amounts[b]
			if amount > 0 {
				totalRSA += amount
			}
		}

		cumulative := 0.0
		nii := 0.0
		eve := 0.0
		breached := false

		for _, b := range bucket.RepricingOrder {
			amount := amounts[b]
			rsa := 0.0
			rsl := 0.0
			if amount > 0 {
				rsa = amount
			} else {
				rsl = -amount
			}
			gap := rsa - rsl

			gapRatio := 0.0
			if totalRSA != 0 {
				gapRatio = gap / totalRSA
			}

			cumulative += gap

			rows[b] = BucketRow{
				RSA:           rsa,
				RSL:           rsl,
				Gap:           gap,
				GapRatio:      gapRatio,
				CumulativeGap: cumulative,
			}

			if niiBuckets[b] {
				nii += gap
			}
			eve -= gap * bucket.EVEDurationMidpointYears(b)

			if absFloat(gapRatio) > gapLimitThreshold {
				breached = true
			}
		}

		res.Gaps[currency] = CurrencyGaps{Rows: rows}
		res.Sensitivity[currency] = Sensitivity{
			NIIImpact1Y:       nii * s,
			EVEImpact:         eve * s,
			GapLimitsBreached: breached,
		}
	}

	return res
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// FromAggregateResult is a convenience wrapper computing the Result
// directly off an aggregate.Result.
func FromAggregateResult(res aggregate.Result, shockBps float64) Result {
	c := NewCalculator()
	return c.Compute(res.InterestRateGaps, shockBps)
}

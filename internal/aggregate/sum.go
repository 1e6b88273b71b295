package aggregate

import "gonum.org/v1/gonum/floats"

// cumulativeSum returns the running sum of values in the given canonical
// order, using gonum's deterministic-order CumSum so the Aggregator's
// accumulation is reproducible regardless of map iteration order, per
// §4.6/§5's "sum reductions... commutative and associative up to floating
// point tolerance" requirement.
func cumulativeSum(values []float64) []float64 {
	dst := make([]float64, len(values))
	return floats.CumSum(dst, values)
}

// total returns the deterministic-order sum of values, used for the
// Aggregator's finalized scalar totals (net_position, fx_exposure_total).
func total(values []float64) float64 {
	return floats.Sum(values)
}

package irr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/alm-risk-engine/internal/bucket"
	"github.com/aristath/alm-risk-engine/internal/irr"
)

// TestComputeSeedScenario1 exercises spec.md seed scenario 1's repricing
// gaps: RUB 1000 in 6-12m (the loan), -600 in 1-3m (the deposit).
func TestComputeSeedScenario1(t *testing.T) {
	calc := irr.NewCalculator()
	gaps := map[string]map[bucket.Repricing]float64{
		"RUB": {
			bucket.Repricing1to3m:  -600,
			bucket.Repricing6to12m: 1000,
		},
	}

	res := calc.Compute(gaps, 0)

	rubRows := res.Gaps["RUB"].Rows
	assert.Equal(t, 600.0, rubRows[bucket.Repricing1to3m].RSL)
	assert.Equal(t, -600.0, rubRows[bucket.Repricing1to3m].Gap)
	assert.Equal(t, 1000.0, rubRows[bucket.Repricing6to12m].RSA)
	assert.Equal(t, 1000.0, rubRows[bucket.Repricing6to12m].Gap)

	// total_rsa = 1000; gap_ratio for 1-3m = -600/1000 = -0.6 -> breach
	assert.InDelta(t, -0.6, rubRows[bucket.Repricing1to3m].GapRatio, 1e-9)
	assert.True(t, res.Sensitivity["RUB"].GapLimitsBreached)

	// cumulative_gap after 6-12m = -600 + 1000 = 400
	assert.Equal(t, 400.0, rubRows[bucket.Repricing6to12m].CumulativeGap)
}

// TestSensitivityNIIAndEVE verifies the §4.8 sensitivity formulas under a
// 100bps parallel shock.
func TestSensitivityNIIAndEVE(t *testing.T) {
	calc := irr.NewCalculator()
	gaps := map[string]map[bucket.Repricing]float64{
		"RUB": {
			bucket.Repricing1to3m:  -600,
			bucket.Repricing6to12m: 1000,
		},
	}

	res := calc.Compute(gaps, 100)

	s := 100.0 / 10000.0
	wantNII := (-600.0 + 1000.0) * s
	assert.InDelta(t, wantNII, res.Sensitivity["RUB"].NIIImpact1Y, 1e-9)

	wantEVE := -((-600.0)*bucket.EVEDurationMidpointYears(bucket.Repricing1to3m) +
		1000.0*bucket.EVEDurationMidpointYears(bucket.Repricing6to12m)) * s
	assert.InDelta(t, wantEVE, res.Sensitivity["RUB"].EVEImpact, 1e-9)
}

// TestGapLimitNotBreachedWhenWithinThreshold verifies no breach is
// reported when |gap_ratio| stays within 0.20.
func TestGapLimitNotBreachedWhenWithinThreshold(t *testing.T) {
	calc := irr.NewCalculator()
	gaps := map[string]map[bucket.Repricing]float64{
		"USD": {
			bucket.Repricing0to1m: 100,
			bucket.Repricing1to3m: -10,
		},
	}

	res := calc.Compute(gaps, 0)
	assert.False(t, res.Sensitivity["USD"].GapLimitsBreached)
}

// TestZeroTotalRSAYieldsZeroGapRatio verifies the §4.8 zero-division
// guard: gap_ratio is 0 when total_rsa is 0.
func TestZeroTotalRSAYieldsZeroGapRatio(t *testing.T) {
	calc := irr.NewCalculator()
	gaps := map[string]map[bucket.Repricing]float64{
		"EUR": {
			bucket.Repricing0to1m: -50,
		},
	}

	res := calc.Compute(gaps, 0)
	assert.Equal(t, 0.0, res.Gaps["EUR"].Rows[bucket.Repricing0to1m].GapRatio)
}

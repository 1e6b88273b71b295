package bucket_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/alm-risk-engine/internal/bucket"
)

func d(days int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}

func TestAssignLiquidity(t *testing.T) {
	base := d(0)
	cases := []struct {
		days int
		want bucket.Liquidity
	}{
		{-5, bucket.LiquidityOvernight},
		{0, bucket.LiquidityOvernight},
		{1, bucket.LiquidityOvernight},
		{2, bucket.Liquidity2to7d},
		{7, bucket.Liquidity2to7d},
		{8, bucket.Liquidity8to14d},
		{14, bucket.Liquidity8to14d},
		{15, bucket.Liquidity15to30d},
		{30, bucket.Liquidity15to30d},
		{31, bucket.Liquidity30to90d},
		{90, bucket.Liquidity30to90d},
		{91, bucket.Liquidity90to180d},
		{180, bucket.Liquidity90to180d},
		{181, bucket.Liquidity180to365d},
		{365, bucket.Liquidity180to365d},
		{366, bucket.Liquidity1to2y},
		{730, bucket.Liquidity1to2y},
		{731, bucket.Liquidity2yPlus},
	}
	for _, c := range cases {
		got := bucket.AssignLiquidity(base, d(c.days))
		assert.Equalf(t, c.want, got, "days=%d", c.days)
	}
}

// TestAssignLiquidityTotality verifies I10: the liquidity bucket mapper
// never returns an undefined bucket for any pair of valid dates.
func TestAssignLiquidityTotality(t *testing.T) {
	base := d(0)
	for days := -100; days <= 5000; days++ {
		got := bucket.AssignLiquidity(base, d(days))
		assert.Contains(t, bucket.LiquidityOrder, got)
	}
}

func TestAssignRepricing(t *testing.T) {
	base := d(0)
	cases := []struct {
		days int
		want bucket.Repricing
		ok   bool
	}{
		{-1, "", false},
		{0, bucket.Repricing0to1m, true},
		{30, bucket.Repricing0to1m, true},
		{31, bucket.Repricing1to3m, true},
		{90, bucket.Repricing1to3m, true},
		{91, bucket.Repricing3to6m, true},
		{365, bucket.Repricing6to12m, true},
		{366, bucket.Repricing1to2y, true},
		{1095, bucket.Repricing2to3y, true},
		{1825, bucket.Repricing3to5y, true},
		{2555, bucket.Repricing5to7y, true},
		{3650, bucket.Repricing7to10y, true},
		{3651, bucket.Repricing10yPlus, true},
	}
	for _, c := range cases {
		got, ok := bucket.AssignRepricing(base, d(c.days))
		assert.Equalf(t, c.ok, ok, "days=%d", c.days)
		if c.ok {
			assert.Equalf(t, c.want, got, "days=%d", c.days)
		}
	}
}

func TestMidpointDaysCoversAllLiquidityBuckets(t *testing.T) {
	for _, b := range bucket.LiquidityOrder {
		assert.Greater(t, bucket.MidpointDays(b), 0)
		assert.Greater(t, bucket.HorizonDays(b), 0)
	}
}

func TestEVEDurationMidpointYearsCoversAllRepricingBuckets(t *testing.T) {
	for _, b := range bucket.RepricingOrder {
		assert.Greater(t, bucket.EVEDurationMidpointYears(b), 0.0)
	}
}

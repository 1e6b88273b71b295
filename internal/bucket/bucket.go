// Package bucket assigns (base, target) date pairs to named time buckets.
//
// Two bucket families are defined: liquidity buckets (used to aggregate
// cash flows) and repricing buckets (used to aggregate interest-rate-
// sensitive amounts). Boundaries are contracts, not configuration — see
// SPEC_FULL.md §10.2.
package bucket

import "time"

// Liquidity is a named liquidity (cash-flow) time bucket.
type Liquidity string

const (
	LiquidityOvernight Liquidity = "overnight"
	Liquidity2to7d     Liquidity = "2-7d"
	Liquidity8to14d    Liquidity = "8-14d"
	Liquidity15to30d   Liquidity = "15-30d"
	Liquidity30to90d   Liquidity = "30-90d"
	Liquidity90to180d  Liquidity = "90-180d"
	Liquidity180to365d Liquidity = "180-365d"
	Liquidity1to2y     Liquidity = "1-2y"
	Liquidity2yPlus    Liquidity = "2y+"
)

// LiquidityOrder is the canonical, deterministic iteration order over
// liquidity buckets used by the Aggregator and Survival Horizon Calculator.
var LiquidityOrder = []Liquidity{
	LiquidityOvernight,
	Liquidity2to7d,
	Liquidity8to14d,
	Liquidity15to30d,
	Liquidity30to90d,
	Liquidity90to180d,
	Liquidity180to365d,
	Liquidity1to2y,
	Liquidity2yPlus,
}

// liquidityMidpointDays is the bucket name → midpoint day table of §4.1,
// used to back-allocate run-off amounts to concrete dates.
var liquidityMidpointDays = map[Liquidity]int{
	LiquidityOvernight: 1,
	Liquidity2to7d:     4,
	Liquidity8to14d:    11,
	Liquidity15to30d:   22,
	Liquidity30to90d:   60,
	Liquidity90to180d:  135,
	Liquidity180to365d: 270,
	Liquidity1to2y:     548,
	Liquidity2yPlus:    1095,
}

// liquidityHorizonDays is the bucket name → representative day count used
// by the Aggregator to report a contribution-path survival horizon (§4.6).
var liquidityHorizonDays = map[Liquidity]int{
	LiquidityOvernight: 1,
	Liquidity2to7d:     7,
	Liquidity8to14d:    14,
	Liquidity15to30d:   30,
	Liquidity30to90d:   90,
	Liquidity90to180d:  180,
	Liquidity180to365d: 365,
	Liquidity1to2y:     730,
	Liquidity2yPlus:    1095,
}

// AssignLiquidity maps a (base, target) date pair to a liquidity bucket.
// Non-positive day differences map to overnight (§4.1); boundary days are
// inclusive of the lower bucket (OQ6).
func AssignLiquidity(base, target time.Time) Liquidity {
	days := daysBetween(base, target)
	switch {
	case days <= 1:
		return LiquidityOvernight
	case days <= 7:
		return Liquidity2to7d
	case days <= 14:
		return Liquidity8to14d
	case days <= 30:
		return Liquidity15to30d
	case days <= 90:
		return Liquidity30to90d
	case days <= 180:
		return Liquidity90to180d
	case days <= 365:
		return Liquidity180to365d
	case days <= 730:
		return Liquidity1to2y
	default:
		return Liquidity2yPlus
	}
}

// MidpointDays returns the representative day offset for a liquidity
// bucket, used to place run-off amounts at a concrete date.
func MidpointDays(b Liquidity) int {
	return liquidityMidpointDays[b]
}

// MidpointDate returns base + MidpointDays(b).
func MidpointDate(base time.Time, b Liquidity) time.Time {
	return base.AddDate(0, 0, liquidityMidpointDays[b])
}

// HorizonDays returns the representative day count used when reporting a
// survival horizon keyed by the first negative-cumulative bucket (§4.6).
func HorizonDays(b Liquidity) int {
	return liquidityHorizonDays[b]
}

// Repricing is a named interest-rate-repricing (IRR) bucket.
type Repricing string

const (
	Repricing0to1m   Repricing = "0-1m"
	Repricing1to3m   Repricing = "1-3m"
	Repricing3to6m   Repricing = "3-6m"
	Repricing6to12m  Repricing = "6-12m"
	Repricing1to2y   Repricing = "1-2y"
	Repricing2to3y   Repricing = "2-3y"
	Repricing3to5y   Repricing = "3-5y"
	Repricing5to7y   Repricing = "5-7y"
	Repricing7to10y  Repricing = "7-10y"
	Repricing10yPlus Repricing = "10y+"
)

// RepricingOrder is the canonical, deterministic iteration order over
// repricing buckets.
var RepricingOrder = []Repricing{
	Repricing0to1m,
	Repricing1to3m,
	Repricing3to6m,
	Repricing6to12m,
	Repricing1to2y,
	Repricing2to3y,
	Repricing3to5y,
	Repricing5to7y,
	Repricing7to10y,
	Repricing10yPlus,
}

// eveDurationMidpointYears is the fixed EVE bucket-midpoint duration table
// of §4.1, used by the IRR Gap Calculator's EVE-impact sensitivity.
var eveDurationMidpointYears = map[Repricing]float64{
	Repricing0to1m:   1.0 / 24.0,
	Repricing1to3m:   1.0 / 6.0,
	Repricing3to6m:   3.0 / 8.0,
	Repricing6to12m:  3.0 / 4.0,
	Repricing1to2y:   1.5,
	Repricing2to3y:   2.5,
	Repricing3to5y:   4.0,
	Repricing5to7y:   6.0,
	Repricing7to10y:  8.5,
	Repricing10yPlus: 12.0,
}

// EVEDurationMidpointYears returns the fixed bucket-midpoint duration (in
// years) used for EVE-impact sensitivity.
func EVEDurationMidpointYears(b Repricing) float64 {
	return eveDurationMidpointYears[b]
}

// AssignRepricing maps a (base, target) date pair to a repricing bucket.
// A negative day difference has no valid bucket: it signals the caller to
// discard the contribution from IRR aggregation (§4.1, OQ2).
func AssignRepricing(base, target time.Time) (b Repricing, ok bool) {
	days := daysBetween(base, target)
	if days < 0 {
		return "", false
	}
	switch {
	case days <= 30:
		return Repricing0to1m, true
	case days <= 90:
		return Repricing1to3m, true
	case days <= 180:
		return Repricing3to6m, true
	case days <= 365:
		return Repricing6to12m, true
	case days <= 730:
		return Repricing1to2y, true
	case days <= 1095:
		return Repricing2to3y, true
	case days <= 1825:
		return Repricing3to5y, true
	case days <= 2555:
		return Repricing5to7y, true
	case days <= 3650:
		return Repricing7to10y, true
	default:
		return Repricing10yPlus, true
	}
}

func daysBetween(base, target time.Time) int {
	b := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(b).Hours() / 24)
}

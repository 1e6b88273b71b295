// Package aggregate implements the Contribution Aggregator of spec.md
// §4.6: folding per-instrument contributions into liquidity gaps,
// interest-rate gaps, FX positions, and balance-sheet totals.
package aggregate

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/bucket"
	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/riskerr"
)

// defaultSurvivalHorizonDays is the fallback horizon when no bucket's
// cumulative gap ever turns negative, per §4.6 ("report 1095 / 3 years").
const defaultSurvivalHorizonDays = 1095

// Result is the Aggregator's output of §4.6/§6.
type Result struct {
	LiquidityGaps   map[string]map[bucket.Liquidity]float64
	CumulativeGaps  map[string]map[bucket.Liquidity]float64
	SurvivalHorizon map[string]int

	InterestRateGaps map[string]map[bucket.Repricing]float64

	RepricingGapTotal float64
	DV01Total         float64

	FXPositions     map[string]float64
	FXExposureTotal float64

	TotalAssets     float64
	TotalLiabilities float64
	NetPosition     float64

	SkippedCount int
	SkippedIDs   []string
}

// Aggregator computes a Result from a set of instruments as of cdate.
type Aggregator struct {
	params instrument.Params
	log    zerolog.Logger
}

// NewAggregator constructs an Aggregator. A zero zerolog.Logger defaults
// to no-op, per §10.1.
func NewAggregator(params instrument.Params, log zerolog.Logger) *Aggregator {
	return &Aggregator{params: params, log: log}
}

// Aggregate computes contributions for every instrument and folds them
// into a Result. Per-instrument Calculation failures are isolated: logged
// with context and excluded from the result, never aborting the batch
// (§7).
func (a *Aggregator) Aggregate(instruments []instrument.Instrument, cdate time.Time, assump map[string]assumptions.Set) Result {
	res := newResult()

	for _, inst := range instruments {
		id := inst.ID()
		as := assump[id]
		contrib, err := inst.ComputeContribution(cdate, a.params, as)
		if err != nil {
			wrapped := riskerr.NewCalculationError(id, string(inst.Type()), err)
			a.log.Warn().
				Str("instrument_id", id).
				Str("instrument_type", string(inst.Type())).
				Err(err).
				Msg(wrapped.Error())
			res.SkippedCount++
			res.SkippedIDs = append(res.SkippedIDs, id)
			continue
		}
		foldContribution(&res, contrib, cdate)
	}

	finalizeResult(&res)
	return res
}

func newResult() Result {
	return Result{
		LiquidityGaps:    make(map[string]map[bucket.Liquidity]float64),
		CumulativeGaps:   make(map[string]map[bucket.Liquidity]float64),
		SurvivalHorizon:  make(map[string]int),
		InterestRateGaps: make(map[string]map[bucket.Repricing]float64),
		FXPositions:      make(map[string]float64),
	}
}

// foldContribution merges one contribution into res, per §4.6. The
// currency assigned to the contribution's liquidity/IRR buckets is the
// first key of its currency_exposure map (deterministic: the contribution
// builder always adds the primary currency first for single-currency
// instruments).
func foldContribution(res *Result, c instrument.Contribution, cdate time.Time) {
	currency := primaryCurrency(c)

	if currency != "" {
		if res.LiquidityGaps[currency] == nil {
			res.LiquidityGaps[currency] = make(map[bucket.Liquidity]float64)
		}
		for b, amount := range c.CashFlows {
			res.LiquidityGaps[currency][b] += amount
		}

		if c.RepricingDate != nil {
			if rb, ok := bucket.AssignRepricing(cdate, *c.RepricingDate); ok {
				if res.InterestRateGaps[currency] == nil {
					res.InterestRateGaps[currency] = make(map[bucket.Repricing]float64)
				}
				res.InterestRateGaps[currency][rb] += c.RepricingAmount
			}
		}
	}

	res.RepricingGapTotal += c.RepricingAmount
	if c.DV01 != nil {
		res.DV01Total += *c.DV01
	}

	for ccy, amount := range c.CurrencyExposure {
		res.FXPositions[ccy] += amount
		if amount > 0 {
			res.TotalAssets += amount
		} else {
			res.TotalLiabilities += amount
		}
	}
}

// primaryCurrency returns the currency the Aggregator assigns this
// contribution's liquidity and repricing buckets to, per §4.6 ("the first
// key of its currency_exposure map") — tracked explicitly on Contribution
// since Go map iteration order is undefined.
func primaryCurrency(c instrument.Contribution) string {
	return c.PrimaryCurrency
}

func finalizeResult(res *Result) {
	for currency, gaps := range res.LiquidityGaps {
		ordered := make([]float64, len(bucket.LiquidityOrder))
		for i, b := range bucket.LiquidityOrder {
			ordered[i] = gaps[b]
		}
		cumOrdered := cumulativeSum(ordered)

		cum := make(map[bucket.Liquidity]float64, len(bucket.LiquidityOrder))
		horizon := -1
		for i, b := range bucket.LiquidityOrder {
			cum[b] = cumOrdered[i]
			if horizon == -1 && cumOrdered[i] < 0 {
				horizon = bucket.HorizonDays(b)
			}
		}
		res.CumulativeGaps[currency] = cum
		if horizon == -1 {
			horizon = defaultSurvivalHorizonDays
		}
		res.SurvivalHorizon[currency] = horizon
	}

	res.NetPosition = total([]float64{res.TotalAssets, res.TotalLiabilities})

	absExposures := make([]float64, 0, len(res.FXPositions))
	for _, amount := range res.FXPositions {
		if amount >= 0 {
			absExposures = append(absExposures, amount)
		} else {
			absExposures = append(absExposures, -amount)
		}
	}
	res.FXExposureTotal = total(absExposures)
}

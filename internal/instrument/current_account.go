package instrument

import (
	"time"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/bucket"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// CurrentAccount is a non-maturing transactional liability, per §3.2/§4.2.
type CurrentAccount struct {
	Base Common

	StablePortion *float64
	AvgLifeDays   *int
}

func (a *CurrentAccount) ID() string          { return a.Base.ID }
func (a *CurrentAccount) Type() Type          { return TypeCurrentAccount }
func (a *CurrentAccount) Currency() string    { return a.Base.Currency }
func (a *CurrentAccount) Book() riskenum.Book { return a.Base.Book() }
func (a *CurrentAccount) Common() Common      { return a.Base }

func (a *CurrentAccount) Clone() Instrument {
	cp := *a
	cloneCommonPointers(&cp.Base, &a.Base)
	if a.StablePortion != nil {
		v := *a.StablePortion
		cp.StablePortion = &v
	}
	if a.AvgLifeDays != nil {
		v := *a.AvgLifeDays
		cp.AvgLifeDays = &v
	}
	return &cp
}

// ComputeContribution implements the CurrentAccount contract of §4.2.
func (a *CurrentAccount) ComputeContribution(cdate time.Time, params Params, assump assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: a.Base.ID, InstrumentType: TypeCurrentAccount}

	stablePortion := params.CurrentAccountDefaultStablePortion
	if a.StablePortion != nil {
		stablePortion = *a.StablePortion
	} else if v, ok := assump.Float64("stable_portion"); ok {
		stablePortion = v
	}

	avgLifeDays := params.CurrentAccountDefaultAvgLifeDays
	if a.AvgLifeDays != nil {
		avgLifeDays = *a.AvgLifeDays
	} else if v, ok := assump.Float64("avg_life_days"); ok {
		avgLifeDays = int(v)
	}

	stable := a.Base.Amount * stablePortion
	unstable := a.Base.Amount - stable

	stableDate := cdate.AddDate(0, 0, avgLifeDays)
	c.RepricingDate = &stableDate
	c.RepricingAmount = stable

	var runoffRates map[bucket.Liquidity]float64
	if rr, ok := assump.BucketRateMap("runoff_rates"); ok {
		runoffRates = make(map[bucket.Liquidity]float64, len(rr))
		for k, v := range rr {
			runoffRates[bucket.Liquidity(k)] = v
		}
	}

	if len(runoffRates) > 0 {
		remaining := unstable
		for _, b := range bucket.LiquidityOrder {
			rate, ok := runoffRates[b]
			if !ok || rate == 0 {
				continue
			}
			withdrawn := remaining * rate
			c.AddCashFlow(b, withdrawn)
			remaining -= withdrawn
		}
		if remaining != 0 {
			c.AddCashFlow(bucket.AssignLiquidity(cdate, stableDate), remaining)
		}
	} else {
		unstableDate := cdate.AddDate(0, 0, 1)
		c.AddCashFlow(bucket.AssignLiquidity(cdate, unstableDate), unstable)
	}
	c.AddCashFlow(bucket.AssignLiquidity(cdate, stableDate), stable)

	c.AddCurrencyExposure(a.Base.Currency, a.Base.Amount)
	return c, nil
}

package instrument

import (
	"time"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/bucket"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// Deposit is a liability-side funding instrument, per §3.2/§4.2. Amount
// follows the canonical sign convention (§3.1): negative for a deposit.
// The resolver's OQ1 ambiguity — the source disagreed on whether
// repricing_amount carries a positive or negative sign for a deposit — is
// settled here by propagating Amount as stored, never re-negating it.
type Deposit struct {
	Base Common

	IsDemandDeposit bool
	CorePortion     *float64
	AvgLifeYears    *float64
	WithdrawalRates map[bucket.Liquidity]float64
}

func (d *Deposit) ID() string          { return d.Base.ID }
func (d *Deposit) Type() Type          { return TypeDeposit }
func (d *Deposit) Currency() string    { return d.Base.Currency }
func (d *Deposit) Book() riskenum.Book { return d.Base.Book() }
func (d *Deposit) Common() Common      { return d.Base }

func (d *Deposit) Clone() Instrument {
	cp := *d
	cloneCommonPointers(&cp.Base, &d.Base)
	if d.CorePortion != nil {
		v := *d.CorePortion
		cp.CorePortion = &v
	}
	if d.AvgLifeYears != nil {
		v := *d.AvgLifeYears
		cp.AvgLifeYears = &v
	}
	if d.WithdrawalRates != nil {
		cp.WithdrawalRates = make(map[bucket.Liquidity]float64, len(d.WithdrawalRates))
		for k, v := range d.WithdrawalRates {
			cp.WithdrawalRates[k] = v
		}
	}
	return &cp
}

// ComputeContribution implements the Deposit contract of §4.2.
func (d *Deposit) ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: d.Base.ID, InstrumentType: TypeDeposit}

	if d.IsDemandDeposit || d.Base.MaturityDate == nil {
		avgLifeYears := d.AvgLifeYears
		if avgLifeYears == nil {
			if y, ok := a.Float64("avg_life_years"); ok {
				avgLifeYears = &y
			} else if days, ok := a.Float64("avg_life_days"); ok {
				y := days / 365.25
				avgLifeYears = &y
			}
		}
		var repricing time.Time
		if avgLifeYears != nil {
			repricing = cdate.AddDate(0, 0, int(*avgLifeYears*365.25))
		} else {
			repricing = cdate.AddDate(0, 0, 1)
		}
		c.RepricingDate = &repricing

		corePortion := d.CorePortion
		if corePortion == nil {
			if cp, ok := a.Float64("core_portion"); ok {
				corePortion = &cp
			}
		}
		if corePortion != nil {
			c.RepricingAmount = d.Base.Amount * *corePortion
		} else {
			c.RepricingAmount = d.Base.Amount
		}

		withdrawalRates := d.WithdrawalRates
		if withdrawalRates == nil {
			if wr, ok := a.BucketRateMap("withdrawal_rates"); ok {
				withdrawalRates = make(map[bucket.Liquidity]float64, len(wr))
				for k, v := range wr {
					withdrawalRates[bucket.Liquidity(k)] = v
				}
			}
		}
		if len(withdrawalRates) > 0 {
			remaining := d.Base.Amount
			for _, b := range bucket.LiquidityOrder {
				rate, ok := withdrawalRates[b]
				if !ok || rate == 0 {
					continue
				}
				withdrawn := remaining * rate
				c.AddCashFlow(b, withdrawn)
				remaining -= withdrawn
			}
			residualYears := 3.0
			if avgLifeYears != nil {
				residualYears = *avgLifeYears
			}
			residualDate := cdate.AddDate(0, 0, int(residualYears*365.25))
			c.AddCashFlow(bucket.AssignLiquidity(cdate, residualDate), remaining)
		} else {
			outflowDate := cdate.AddDate(0, 0, 1)
			c.AddCashFlow(bucket.AssignLiquidity(cdate, outflowDate), d.Base.Amount)
		}
	} else {
		maturity := *d.Base.MaturityDate
		c.RepricingDate = &maturity
		c.RepricingAmount = d.Base.Amount

		if d.Base.InterestRate != nil {
			years := YearsBetween(cdate, maturity)
			modDuration := years / (1 + *d.Base.InterestRate)
			dv01 := d.Base.Amount * modDuration * 0.0001
			c.Duration = &years
			c.ModifiedDuration = &modDuration
			c.DV01 = &dv01
		}

		if !maturity.Before(cdate) {
			c.AddCashFlow(bucket.AssignLiquidity(cdate, maturity), d.Base.Amount)
		}
	}

	c.AddCurrencyExposure(d.Base.Currency, d.Base.Amount)
	return c, nil
}

package instrument

import (
	"math"
	"time"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/bucket"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// Bond is an asset-side fixed-income security, per §3.2/§4.2.
type Bond struct {
	Base Common

	ISIN            string
	NominalValue    *float64
	Quantity        *float64
	CouponRate      *float64
	CouponFrequency *int // days between coupons
	DateClose       *time.Time
}

func (b *Bond) ID() string          { return b.Base.ID }
func (b *Bond) Type() Type          { return TypeBond }
func (b *Bond) Currency() string    { return b.Base.Currency }
func (b *Bond) Book() riskenum.Book { return b.Base.Book() }
func (b *Bond) Common() Common      { return b.Base }

func (b *Bond) Clone() Instrument {
	cp := *b
	cloneCommonPointers(&cp.Base, &b.Base)
	if b.NominalValue != nil {
		v := *b.NominalValue
		cp.NominalValue = &v
	}
	if b.Quantity != nil {
		v := *b.Quantity
		cp.Quantity = &v
	}
	if b.CouponRate != nil {
		v := *b.CouponRate
		cp.CouponRate = &v
	}
	if b.CouponFrequency != nil {
		v := *b.CouponFrequency
		cp.CouponFrequency = &v
	}
	if b.DateClose != nil {
		v := *b.DateClose
		cp.DateClose = &v
	}
	return &cp
}

// ComputeContribution implements the Bond contract of §4.2. Per OQ2, a
// bond whose maturity has already passed contributes nothing: no cash
// flows, no repricing, no IRR gap — matured paper carries no forward
// interest-rate or liquidity risk.
func (b *Bond) ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: b.Base.ID, InstrumentType: TypeBond}

	if b.Base.MaturityDate == nil || b.Base.MaturityDate.Before(cdate) {
		c.AddCurrencyExposure(b.Base.Currency, 0)
		return c, nil
	}
	maturity := *b.Base.MaturityDate

	repricingDate := b.DateClose
	if repricingDate == nil {
		repricingDate = &maturity
	}
	c.RepricingDate = repricingDate
	c.RepricingAmount = b.Base.Amount

	redemption := b.Base.Amount
	if b.NominalValue != nil && b.Quantity != nil {
		redemption = *b.NominalValue * *b.Quantity
	}

	type flow struct {
		date   time.Time
		amount float64
	}
	var flows []flow

	hasCoupon := b.CouponRate != nil && b.CouponFrequency != nil && *b.CouponFrequency > 0
	if hasCoupon && b.NominalValue != nil {
		couponAmount := *b.NominalValue * *b.CouponRate * (float64(*b.CouponFrequency) / 365.0)
		if b.Quantity != nil {
			couponAmount *= *b.Quantity
		}
		for d := b.Base.StartDate.AddDate(0, 0, *b.CouponFrequency); !d.After(maturity); d = d.AddDate(0, 0, *b.CouponFrequency) {
			if d.Before(cdate) {
				continue
			}
			flows = append(flows, flow{date: d, amount: couponAmount})
		}
	}
	flows = append(flows, flow{date: maturity, amount: redemption})

	for _, f := range flows {
		c.AddCashFlow(bucket.AssignLiquidity(cdate, f.date), f.amount)
	}

	yield := 0.0
	if b.CouponRate != nil {
		yield = *b.CouponRate
	} else if b.Base.InterestRate != nil {
		yield = *b.Base.InterestRate
	}

	var duration float64
	if hasCoupon {
		var weightedPV, totalPV float64
		for _, f := range flows {
			t := YearsBetween(cdate, f.date)
			pv := f.amount / pow1p(yield, t)
			weightedPV += t * pv
			totalPV += pv
		}
		if totalPV != 0 {
			duration = weightedPV / totalPV
		}
	} else {
		duration = YearsBetween(cdate, maturity)
	}
	modDuration := duration / (1 + yield)
	dv01 := b.Base.Amount * modDuration * 0.0001
	c.Duration = &duration
	c.ModifiedDuration = &modDuration
	c.DV01 = &dv01

	c.AddCurrencyExposure(b.Base.Currency, b.Base.Amount)
	return c, nil
}

// pow1p returns (1+rate)^years, guarding the degenerate rate == -1 case.
func pow1p(rate, years float64) float64 {
	base := 1 + rate
	if base <= 0 {
		return 1
	}
	return math.Pow(base, years)
}

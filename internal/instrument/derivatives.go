package instrument

import (
	"time"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/bucket"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// depositMarginMidTermHorizonDays is the fixed mid-term liquidity horizon
// used for a DepositMargin, per §4.2's "asset with mid-term liquidity".
const depositMarginMidTermHorizonDays = 180

// RateSwap is the shared shape of IRS and OIS, per §4.2's "IRS, OIS
// mirror the swap logic" note: repricing at settlement (falling back to
// maturity), signed by IsPayer, duration approximated as years-to-
// settlement.
type RateSwap struct {
	Base           Common
	kind           Type
	NotionalAmount float64
	IsPayer        bool
	SettlementDate *time.Time
}

// NewIRS constructs an interest-rate swap record.
func NewIRS(base Common, notional float64, isPayer bool, settlement *time.Time) *RateSwap {
	return &RateSwap{Base: base, kind: TypeIRS, NotionalAmount: notional, IsPayer: isPayer, SettlementDate: settlement}
}

// NewOIS constructs an overnight-index swap record.
func NewOIS(base Common, notional float64, isPayer bool, settlement *time.Time) *RateSwap {
	return &RateSwap{Base: base, kind: TypeOIS, NotionalAmount: notional, IsPayer: isPayer, SettlementDate: settlement}
}

func (s *RateSwap) ID() string          { return s.Base.ID }
func (s *RateSwap) Type() Type          { return s.kind }
func (s *RateSwap) Currency() string    { return s.Base.Currency }
func (s *RateSwap) Book() riskenum.Book { return s.Base.Book() }
func (s *RateSwap) Common() Common      { return s.Base }

func (s *RateSwap) Clone() Instrument {
	cp := *s
	cloneCommonPointers(&cp.Base, &s.Base)
	if s.SettlementDate != nil {
		v := *s.SettlementDate
		cp.SettlementDate = &v
	}
	return &cp
}

func (s *RateSwap) ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: s.Base.ID, InstrumentType: s.kind}

	settlement := s.SettlementDate
	if settlement == nil {
		settlement = s.Base.MaturityDate
	}
	sign := 1.0
	if s.IsPayer {
		sign = -1.0
	}
	if settlement != nil {
		c.RepricingDate = settlement
		c.RepricingAmount = sign * s.NotionalAmount
		years := YearsBetween(cdate, *settlement)
		dv01 := sign * s.NotionalAmount * years * 0.0001
		c.Duration = &years
		c.DV01 = &dv01
	}
	c.AddCurrencyExposure(s.Base.Currency, sign*s.NotionalAmount)
	return c, nil
}

// FxSwap exchanges two currencies near-dated and reverses far-dated,
// per §3.2/§4.2: two-leg FX exposures, a near cash flow and a far cash
// flow.
type FxSwap struct {
	Base Common

	NearDate           time.Time
	FarDate            time.Time
	PayLegCurrency     string
	ReceiveLegCurrency string
	NearPayAmount      float64
	NearReceiveAmount  float64
}

func (f *FxSwap) ID() string          { return f.Base.ID }
func (f *FxSwap) Type() Type          { return TypeFxSwap }
func (f *FxSwap) Currency() string    { return f.Base.Currency }
func (f *FxSwap) Book() riskenum.Book { return f.Base.Book() }
func (f *FxSwap) Common() Common      { return f.Base }

func (f *FxSwap) Clone() Instrument {
	cp := *f
	cloneCommonPointers(&cp.Base, &f.Base)
	return &cp
}

func (f *FxSwap) ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: f.Base.ID, InstrumentType: TypeFxSwap}

	c.AddCashFlow(bucket.AssignLiquidity(cdate, f.NearDate), -f.NearPayAmount)
	c.AddCashFlow(bucket.AssignLiquidity(cdate, f.NearDate), f.NearReceiveAmount)
	c.AddCashFlow(bucket.AssignLiquidity(cdate, f.FarDate), f.NearPayAmount)
	c.AddCashFlow(bucket.AssignLiquidity(cdate, f.FarDate), -f.NearReceiveAmount)

	c.RepricingDate = &f.FarDate
	c.AddCurrencyExposure(f.PayLegCurrency, -f.NearPayAmount)
	c.AddCurrencyExposure(f.ReceiveLegCurrency, f.NearReceiveAmount)
	return c, nil
}

// Futures is an exchange-traded contract settling at expiry, per
// §3.2/§4.2.
type Futures struct {
	Base       Common
	Notional   float64
	ExpiryDate time.Time
}

func (fu *Futures) ID() string          { return fu.Base.ID }
func (fu *Futures) Type() Type          { return TypeFutures }
func (fu *Futures) Currency() string    { return fu.Base.Currency }
func (fu *Futures) Book() riskenum.Book { return fu.Base.Book() }
func (fu *Futures) Common() Common      { return fu.Base }

func (fu *Futures) Clone() Instrument {
	cp := *fu
	cloneCommonPointers(&cp.Base, &fu.Base)
	return &cp
}

func (fu *Futures) ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: fu.Base.ID, InstrumentType: TypeFutures}
	c.RepricingDate = &fu.ExpiryDate
	c.RepricingAmount = fu.Notional
	c.AddCashFlow(bucket.AssignLiquidity(cdate, fu.ExpiryDate), fu.Notional)
	c.AddCurrencyExposure(fu.Base.Currency, fu.Notional)
	return c, nil
}

// TOM ("tomorrow") is a T+1-settling money-market instrument, per
// §3.2/§4.2.
type TOM struct {
	Base Common
}

func (t *TOM) ID() string          { return t.Base.ID }
func (t *TOM) Type() Type          { return TypeTOM }
func (t *TOM) Currency() string    { return t.Base.Currency }
func (t *TOM) Book() riskenum.Book { return t.Base.Book() }
func (t *TOM) Common() Common      { return t.Base }

func (t *TOM) Clone() Instrument {
	cp := *t
	cloneCommonPointers(&cp.Base, &t.Base)
	return &cp
}

func (t *TOM) ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: t.Base.ID, InstrumentType: TypeTOM}
	settlement := cdate.AddDate(0, 0, 1)
	c.RepricingDate = &settlement
	c.RepricingAmount = t.Base.Amount
	c.AddCashFlow(bucket.AssignLiquidity(cdate, settlement), t.Base.Amount)
	c.AddCurrencyExposure(t.Base.Currency, t.Base.Amount)
	return c, nil
}

// DepositMargin is a collateral/margin asset, per §3.2/§4.2: an asset
// with a fixed mid-term liquidity horizon rather than a market maturity.
type DepositMargin struct {
	Base Common
}

func (d *DepositMargin) ID() string          { return d.Base.ID }
func (d *DepositMargin) Type() Type          { return TypeDepositMargin }
func (d *DepositMargin) Currency() string    { return d.Base.Currency }
func (d *DepositMargin) Book() riskenum.Book { return d.Base.Book() }
func (d *DepositMargin) Common() Common      { return d.Base }

func (d *DepositMargin) Clone() Instrument {
	cp := *d
	cloneCommonPointers(&cp.Base, &d.Base)
	return &cp
}

func (d *DepositMargin) ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: d.Base.ID, InstrumentType: TypeDepositMargin}
	date := cdate.AddDate(0, 0, depositMarginMidTermHorizonDays)
	c.RepricingDate = &date
	c.RepricingAmount = d.Base.Amount
	c.AddCashFlow(bucket.AssignLiquidity(cdate, date), d.Base.Amount)
	c.AddCurrencyExposure(d.Base.Currency, d.Base.Amount)
	return c, nil
}

// Forward is an outright FX forward, per §3.2/§4.2 (distinct from the
// OffBalance forward subtype — this is a standalone derivative record).
type Forward struct {
	Base               Common
	SettlementDate     time.Time
	PayLegCurrency     string
	ReceiveLegCurrency string
	PayLegAmount       float64
	ReceiveLegAmount   float64
}

func (f *Forward) ID() string          { return f.Base.ID }
func (f *Forward) Type() Type          { return TypeForward }
func (f *Forward) Currency() string    { return f.Base.Currency }
func (f *Forward) Book() riskenum.Book { return f.Base.Book() }
func (f *Forward) Common() Common      { return f.Base }

func (f *Forward) Clone() Instrument {
	cp := *f
	cloneCommonPointers(&cp.Base, &f.Base)
	return &cp
}

func (f *Forward) ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: f.Base.ID, InstrumentType: TypeForward}
	c.RepricingDate = &f.SettlementDate
	c.AddCashFlow(bucket.AssignLiquidity(cdate, f.SettlementDate), -f.PayLegAmount)
	c.AddCashFlow(bucket.AssignLiquidity(cdate, f.SettlementDate), f.ReceiveLegAmount)
	c.AddCurrencyExposure(f.PayLegCurrency, -f.PayLegAmount)
	c.AddCurrencyExposure(f.ReceiveLegCurrency, f.ReceiveLegAmount)
	return c, nil
}

// XCCY is a cross-currency swap, per §3.2/§4.2: two opposite currency
// exposures and repricing at settlement.
type XCCY struct {
	Base            Common
	SettlementDate  time.Time
	PayCurrency     string
	ReceiveCurrency string
	Notional        float64
}

func (x *XCCY) ID() string          { return x.Base.ID }
func (x *XCCY) Type() Type          { return TypeXCCY }
func (x *XCCY) Currency() string    { return x.Base.Currency }
func (x *XCCY) Book() riskenum.Book { return x.Base.Book() }
func (x *XCCY) Common() Common      { return x.Base }

func (x *XCCY) Clone() Instrument {
	cp := *x
	cloneCommonPointers(&cp.Base, &x.Base)
	return &cp
}

func (x *XCCY) ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: x.Base.ID, InstrumentType: TypeXCCY}
	c.RepricingDate = &x.SettlementDate
	c.RepricingAmount = x.Notional
	c.AddCashFlow(bucket.AssignLiquidity(cdate, x.SettlementDate), x.Notional)
	c.AddCurrencyExposure(x.PayCurrency, -x.Notional)
	c.AddCurrencyExposure(x.ReceiveCurrency, x.Notional)
	return c, nil
}

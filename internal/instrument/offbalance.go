package instrument

import (
	"time"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/bucket"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// OffBalanceKind is the off_balance_type tag of §3.2.
type OffBalanceKind string

const (
	OffBalanceGuarantee  OffBalanceKind = "guarantee"
	OffBalanceCreditLine OffBalanceKind = "credit_line"
	OffBalanceForward    OffBalanceKind = "forward"
	OffBalanceSwap       OffBalanceKind = "swap"
	OffBalanceOption     OffBalanceKind = "option"
	OffBalanceOther      OffBalanceKind = "other"
)

// offBalanceOptionDelta is the placeholder option delta of OQ4: it is
// not a pricing surface, only a rough liquidity-exposure placeholder.
const offBalanceOptionDelta = 0.5

// OffBalance is a contingent, off-balance-sheet commitment or derivative
// leg, per §3.2/§4.2.
type OffBalance struct {
	Base Common

	OffBalanceKind      OffBalanceKind
	NotionalAmount       float64
	UtilizedAmount       *float64
	AvailableAmount      *float64
	DrawDownProbability  *float64
	SettlementDate       *time.Time
	ExpiryDate           *time.Time
	PayLegCurrency       string
	ReceiveLegCurrency   string
	PayLegAmount         *float64
	ReceiveLegAmount     *float64
	IsPayer              bool
}

func (o *OffBalance) ID() string          { return o.Base.ID }
func (o *OffBalance) Type() Type          { return TypeOffBalance }
func (o *OffBalance) Currency() string    { return o.Base.Currency }
func (o *OffBalance) Book() riskenum.Book { return o.Base.Book() }
func (o *OffBalance) Common() Common      { return o.Base }

func (o *OffBalance) Clone() Instrument {
	cp := *o
	cloneCommonPointers(&cp.Base, &o.Base)
	if o.UtilizedAmount != nil {
		v := *o.UtilizedAmount
		cp.UtilizedAmount = &v
	}
	if o.AvailableAmount != nil {
		v := *o.AvailableAmount
		cp.AvailableAmount = &v
	}
	if o.DrawDownProbability != nil {
		v := *o.DrawDownProbability
		cp.DrawDownProbability = &v
	}
	if o.SettlementDate != nil {
		v := *o.SettlementDate
		cp.SettlementDate = &v
	}
	if o.ExpiryDate != nil {
		v := *o.ExpiryDate
		cp.ExpiryDate = &v
	}
	if o.PayLegAmount != nil {
		v := *o.PayLegAmount
		cp.PayLegAmount = &v
	}
	if o.ReceiveLegAmount != nil {
		v := *o.ReceiveLegAmount
		cp.ReceiveLegAmount = &v
	}
	return &cp
}

// ComputeContribution implements the OffBalance contract of §4.2,
// dispatching on OffBalanceKind.
func (o *OffBalance) ComputeContribution(cdate time.Time, params Params, assump assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: o.Base.ID, InstrumentType: TypeOffBalance}

	switch o.OffBalanceKind {
	case OffBalanceGuarantee, OffBalanceCreditLine:
		base := o.NotionalAmount
		if o.AvailableAmount != nil {
			base = *o.AvailableAmount
		}
		prob := params.OffBalanceDefaultDrawDownProbability
		if o.DrawDownProbability != nil {
			prob = *o.DrawDownProbability
		}
		expectedOutflow := base * prob

		var date time.Time
		switch {
		case o.SettlementDate != nil:
			date = *o.SettlementDate
		case o.ExpiryDate != nil:
			days := int(o.ExpiryDate.Sub(cdate).Hours() / 24 / 2)
			date = cdate.AddDate(0, 0, days)
		default:
			date = cdate.AddDate(0, 0, 30)
		}
		c.RepricingDate = &date
		c.RepricingAmount = -expectedOutflow
		c.AddCashFlow(bucket.AssignLiquidity(cdate, date), -expectedOutflow)
		c.AddCurrencyExposure(o.Base.Currency, -expectedOutflow)
		return c, nil

	case OffBalanceForward:
		if o.PayLegAmount != nil && o.PayLegCurrency != "" {
			c.AddCurrencyExposure(o.PayLegCurrency, -*o.PayLegAmount)
		}
		if o.ReceiveLegAmount != nil && o.ReceiveLegCurrency != "" {
			c.AddCurrencyExposure(o.ReceiveLegCurrency, *o.ReceiveLegAmount)
		}
		return c, nil

	case OffBalanceSwap:
		settlement := o.SettlementDate
		if settlement == nil {
			settlement = o.Base.MaturityDate
		}
		sign := 1.0
		if o.IsPayer {
			sign = -1.0
		}
		if settlement != nil {
			c.RepricingDate = settlement
			c.RepricingAmount = sign * o.NotionalAmount
			years := YearsBetween(cdate, *settlement)
			dv01 := sign * o.NotionalAmount * years * 0.0001
			c.Duration = &years
			c.DV01 = &dv01
		}
		c.AddCurrencyExposure(o.Base.Currency, sign*o.NotionalAmount)
		return c, nil

	case OffBalanceOption:
		deltaExposure := o.NotionalAmount * offBalanceOptionDelta
		if o.ExpiryDate != nil {
			c.RepricingDate = o.ExpiryDate
			c.AddCashFlow(bucket.AssignLiquidity(cdate, *o.ExpiryDate), deltaExposure)
		}
		c.RepricingAmount = deltaExposure
		c.AddCurrencyExposure(o.Base.Currency, deltaExposure)
		return c, nil

	default:
		return c, nil
	}
}

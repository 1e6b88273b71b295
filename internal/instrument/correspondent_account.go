package instrument

import (
	"time"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/bucket"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// CorrespondentAccountType is the nostro/loro/central-bank classification
// of §3.2.
type CorrespondentAccountType string

const (
	CorrespondentNostro              CorrespondentAccountType = "nostro"
	CorrespondentLoro                CorrespondentAccountType = "loro"
	CorrespondentCBRRequiredReserve  CorrespondentAccountType = "cbr_required_reserve"
	CorrespondentCBROperational      CorrespondentAccountType = "cbr_operational"
)

// CorrespondentAccount is a nostro/loro/central-bank settlement account,
// per §3.2/§4.2.
type CorrespondentAccount struct {
	Base Common

	AccountType         CorrespondentAccountType
	NostroStablePortion *float64
}

func (a *CorrespondentAccount) ID() string          { return a.Base.ID }
func (a *CorrespondentAccount) Type() Type          { return TypeCorrespondentAccount }
func (a *CorrespondentAccount) Currency() string    { return a.Base.Currency }
func (a *CorrespondentAccount) Book() riskenum.Book { return a.Base.Book() }
func (a *CorrespondentAccount) Common() Common      { return a.Base }

func (a *CorrespondentAccount) Clone() Instrument {
	cp := *a
	cloneCommonPointers(&cp.Base, &a.Base)
	if a.NostroStablePortion != nil {
		v := *a.NostroStablePortion
		cp.NostroStablePortion = &v
	}
	return &cp
}

// ComputeContribution implements the CorrespondentAccount contract of
// §4.2, dispatching on AccountType.
func (a *CorrespondentAccount) ComputeContribution(cdate time.Time, params Params, assump assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: a.Base.ID, InstrumentType: TypeCorrespondentAccount}

	switch a.AccountType {
	case CorrespondentCBRRequiredReserve:
		date := cdate.AddDate(0, 0, params.CBRRequiredReserveHorizonDays)
		c.RepricingDate = &date
		c.RepricingAmount = a.Base.Amount
		c.AddCashFlow(bucket.AssignLiquidity(cdate, date), -a.Base.Amount)

	case CorrespondentCBROperational, CorrespondentNostro:
		operationalDate := cdate.AddDate(0, 0, 1)
		if a.NostroStablePortion != nil {
			stable := a.Base.Amount * *a.NostroStablePortion
			unstable := a.Base.Amount - stable
			stableDate := cdate.AddDate(0, 0, params.NostroStableHorizonDays)
			c.AddCashFlow(bucket.AssignLiquidity(cdate, operationalDate), unstable)
			c.AddCashFlow(bucket.AssignLiquidity(cdate, stableDate), stable)
			c.RepricingDate = &stableDate
		} else {
			c.AddCashFlow(bucket.AssignLiquidity(cdate, operationalDate), a.Base.Amount)
			c.RepricingDate = &operationalDate
		}
		c.RepricingAmount = a.Base.Amount

	case CorrespondentLoro:
		date := cdate.AddDate(0, 0, params.LoroRunoffDays)
		c.RepricingDate = &date
		c.RepricingAmount = a.Base.Amount
		c.AddCashFlow(bucket.AssignLiquidity(cdate, date), a.Base.Amount)
	}

	c.AddCurrencyExposure(a.Base.Currency, a.Base.Amount)
	return c, nil
}

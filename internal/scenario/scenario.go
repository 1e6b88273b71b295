// Package scenario implements the Scenario Stressor of spec.md §4.5: a
// pure, deep-copy-then-mutate transform that applies a rate shock,
// deposit run-off, and credit-line draw-down to a portfolio.
package scenario

import (
	"github.com/aristath/alm-risk-engine/internal/instrument"
)

// Parameters is scenario S of §4.5.
type Parameters struct {
	Name                  string
	InterestRateShockBps  map[string]float64 // currency -> shock bps
	DepositRunoffPct      float64            // percent, e.g. 50 == 50%
	CreditLineDrawdownPct float64            // percent
	FXShockPct            map[string]float64 // carried into result metadata only, §4.5 last line
}

// Stressor applies Parameters to a portfolio. It owns the deep copies it
// produces and is the only component in the kernel permitted to mutate
// them, per §5.
type Stressor struct{}

// NewStressor constructs a Stressor. It has no state: grounded on §5's
// "no shared mutable state inside the core" design constraint.
func NewStressor() *Stressor {
	return &Stressor{}
}

// Apply deep-copies every instrument and applies, in order, the rate
// shock, deposit run-off, and credit-line draw-down steps of §4.5.
func (s *Stressor) Apply(instruments []instrument.Instrument, p Parameters) []instrument.Instrument {
	out := make([]instrument.Instrument, len(instruments))
	for i, inst := range instruments {
		out[i] = s.applyOne(inst, p)
	}
	return out
}

func (s *Stressor) applyOne(inst instrument.Instrument, p Parameters) instrument.Instrument {
	cp := inst.Clone()
	common := cp.Common()

	if common.InterestRate != nil {
		if shockBps, ok := p.InterestRateShockBps[common.Currency]; ok {
			applyRateShock(cp, shockBps)
		}
	}

	if d, isDeposit := cp.(*instrument.Deposit); isDeposit && p.DepositRunoffPct > 0 {
		d.Base.Amount *= 1 - p.DepositRunoffPct/100
	}

	if ob, isOffBalance := cp.(*instrument.OffBalance); isOffBalance && ob.AvailableAmount != nil && p.CreditLineDrawdownPct > 0 {
		drawn := *ob.AvailableAmount * p.CreditLineDrawdownPct / 100
		newAvailable := *ob.AvailableAmount - drawn
		ob.AvailableAmount = &newAvailable
		utilized := 0.0
		if ob.UtilizedAmount != nil {
			utilized = *ob.UtilizedAmount
		}
		newUtilized := utilized + drawn
		ob.UtilizedAmount = &newUtilized
	}

	return cp
}

// applyRateShock mutates the instrument's InterestRate in place by
// shockBps/10000, per §4.5 step 1. Every variant embeds its rate pointer
// inside Common, so mutating through the interface's exported Base field
// requires a type switch over the variants that carry one.
func applyRateShock(inst instrument.Instrument, shockBps float64) {
	switch v := inst.(type) {
	case *instrument.Loan:
		bumpRate(&v.Base, shockBps)
	case *instrument.Deposit:
		bumpRate(&v.Base, shockBps)
	case *instrument.InterbankLoan:
		bumpRate(&v.Base, shockBps)
	case *instrument.Repo:
		bumpRate(&v.Base, shockBps)
	case *instrument.ReverseRepo:
		bumpRate(&v.Base, shockBps)
	case *instrument.Bond:
		bumpRate(&v.Base, shockBps)
	case *instrument.CurrentAccount:
		bumpRate(&v.Base, shockBps)
	case *instrument.CorrespondentAccount:
		bumpRate(&v.Base, shockBps)
	case *instrument.OtherAsset:
		bumpRate(&v.Base, shockBps)
	case *instrument.OtherLiability:
		bumpRate(&v.Base, shockBps)
	case *instrument.OffBalance:
		bumpRate(&v.Base, shockBps)
	case *instrument.RateSwap:
		bumpRate(&v.Base, shockBps)
	case *instrument.FxSwap:
		bumpRate(&v.Base, shockBps)
	case *instrument.Futures:
		bumpRate(&v.Base, shockBps)
	case *instrument.TOM:
		bumpRate(&v.Base, shockBps)
	case *instrument.DepositMargin:
		bumpRate(&v.Base, shockBps)
	case *instrument.Forward:
		bumpRate(&v.Base, shockBps)
	case *instrument.XCCY:
		bumpRate(&v.Base, shockBps)
	}
}

func bumpRate(c *instrument.Common, shockBps float64) {
	if c.InterestRate == nil {
		return
	}
	newRate := *c.InterestRate + shockBps/10000
	c.InterestRate = &newRate
}

package instrument

import (
	"time"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/bucket"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// Repo is a collateralized borrowing (liability), per §3.2/§4.2: a bullet
// obligation to repurchase the collateral at maturity.
type Repo struct {
	Base           Common
	RepoRate       *float64
	CollateralType string
}

func (r *Repo) ID() string          { return r.Base.ID }
func (r *Repo) Type() Type          { return TypeRepo }
func (r *Repo) Currency() string    { return r.Base.Currency }
func (r *Repo) Book() riskenum.Book { return r.Base.Book() }
func (r *Repo) Common() Common      { return r.Base }

func (r *Repo) Clone() Instrument {
	cp := *r
	cloneCommonPointers(&cp.Base, &r.Base)
	if r.RepoRate != nil {
		v := *r.RepoRate
		cp.RepoRate = &v
	}
	return &cp
}

func (r *Repo) ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error) {
	return computeBulletContribution(r.Base, TypeRepo, cdate)
}

// ReverseRepo is a collateralized placement (asset), per §3.2/§4.2: cash
// returns at maturity against the collateral posted by the counterparty.
type ReverseRepo struct {
	Base           Common
	RepoRate       *float64
	CollateralType string
}

func (r *ReverseRepo) ID() string          { return r.Base.ID }
func (r *ReverseRepo) Type() Type          { return TypeReverseRepo }
func (r *ReverseRepo) Currency() string    { return r.Base.Currency }
func (r *ReverseRepo) Book() riskenum.Book { return r.Base.Book() }
func (r *ReverseRepo) Common() Common      { return r.Base }

func (r *ReverseRepo) Clone() Instrument {
	cp := *r
	cloneCommonPointers(&cp.Base, &r.Base)
	if r.RepoRate != nil {
		v := *r.RepoRate
		cp.RepoRate = &v
	}
	return &cp
}

func (r *ReverseRepo) ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error) {
	return computeBulletContribution(r.Base, TypeReverseRepo, cdate)
}

// computeBulletContribution is the shared bullet-at-maturity contribution
// shape used by InterbankLoan, Repo and ReverseRepo: repricing and the
// single cash flow both take the instrument's own signed Amount, so a
// Repo's liability (negative) repurchase obligation and a ReverseRepo's
// asset (positive) cash return fall out of the same formula.
func computeBulletContribution(c Common, t Type, cdate time.Time) (Contribution, error) {
	out := Contribution{InstrumentID: c.ID, InstrumentType: t}
	out.RepricingAmount = c.Amount
	if c.MaturityDate != nil {
		maturity := *c.MaturityDate
		out.RepricingDate = &maturity
		if !maturity.Before(cdate) {
			out.AddCashFlow(bucket.AssignLiquidity(cdate, maturity), c.Amount)
		}
		if c.InterestRate != nil {
			years := YearsBetween(cdate, maturity)
			modDuration := years / (1 + *c.InterestRate)
			dv01 := c.Amount * modDuration * 0.0001
			out.Duration = &years
			out.ModifiedDuration = &modDuration
			out.DV01 = &dv01
		}
	}
	out.AddCurrencyExposure(c.Currency, c.Amount)
	return out, nil
}

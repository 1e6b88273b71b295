package instrument

import (
	"sort"
	"time"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/bucket"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// Loan is an asset-side bullet or amortizing credit exposure, per §3.2/§4.2.
type Loan struct {
	Base Common

	RepricingDateOverride *time.Time
	RepaymentSchedule     map[time.Time]float64
	PrepaymentRate        *float64
	IsFix                 bool
}

func (l *Loan) ID() string           { return l.Base.ID }
func (l *Loan) Type() Type           { return TypeLoan }
func (l *Loan) Currency() string     { return l.Base.Currency }
func (l *Loan) Book() riskenum.Book  { return l.Base.Book() }
func (l *Loan) Common() Common       { return l.Base }

func (l *Loan) Clone() Instrument {
	cp := *l
	cloneCommonPointers(&cp.Base, &l.Base)
	if l.RepricingDateOverride != nil {
		d := *l.RepricingDateOverride
		cp.RepricingDateOverride = &d
	}
	if l.PrepaymentRate != nil {
		p := *l.PrepaymentRate
		cp.PrepaymentRate = &p
	}
	if l.RepaymentSchedule != nil {
		cp.RepaymentSchedule = make(map[time.Time]float64, len(l.RepaymentSchedule))
		for d, a := range l.RepaymentSchedule {
			cp.RepaymentSchedule[d] = a
		}
	}
	return &cp
}

// ComputeContribution implements the Loan contract of §4.2. Prepayment is
// deliberately not modeled: OQ5 leaves its reduction model open, so
// PrepaymentRate, if set, is carried on the instrument but unused here.
func (l *Loan) ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: l.Base.ID, InstrumentType: TypeLoan}

	repricingDate := l.RepricingDateOverride
	if repricingDate == nil {
		repricingDate = l.Base.MaturityDate
	}
	c.RepricingDate = repricingDate
	c.RepricingAmount = l.Base.Amount

	if l.Base.MaturityDate != nil && l.Base.InterestRate != nil {
		years := YearsBetween(cdate, *l.Base.MaturityDate)
		duration := years
		modDuration := duration / (1 + *l.Base.InterestRate)
		dv01 := l.Base.Amount * modDuration * 0.0001
		c.Duration = &duration
		c.ModifiedDuration = &modDuration
		c.DV01 = &dv01
	}

	if len(l.RepaymentSchedule) > 0 {
		dates := make([]time.Time, 0, len(l.RepaymentSchedule))
		for d := range l.RepaymentSchedule {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		for _, d := range dates {
			if d.Before(cdate) {
				continue
			}
			b := bucket.AssignLiquidity(cdate, d)
			c.AddCashFlow(b, l.RepaymentSchedule[d])
		}
	} else if l.Base.MaturityDate != nil && !l.Base.MaturityDate.Before(cdate) {
		b := bucket.AssignLiquidity(cdate, *l.Base.MaturityDate)
		c.AddCashFlow(b, l.Base.Amount)
	}

	c.AddCurrencyExposure(l.Base.Currency, l.Base.Amount)
	return c, nil
}

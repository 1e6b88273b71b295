package instrument

import (
	"time"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// InterbankLoan is a bullet money-market placement or borrowing, per
// §3.2/§4.2. IsPlacement is carried as loaded and is not derived here;
// the contribution reads the direction from the sign of Amount, since a
// placement is always carried as an asset.
type InterbankLoan struct {
	Base        Common
	IsPlacement bool
}

func (i *InterbankLoan) ID() string          { return i.Base.ID }
func (i *InterbankLoan) Type() Type          { return TypeInterbankLoan }
func (i *InterbankLoan) Currency() string    { return i.Base.Currency }
func (i *InterbankLoan) Book() riskenum.Book { return i.Base.Book() }
func (i *InterbankLoan) Common() Common      { return i.Base }

func (i *InterbankLoan) Clone() Instrument {
	cp := *i
	cloneCommonPointers(&cp.Base, &i.Base)
	return &cp
}

// ComputeContribution implements the InterbankLoan contract of §4.2: a
// single bullet cash flow and repricing at maturity. The sign of Amount
// (asset placement positive, liability borrowing negative) already
// tracks IsPlacement, so the shared bullet formula applies unmodified.
func (i *InterbankLoan) ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error) {
	return computeBulletContribution(i.Base, TypeInterbankLoan, cdate)
}

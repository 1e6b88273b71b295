package elasticity

import (
	"time"

	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// Classifier determines the (segment, deposit type) pair used to look up
// elasticity parameters for a deposit, per §4.4 step 1.
type Classifier func(d *instrument.Deposit, cdate time.Time) (riskenum.CustomerSegment, riskenum.DepositType)

// DefaultClassifier derives segment from CounterpartyType (defaulting to
// retail when unset) and deposit type from IsDemandDeposit/MaturityDate,
// mirroring the original's _determine_customer_segment/_determine_deposit_type.
func DefaultClassifier(d *instrument.Deposit, cdate time.Time) (riskenum.CustomerSegment, riskenum.DepositType) {
	segment := riskenum.SegmentRetail
	switch d.Base.CounterpartyType {
	case riskenum.CounterpartyCorporate:
		segment = riskenum.SegmentCorporate
	case riskenum.CounterpartySME:
		segment = riskenum.SegmentSME
	case riskenum.CounterpartyGovernment:
		segment = riskenum.SegmentGovernment
	case riskenum.CounterpartyBank, riskenum.CounterpartyCentralBank:
		segment = riskenum.SegmentBank
	case riskenum.CounterpartyRetail:
		segment = riskenum.SegmentRetail
	}

	if d.IsDemandDeposit {
		return segment, riskenum.DepositDemand
	}
	if d.Base.MaturityDate == nil {
		return segment, riskenum.DepositDemand
	}
	daysToMaturity := int(d.Base.MaturityDate.Sub(cdate).Hours() / 24)
	switch {
	case daysToMaturity <= 90:
		return segment, riskenum.DepositShortTerm
	case daysToMaturity <= 365:
		return segment, riskenum.DepositMediumTerm
	default:
		return segment, riskenum.DepositLongTerm
	}
}

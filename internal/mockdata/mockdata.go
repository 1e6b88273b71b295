// Package mockdata generates a deterministic sample portfolio for local
// development and demos, per SPEC_FULL.md §12. Instrument IDs are
// generated from a seeded UUID source so repeated runs with the same
// seed produce byte-identical output.
package mockdata

import (
	"time"

	"github.com/google/uuid"

	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// Generator builds a sample portfolio from a deterministic UUID stream.
type Generator struct {
	rand *uuidSource
}

// New constructs a Generator seeded for reproducible IDs. The same seed
// always yields the same sequence of instrument IDs.
func New(seed int64) *Generator {
	return &Generator{rand: newUUIDSource(seed)}
}

// Portfolio generates a small, representative mixed portfolio as of
// cdate: a fixed-rate loan, a demand deposit, a term deposit, a bond,
// and an interbank placement.
func (g *Generator) Portfolio(cdate time.Time) []instrument.Instrument {
	loanRate := 0.12
	loanMaturity := cdate.AddDate(2, 0, 0)
	loan := &instrument.Loan{Base: instrument.Common{
		ID:               g.nextID(),
		InstrumentType:   instrument.TypeLoan,
		BalanceAccount:   "45201",
		Amount:           5_000_000,
		Currency:         "RUB",
		StartDate:        cdate,
		AsOfDate:         cdate,
		MaturityDate:     &loanMaturity,
		InterestRate:     &loanRate,
		CounterpartyType: riskenum.CounterpartyRetail,
	}}

	demandRate := 0.01
	demandDeposit := &instrument.Deposit{
		Base: instrument.Common{
			ID:               g.nextID(),
			InstrumentType:   instrument.TypeDeposit,
			BalanceAccount:   "42301",
			Amount:           -2_000_000,
			Currency:         "RUB",
			StartDate:        cdate,
			AsOfDate:         cdate,
			InterestRate:     &demandRate,
			CounterpartyType: riskenum.CounterpartyRetail,
		},
		IsDemandDeposit: true,
	}

	termRate := 0.08
	termMaturity := cdate.AddDate(0, 6, 0)
	termDeposit := &instrument.Deposit{
		Base: instrument.Common{
			ID:               g.nextID(),
			InstrumentType:   instrument.TypeDeposit,
			BalanceAccount:   "42302",
			Amount:           -3_000_000,
			Currency:         "RUB",
			StartDate:        cdate,
			AsOfDate:         cdate,
			MaturityDate:     &termMaturity,
			InterestRate:     &termRate,
			CounterpartyType: riskenum.CounterpartyCorporate,
		},
	}

	couponRate := 0.09
	nominal := 1_000_000.0
	couponFreq := 182
	bondMaturity := cdate.AddDate(3, 0, 0)
	bond := &instrument.Bond{
		Base: instrument.Common{
			ID:             g.nextID(),
			InstrumentType: instrument.TypeBond,
			BalanceAccount: "50101",
			Amount:         1_000_000,
			Currency:       "USD",
			StartDate:      cdate,
			AsOfDate:       cdate,
			MaturityDate:   &bondMaturity,
			InterestRate:   &couponRate,
		},
		ISIN:            "RU000A0ZZZZ1",
		NominalValue:    &nominal,
		CouponRate:      &couponRate,
		CouponFrequency: &couponFreq,
	}

	interbankRate := 0.15
	interbankMaturity := cdate.AddDate(0, 0, 30)
	interbank := &instrument.InterbankLoan{
		Base: instrument.Common{
			ID:               g.nextID(),
			InstrumentType:   instrument.TypeInterbankLoan,
			BalanceAccount:   "32001",
			Amount:           500_000,
			Currency:         "RUB",
			StartDate:        cdate,
			AsOfDate:         cdate,
			MaturityDate:     &interbankMaturity,
			InterestRate:     &interbankRate,
			CounterpartyType: riskenum.CounterpartyBank,
		},
		IsPlacement: true,
	}

	return []instrument.Instrument{loan, demandDeposit, termDeposit, bond, interbank}
}

func (g *Generator) nextID() string {
	return g.rand.next().String()
}

// uuidSource produces a deterministic sequence of UUID values from a
// seeded xorshift generator, so mock portfolios are reproducible without
// depending on crypto/rand. The 16 bytes are raw generator output; the
// version and variant bits are not set.
type uuidSource struct {
	state uint64
}

func newUUIDSource(seed int64) *uuidSource {
	s := uint64(seed)
	if s == 0 {
		s = 0x9e3779b97f4a7c15
	}
	return &uuidSource{state: s}
}

func (s *uuidSource) next() uuid.UUID {
	var b [16]byte
	for i := 0; i < 2; i++ {
		s.state ^= s.state << 13
		s.state ^= s.state >> 7
		s.state ^= s.state << 17
		for j := 0; j < 8; j++ {
			b[i*8+j] = byte(s.state >> (8 * j))
		}
	}
	id, _ := uuid.FromBytes(b[:])
	return id
}

package scenario_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/scenario"
)

func baselinePortfolio() []instrument.Instrument {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	loanMaturity := cdate.AddDate(1, 0, 0)
	loanRate := 0.10
	loan := &instrument.Loan{Base: instrument.Common{
		ID: "L1", InstrumentType: instrument.TypeLoan, Amount: 1000, Currency: "RUB",
		StartDate: cdate, AsOfDate: cdate, MaturityDate: &loanMaturity, InterestRate: &loanRate,
	}}

	depositMaturity := cdate.AddDate(0, 0, 90)
	depositRate := 0.05
	deposit := &instrument.Deposit{Base: instrument.Common{
		ID: "D1", InstrumentType: instrument.TypeDeposit, Amount: -600, Currency: "RUB",
		StartDate: cdate, AsOfDate: cdate, MaturityDate: &depositMaturity, InterestRate: &depositRate,
	}}

	return []instrument.Instrument{loan, deposit}
}

// TestStressorDepositRunoff exercises seed scenario 2.
func TestStressorDepositRunoff(t *testing.T) {
	s := scenario.NewStressor()
	out := s.Apply(baselinePortfolio(), scenario.Parameters{DepositRunoffPct: 50})

	d := out[1].(*instrument.Deposit)
	assert.Equal(t, -300.0, d.Base.Amount)
}

// TestStressorRateShock exercises seed scenario 3.
func TestStressorRateShock(t *testing.T) {
	s := scenario.NewStressor()
	out := s.Apply(baselinePortfolio(), scenario.Parameters{
		InterestRateShockBps: map[string]float64{"RUB": 100},
	})

	loan := out[0].(*instrument.Loan)
	deposit := out[1].(*instrument.Deposit)
	require.NotNil(t, loan.Base.InterestRate)
	require.NotNil(t, deposit.Base.InterestRate)
	assert.InDelta(t, 0.11, *loan.Base.InterestRate, 1e-9)
	assert.InDelta(t, 0.06, *deposit.Base.InterestRate, 1e-9)
}

// TestStressorZeroShockIsNoOp verifies I7: a zero-shock scenario leaves
// every instrument's economically meaningful fields unchanged.
func TestStressorZeroShockIsNoOp(t *testing.T) {
	original := baselinePortfolio()
	s := scenario.NewStressor()
	out := s.Apply(original, scenario.Parameters{
		InterestRateShockBps: map[string]float64{"RUB": 0},
	})

	for i := range original {
		assert.Equal(t, original[i].Common(), out[i].Common())
		assert.NotSame(t, original[i], out[i])
	}
}

// TestStressorCreditLineDrawdown exercises §4.5 step 3.
func TestStressorCreditLineDrawdown(t *testing.T) {
	available := 1000.0
	ob := &instrument.OffBalance{
		Base:            instrument.Common{ID: "G1", InstrumentType: instrument.TypeOffBalance, Currency: "USD"},
		OffBalanceKind:  instrument.OffBalanceCreditLine,
		NotionalAmount:  1000,
		AvailableAmount: &available,
	}
	s := scenario.NewStressor()
	out := s.Apply([]instrument.Instrument{ob}, scenario.Parameters{CreditLineDrawdownPct: 30})

	stressed := out[0].(*instrument.OffBalance)
	require.NotNil(t, stressed.AvailableAmount)
	require.NotNil(t, stressed.UtilizedAmount)
	assert.InDelta(t, 700.0, *stressed.AvailableAmount, 1e-9)
	assert.InDelta(t, 300.0, *stressed.UtilizedAmount, 1e-9)
}

package instrument_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/instrument"
)

// TestLoanSeedScenario exercises seed scenario 1 of spec.md §8's loan leg.
func TestLoanSeedScenario(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	maturity := cdate.AddDate(1, 0, 0)
	rate := 0.10

	loan := &instrument.Loan{Base: instrument.Common{
		ID: "L1", InstrumentType: instrument.TypeLoan, Amount: 1000, Currency: "RUB",
		StartDate: cdate, AsOfDate: cdate, MaturityDate: &maturity, InterestRate: &rate,
	}}

	contrib, err := loan.ComputeContribution(cdate, instrument.DefaultParams(), assumptions.Set{})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, contrib.RepricingAmount)
	require.NotNil(t, contrib.RepricingDate)
	assert.True(t, contrib.RepricingDate.Equal(maturity))
	assert.Equal(t, 1000.0, contrib.CurrencyExposure["RUB"])
}

// TestDepositSeedScenario exercises seed scenario 1's deposit leg.
func TestDepositSeedScenario(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	maturity := cdate.AddDate(0, 0, 90)
	rate := 0.05

	d := &instrument.Deposit{Base: instrument.Common{
		ID: "D1", InstrumentType: instrument.TypeDeposit, Amount: -600, Currency: "RUB",
		StartDate: cdate, AsOfDate: cdate, MaturityDate: &maturity, InterestRate: &rate,
	}}

	contrib, err := d.ComputeContribution(cdate, instrument.DefaultParams(), assumptions.Set{})
	require.NoError(t, err)
	assert.Equal(t, -600.0, contrib.RepricingAmount)
	assert.Equal(t, -600.0, contrib.CurrencyExposure["RUB"])
	require.NotNil(t, contrib.RepricingDate)
	assert.True(t, contrib.RepricingDate.Equal(maturity))
}

// TestDepositRunoffScenario exercises seed scenario 2: the deposit has
// already been reduced to 300 by the Stressor before contribution.
func TestDepositRunoffScenario(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	maturity := cdate.AddDate(0, 0, 90)
	rate := 0.05

	d := &instrument.Deposit{Base: instrument.Common{
		ID: "D1", InstrumentType: instrument.TypeDeposit, Amount: -300, Currency: "RUB",
		StartDate: cdate, AsOfDate: cdate, MaturityDate: &maturity, InterestRate: &rate,
	}}

	contrib, err := d.ComputeContribution(cdate, instrument.DefaultParams(), assumptions.Set{})
	require.NoError(t, err)
	assert.Equal(t, -300.0, contrib.RepricingAmount)
}

// TestDepositDemandWithdrawalRates exercises the demand-deposit path
// with no withdrawal rates supplied: the whole amount reprices at
// avg_life_years from cdate.
func TestDepositDemandWithdrawalRates(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	avgLife := 2.0

	d := &instrument.Deposit{
		Base: instrument.Common{
			ID: "D2", InstrumentType: instrument.TypeDeposit, Amount: -1000, Currency: "RUB",
			StartDate: cdate, AsOfDate: cdate,
		},
		IsDemandDeposit: true,
		AvgLifeYears:    &avgLife,
	}

	contrib, err := d.ComputeContribution(cdate, instrument.DefaultParams(), assumptions.Set{})
	require.NoError(t, err)
	assert.Equal(t, -1000.0, contrib.RepricingAmount)
	require.NotNil(t, contrib.RepricingDate)
	assert.True(t, contrib.RepricingDate.Equal(cdate.AddDate(2, 0, 0)))
}

// TestBondExcludedAfterMaturity verifies OQ2: a matured bond contributes
// nothing.
func TestBondExcludedAfterMaturity(t *testing.T) {
	cdate := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	maturity := cdate.AddDate(0, 0, -10)

	b := &instrument.Bond{Base: instrument.Common{
		ID: "B1", InstrumentType: instrument.TypeBond, Amount: 1000, Currency: "USD",
		StartDate: cdate.AddDate(-1, 0, 0), AsOfDate: cdate, MaturityDate: &maturity,
	}}

	contrib, err := b.ComputeContribution(cdate, instrument.DefaultParams(), assumptions.Set{})
	require.NoError(t, err)
	assert.Nil(t, contrib.RepricingDate)
	assert.Equal(t, 0.0, contrib.RepricingAmount)
	assert.Empty(t, contrib.CashFlows)
}

// TestBondZeroCouponDuration verifies OQ3's zero-coupon rule: duration
// equals years-to-maturity when no coupon is set.
func TestBondZeroCouponDuration(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	maturity := cdate.AddDate(5, 0, 0)
	nominal := 1000.0

	b := &instrument.Bond{
		Base: instrument.Common{
			ID: "ZCB1", InstrumentType: instrument.TypeBond, Amount: 1000, Currency: "USD",
			StartDate: cdate, AsOfDate: cdate, MaturityDate: &maturity,
		},
		NominalValue: &nominal,
	}

	contrib, err := b.ComputeContribution(cdate, instrument.DefaultParams(), assumptions.Set{})
	require.NoError(t, err)
	require.NotNil(t, contrib.Duration)
	assert.InDelta(t, 5.0, *contrib.Duration, 0.01)
}

// TestOffBalanceGuaranteeExpectedOutflow exercises the default
// draw-down-probability path of §4.2's guarantee/credit_line rule.
func TestOffBalanceGuaranteeExpectedOutflow(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ob := &instrument.OffBalance{
		Base:           instrument.Common{ID: "G1", InstrumentType: instrument.TypeOffBalance, Currency: "USD", AsOfDate: cdate, StartDate: cdate},
		OffBalanceKind: instrument.OffBalanceGuarantee,
		NotionalAmount: 1000,
	}

	contrib, err := ob.ComputeContribution(cdate, instrument.DefaultParams(), assumptions.Set{})
	require.NoError(t, err)
	assert.Equal(t, -500.0, contrib.RepricingAmount)
	assert.Equal(t, -500.0, contrib.CurrencyExposure["USD"])
	require.NotNil(t, contrib.RepricingDate)
	assert.True(t, contrib.RepricingDate.Equal(cdate.AddDate(0, 0, 30)))
}

// TestInterbankLoanSignTracksPlacement verifies that a liability-side
// interbank borrowing (negative Amount) produces a negative contribution
// without any separate IsPlacement branching.
func TestInterbankLoanSignTracksPlacement(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	maturity := cdate.AddDate(0, 0, 30)

	borrowing := &instrument.InterbankLoan{
		Base: instrument.Common{
			ID: "IB1", InstrumentType: instrument.TypeInterbankLoan, Amount: -500, Currency: "USD",
			StartDate: cdate, AsOfDate: cdate, MaturityDate: &maturity,
		},
	}
	contrib, err := borrowing.ComputeContribution(cdate, instrument.DefaultParams(), assumptions.Set{})
	require.NoError(t, err)
	assert.Equal(t, -500.0, contrib.RepricingAmount)
	var total float64
	for _, v := range contrib.CashFlows {
		total += v
	}
	assert.Equal(t, -500.0, total)
}

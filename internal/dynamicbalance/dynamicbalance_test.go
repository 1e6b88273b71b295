package dynamicbalance_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/aristath/alm-risk-engine/internal/aggregate"
	"github.com/aristath/alm-risk-engine/internal/dynamicbalance"
	"github.com/aristath/alm-risk-engine/internal/elasticity"
	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

func portfolio() []instrument.Instrument {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	loanMaturity := cdate.AddDate(1, 0, 0)
	loanRate := 0.10
	loan := &instrument.Loan{Base: instrument.Common{
		ID: "L1", InstrumentType: instrument.TypeLoan, Amount: 1000, Currency: "RUB",
		StartDate: cdate, AsOfDate: cdate, MaturityDate: &loanMaturity, InterestRate: &loanRate,
	}}

	depositRate := 0.05
	deposit := &instrument.Deposit{Base: instrument.Common{
		ID: "D1", InstrumentType: instrument.TypeDeposit, Amount: -600, Currency: "RUB",
		StartDate: cdate, AsOfDate: cdate, InterestRate: &depositRate,
	}}

	return []instrument.Instrument{loan, deposit}
}

func newOrchestrator() *dynamicbalance.Orchestrator {
	agg := aggregate.NewAggregator(instrument.DefaultParams(), zerolog.Nop())

	table := elasticity.Table{
		riskenum.SegmentRetail: {
			riskenum.DepositDemand: elasticity.Parameters{
				BaseElasticity:    -0.5,
				AdjustmentSpeed:   1,
				CompetitiveFactor: 1,
			},
		},
	}
	engine := elasticity.NewEngine(table, nil, zerolog.Nop())

	return dynamicbalance.New(agg, engine, instrument.DefaultParams())
}

// TestRunZeroShockIsNoOp verifies §4.9's invariant: a zero rate-shock
// input produces zero deposit changes and equal static/dynamic outputs.
func TestRunZeroShockIsNoOp(t *testing.T) {
	orch := newOrchestrator()
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	res := orch.Run(portfolio(), cdate, nil, map[string]float64{"RUB": 0})

	assert.Empty(t, res.DepositChanges)
	for _, d := range res.BucketDeltas {
		assert.Equal(t, 0.0, d.Delta)
	}
	for _, d := range res.SensitivityDeltas {
		assert.Equal(t, 0.0, d.NIIImpactDelta)
		assert.Equal(t, 0.0, d.EVEImpactDelta)
	}
}

// TestRunNonZeroShockProducesDepositChanges verifies a nonzero shock
// drives the Elasticity Engine and yields a volume change for the deposit.
func TestRunNonZeroShockProducesDepositChanges(t *testing.T) {
	orch := newOrchestrator()
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	res := orch.Run(portfolio(), cdate, nil, map[string]float64{"RUB": 100})

	assert.NotEmpty(t, res.DepositChanges)
	assert.Equal(t, "D1", res.DepositChanges[0].InstrumentID)
}

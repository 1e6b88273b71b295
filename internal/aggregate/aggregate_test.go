package aggregate_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/alm-risk-engine/internal/aggregate"
	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/bucket"
	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

func seedScenario1() []instrument.Instrument {
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

// TestAggregateSeedScenario1 exercises spec.md seed scenario 1.
func TestAggregateSeedScenario1(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	agg := aggregate.NewAggregator(instrument.DefaultParams(), zerolog.Nop())

	res := agg.Aggregate(seedScenario1(), cdate, nil)

	assert.Equal(t, 400.0, res.FXPositions["RUB"])
	assert.Equal(t, 400.0, res.RepricingGapTotal)
	assert.Equal(t, 400.0, res.NetPosition)
	assert.Equal(t, 1000.0, res.TotalAssets)
	assert.Equal(t, -600.0, res.TotalLiabilities)

	require.Contains(t, res.InterestRateGaps, "RUB")
	assert.Equal(t, 1000.0, res.InterestRateGaps["RUB"][bucket.Repricing6to12m])
	assert.Equal(t, -600.0, res.InterestRateGaps["RUB"][bucket.Repricing1to3m])
}

// TestAggregateLinearity verifies I3: aggregating a disjoint union
// equals the componentwise sum of aggregating each part.
func TestAggregateLinearity(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	agg := aggregate.NewAggregator(instrument.DefaultParams(), zerolog.Nop())

	instruments := seedScenario1()
	whole := agg.Aggregate(instruments, cdate, nil)
	partA := agg.Aggregate(instruments[:1], cdate, nil)
	partB := agg.Aggregate(instruments[1:], cdate, nil)

	assert.InDelta(t, whole.RepricingGapTotal, partA.RepricingGapTotal+partB.RepricingGapTotal, 1e-9)
	assert.InDelta(t, whole.NetPosition, partA.NetPosition+partB.NetPosition, 1e-9)
	assert.InDelta(t, whole.FXPositions["RUB"], partA.FXPositions["RUB"]+partB.FXPositions["RUB"], 1e-9)
}

// TestAggregateSkipsCalculationFailure verifies §7's isolate-and-continue
// policy using a degenerate instrument that errors.
func TestAggregateSkipsCalculationFailure(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	agg := aggregate.NewAggregator(instrument.DefaultParams(), zerolog.Nop())

	good := seedScenario1()[:1]
	instruments := append(good, &failingInstrument{id: "BAD"})

	res := agg.Aggregate(instruments, cdate, nil)
	assert.Equal(t, 1, res.SkippedCount)
	assert.Equal(t, []string{"BAD"}, res.SkippedIDs)
	assert.Equal(t, 1000.0, res.TotalAssets)
}

// TestAggregateRepricingBucketClosure verifies I2: a repricing date that
// precedes cdate maps to no valid bucket and is discarded from
// InterestRateGaps, never inserted under an undefined bucket key.
func TestAggregateRepricingBucketClosure(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	maturedDate := cdate.AddDate(0, 0, -10)
	rate := 0.1
	matured := &instrument.Loan{Base: instrument.Common{
		ID: "M1", InstrumentType: instrument.TypeLoan, Amount: 500, Currency: "RUB",
		StartDate: maturedDate, AsOfDate: cdate, MaturityDate: &maturedDate, InterestRate: &rate,
	}}

	agg := aggregate.NewAggregator(instrument.DefaultParams(), zerolog.Nop())
	res := agg.Aggregate([]instrument.Instrument{matured}, cdate, nil)

	assert.Equal(t, 500.0, res.FXPositions["RUB"])
	for _, gaps := range res.InterestRateGaps {
		for b := range gaps {
			assert.Contains(t, bucket.RepricingOrder, b)
		}
	}
	assert.NotContains(t, res.InterestRateGaps, "RUB")
}

type failingInstrument struct {
	id string
}

func (f *failingInstrument) ID() string                   { return f.id }
func (f *failingInstrument) Type() instrument.Type        { return instrument.TypeOther }
func (f *failingInstrument) Currency() string             { return "USD" }
func (f *failingInstrument) Book() riskenum.Book           { return riskenum.BookBanking }
func (f *failingInstrument) Clone() instrument.Instrument  { return f }
func (f *failingInstrument) Common() instrument.Common    { return instrument.Common{ID: f.id} }
func (f *failingInstrument) ComputeContribution(cdate time.Time, params instrument.Params, a assumptions.Set) (instrument.Contribution, error) {
	return instrument.Contribution{}, assert.AnError
}

package instrument_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// TestBookDerivesFromTradingPortfolioPrefix verifies I8: book == TRADING
// iff trading_portfolio is not null and begins with the exact literal
// "TRADING_".
func TestBookDerivesFromTradingPortfolioPrefix(t *testing.T) {
	c := instrument.Common{TradingPortfolio: "TRADING_FX_DESK"}
	assert.Equal(t, riskenum.BookTrading, c.Book())

	c2 := instrument.Common{TradingPortfolio: "RETAIL_BOOK"}
	assert.Equal(t, riskenum.BookBanking, c2.Book())

	c3 := instrument.Common{}
	assert.Equal(t, riskenum.BookBanking, c3.Book())
}

func TestBookOverrideWins(t *testing.T) {
	override := riskenum.BookTrading
	c := instrument.Common{TradingPortfolio: "RETAIL_BOOK", BookOverride: &override}
	assert.Equal(t, riskenum.BookTrading, c.Book())
}

func TestIsAsset(t *testing.T) {
	assert.True(t, instrument.Common{Amount: 100}.IsAsset())
	assert.False(t, instrument.Common{Amount: -100}.IsAsset())
	assert.False(t, instrument.Common{Amount: 0}.IsAsset())
}

func TestDaysToMaturity(t *testing.T) {
	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mat := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	c := instrument.Common{AsOfDate: asOf, MaturityDate: &mat}
	days, ok := c.DaysToMaturity(asOf)
	assert.True(t, ok)
	assert.Equal(t, 30, days)

	c2 := instrument.Common{AsOfDate: asOf}
	_, ok = c2.DaysToMaturity(asOf)
	assert.False(t, ok)
}

func TestYearsBetweenAndAddYears(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	target := base.AddDate(1, 0, 0)
	years := instrument.YearsBetween(base, target)
	assert.InDelta(t, 1.0, years, 0.01)

	rebuilt := instrument.AddYears(base, 2.0)
	assert.Equal(t, base.AddDate(0, 0, 730), rebuilt)
}

func TestDefaultParams(t *testing.T) {
	p := instrument.DefaultParams()
	assert.Equal(t, 0.3, p.CurrentAccountDefaultStablePortion)
	assert.Equal(t, 180, p.CurrentAccountDefaultAvgLifeDays)
	assert.Equal(t, 365, p.CBRRequiredReserveHorizonDays)
	assert.Equal(t, 90, p.NostroStableHorizonDays)
	assert.Equal(t, 7, p.LoroRunoffDays)
	assert.Equal(t, 365, p.OtherAssetFixedAssetHorizonDays)
	assert.Equal(t, 0.5, p.OtherAssetFixedAssetHaircut)
	assert.Equal(t, 0.5, p.OffBalanceDefaultDrawDownProbability)
}

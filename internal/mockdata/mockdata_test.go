package mockdata_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/alm-risk-engine/internal/mockdata"
)

func TestPortfolioIsDeterministicForASeed(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	a := mockdata.New(42).Portfolio(cdate)
	b := mockdata.New(42).Portfolio(cdate)

	require.Len(t, a, len(b))
	for i := range a {
		assert.Equal(t, a[i].ID(), b[i].ID())
	}
}

func TestPortfolioDifferentSeedsYieldDifferentIDs(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	a := mockdata.New(1).Portfolio(cdate)
	b := mockdata.New(2).Portfolio(cdate)

	assert.NotEqual(t, a[0].ID(), b[0].ID())
}

func TestPortfolioContainsExpectedMix(t *testing.T) {
	cdate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	instruments := mockdata.New(7).Portfolio(cdate)

	require.Len(t, instruments, 5)
	assert.Equal(t, "loan", string(instruments[0].Type()))
	assert.Equal(t, "deposit", string(instruments[1].Type()))
}

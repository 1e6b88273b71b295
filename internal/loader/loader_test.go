package loader_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/loader"
)

const csvFixture = `id,balance_account,instrument_type,amount,currency,start_date,as_of_date,maturity_date,interest_rate,is_demand_deposit
L1,45201,,1000,RUB,2026-01-01,2026-01-01,2027-01-01,0.10,
D1,42301,,-600,RUB,2026-01-01,2026-01-01,,0.05,true
BAD1,,,not_a_number,RUB,2026-01-01,2026-01-01,,,
`

func TestLoadClassifiesByPrefixAndParsesRows(t *testing.T) {
	patterns := loader.PatternTable{
		"452": instrument.TypeLoan,
		"423": instrument.TypeDeposit,
	}
	l := loader.New(patterns)

	rep, err := l.Load(strings.NewReader(csvFixture))
	require.NoError(t, err)

	require.Len(t, rep.Instruments, 2)
	require.Len(t, rep.Skipped, 1)

	loan, ok := rep.Instruments[0].(*instrument.Loan)
	require.True(t, ok)
	assert.Equal(t, "L1", loan.Base.ID)
	assert.Equal(t, 1000.0, loan.Base.Amount)

	deposit, ok := rep.Instruments[1].(*instrument.Deposit)
	require.True(t, ok)
	assert.True(t, deposit.IsDemandDeposit)
	assert.Equal(t, -600.0, deposit.Base.Amount)
}

func TestLoadExplicitInstrumentTypeOverridesPrefix(t *testing.T) {
	csvData := "id,balance_account,instrument_type,amount,currency,start_date,as_of_date\n" +
		"X1,452999,deposit,-50,RUB,2026-01-01,2026-01-01\n"
	patterns := loader.PatternTable{"452": instrument.TypeLoan}
	l := loader.New(patterns)

	rep, err := l.Load(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rep.Instruments, 1)
	_, isDeposit := rep.Instruments[0].(*instrument.Deposit)
	assert.True(t, isDeposit)
}

func TestLoadUnmatchedPrefixFallsBackToOtherBySign(t *testing.T) {
	csvData := "id,balance_account,instrument_type,amount,currency,start_date,as_of_date\n" +
		"X2,999999,,-10,RUB,2026-01-01,2026-01-01\n"
	l := loader.New(loader.PatternTable{})

	rep, err := l.Load(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rep.Instruments, 1)
	_, isOtherLiability := rep.Instruments[0].(*instrument.OtherLiability)
	assert.True(t, isOtherLiability)
}

func TestLoadAcceptsAlternateDateFormats(t *testing.T) {
	csvData := "id,balance_account,instrument_type,amount,currency,start_date,as_of_date\n" +
		"X3,1,loan,100,RUB,01.01.2026,20260101\n"
	l := loader.New(loader.PatternTable{})

	rep, err := l.Load(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rep.Instruments, 1)
	require.Empty(t, rep.Skipped)
}

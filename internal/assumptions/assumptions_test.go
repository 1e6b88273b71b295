package assumptions_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
)

func TestResolveCounterpartyOverrideShortCircuits(t *testing.T) {
	r := assumptions.NewResolver(
		[]assumptions.Rule{
			{ID: "r1", Priority: 100, Active: true,
				Conditions: map[string]assumptions.Condition{"counterparty_name": assumptions.EqualsCond("Gazprom")},
				Result:     assumptions.Set{"stable_portion": 0.1}},
		},
		map[string]assumptions.CounterpartyAssumption{
			"Gazprom": {CounterpartyName: "Gazprom", Result: assumptions.Set{"stable_portion": 0.9}},
		},
		zerolog.Nop(),
	)
	got := r.Resolve(map[string]any{"counterparty_name": "Gazprom"})
	sp, ok := got.Float64("stable_portion")
	require.True(t, ok)
	assert.Equal(t, 0.9, sp)
}

func TestResolveHighestPriorityRuleWins(t *testing.T) {
	r := assumptions.NewResolver([]assumptions.Rule{
		{ID: "low", Priority: 1, Active: true,
			Conditions: map[string]assumptions.Condition{"instrument_class": assumptions.EqualsCond("deposit")},
			Result:     assumptions.Set{"stable_portion": 0.1}},
		{ID: "high", Priority: 10, Active: true,
			Conditions: map[string]assumptions.Condition{"instrument_class": assumptions.EqualsCond("deposit")},
			Result:     assumptions.Set{"stable_portion": 0.8}},
	}, nil, zerolog.Nop())

	got := r.Resolve(map[string]any{"instrument_class": "deposit"})
	sp, _ := got.Float64("stable_portion")
	assert.Equal(t, 0.8, sp)
}

func TestResolveInactiveRuleSkipped(t *testing.T) {
	r := assumptions.NewResolver([]assumptions.Rule{
		{ID: "inactive", Priority: 100, Active: false,
			Conditions: map[string]assumptions.Condition{"instrument_class": assumptions.EqualsCond("deposit")},
			Result:     assumptions.Set{"stable_portion": 0.99}},
	}, nil, zerolog.Nop())

	got := r.Resolve(map[string]any{"instrument_class": "deposit", "counterparty_type": "retail"})
	sp, ok := got.Float64("stable_portion")
	require.True(t, ok)
	assert.Equal(t, 0.6, sp) // falls through to the default table
}

func TestResolveOperatorConditions(t *testing.T) {
	r := assumptions.NewResolver([]assumptions.Rule{
		{ID: "big-amount", Priority: 5, Active: true,
			Conditions: map[string]assumptions.Condition{
				"amount": assumptions.OpCond(map[assumptions.MatchOperator]any{assumptions.OpGTE: 1_000_000.0}),
			},
			Result: assumptions.Set{"stable_portion": 0.2}},
	}, nil, zerolog.Nop())

	big := r.Resolve(map[string]any{"amount": 2_000_000.0})
	sp, ok := big.Float64("stable_portion")
	require.True(t, ok)
	assert.Equal(t, 0.2, sp)

	small := r.Resolve(map[string]any{"amount": 500.0})
	_, ok = small.Float64("stable_portion")
	assert.False(t, ok)
}

func TestResolveListMembership(t *testing.T) {
	r := assumptions.NewResolver([]assumptions.Rule{
		{ID: "currencies", Priority: 5, Active: true,
			Conditions: map[string]assumptions.Condition{"currency": assumptions.OneOfCond("USD", "EUR")},
			Result:     assumptions.Set{"stable_portion": 0.7}},
	}, nil, zerolog.Nop())

	assert.NotEmpty(t, r.Resolve(map[string]any{"currency": "USD"}))
	matched := r.Resolve(map[string]any{"currency": "USD"})
	sp, _ := matched.Float64("stable_portion")
	assert.Equal(t, 0.7, sp)

	unmatched := r.Resolve(map[string]any{"currency": "RUB"})
	_, ok := unmatched.Float64("stable_portion")
	assert.False(t, ok)
}

func TestDefaultAssumptionsTable(t *testing.T) {
	r := assumptions.NewResolver(nil, nil, zerolog.Nop())

	retail := r.Resolve(map[string]any{"instrument_class": "deposit", "counterparty_type": "retail"})
	sp, _ := retail.Float64("stable_portion")
	assert.Equal(t, 0.6, sp)
	life, _ := retail.Float64("avg_life_days")
	assert.Equal(t, 180.0, life)

	corp := r.Resolve(map[string]any{"instrument_class": "deposit", "counterparty_type": "corporate"})
	sp, _ = corp.Float64("stable_portion")
	assert.Equal(t, 0.4, sp)

	current := r.Resolve(map[string]any{"instrument_class": "current_account", "counterparty_type": "retail"})
	sp, _ = current.Float64("stable_portion")
	assert.Equal(t, 0.3, sp)

	unknown := r.Resolve(map[string]any{"instrument_class": "bond"})
	assert.Empty(t, map[string]any(unknown))
}

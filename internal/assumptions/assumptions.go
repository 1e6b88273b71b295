// Package assumptions resolves the behavioral runoff/stability parameters
// applicable to an instrument via priority-ordered predicate rules and a
// counterparty-name override table, per spec.md §4.3.
//
// Resolution is deterministic and total: every instrument gets a Set,
// possibly empty. The resolver never mutates its inputs (§3.6).
//
// Decoupled from package instrument (§9's circular-reference note): rules
// match against a plain map of instrument attributes, not a concrete
// instrument.Instrument, so instrument can depend on this package for the
// Set type without a cycle.
package assumptions

import (
	"sort"

	"github.com/rs/zerolog"
)

// Set is the resolved behavioral-assumption map a caller applies to an
// instrument's contribution computation. Keys are assumption names
// ("core_portion", "avg_life_years", "withdrawal_rates", ...); values are
// whatever concrete type that assumption needs.
type Set map[string]any

// Float64 reads a numeric assumption, accepting both float64 and int for
// convenience (YAML/JSON decoders produce either).
func (s Set) Float64(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// String reads a string assumption.
func (s Set) String(key string) (string, bool) {
	v, ok := s[key].(string)
	return v, ok
}

// Bool reads a boolean assumption.
func (s Set) Bool(key string) (bool, bool) {
	v, ok := s[key].(bool)
	return v, ok
}

// BucketRateMap reads a bucket-name → rate assumption such as
// withdrawal_rates.
func (s Set) BucketRateMap(key string) (map[string]float64, bool) {
	v, ok := s[key].(map[string]float64)
	return v, ok
}

// ScenarioRunoffRates reads a scenario-keyed runoff-rate table such as a
// CounterpartyAssumption's per-scenario rates: {scenario: {bucket: rate}}.
func (s Set) ScenarioRunoffRates(key string) (map[string]map[string]float64, bool) {
	v, ok := s[key].(map[string]map[string]float64)
	return v, ok
}

// MatchOperator is one of the comparator keys a condition's match-spec may
// use, per §3.6.
type MatchOperator string

const (
	OpGTE   MatchOperator = ">="
	OpLTE   MatchOperator = "<="
	OpGT    MatchOperator = ">"
	OpLT    MatchOperator = "<"
	OpIn    MatchOperator = "in"
	OpNotIn MatchOperator = "not_in"
)

// Condition is the match_spec of §3.6: exactly one of Equals, OneOf, or
// Operators is populated.
type Condition struct {
	Equals    any
	OneOf     []any
	Operators map[MatchOperator]any
}

// EqualsCond builds an exact-value condition.
func EqualsCond(v any) Condition { return Condition{Equals: v} }

// OneOfCond builds a list-membership condition.
func OneOfCond(values ...any) Condition { return Condition{OneOf: values} }

// OpCond builds a comparator-map condition.
func OpCond(ops map[MatchOperator]any) Condition { return Condition{Operators: ops} }

func (c Condition) matches(value any) bool {
	switch {
	case c.OneOf != nil:
		for _, v := range c.OneOf {
			if v == value {
				return true
			}
		}
		return false
	case c.Operators != nil:
		for op, threshold := range c.Operators {
			if !matchOperator(op, value, threshold) {
				return false
			}
		}
		return true
	default:
		return value == c.Equals
	}
}

func matchOperator(op MatchOperator, value, threshold any) bool {
	switch op {
	case OpIn:
		list, ok := threshold.([]any)
		if !ok {
			return false
		}
		for _, v := range list {
			if v == value {
				return true
			}
		}
		return false
	case OpNotIn:
		list, ok := threshold.([]any)
		if !ok {
			return true
		}
		for _, v := range list {
			if v == value {
				return false
			}
		}
		return true
	}
	vf, vok := toFloat(value)
	tf, tok := toFloat(threshold)
	if !vok || !tok {
		return false
	}
	switch op {
	case OpGTE:
		return vf >= tf
	case OpLTE:
		return vf <= tf
	case OpGT:
		return vf > tf
	case OpLT:
		return vf < tf
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// Rule is a priority-ordered predicate rule of §3.6: a higher Priority
// wins among matching active rules; all Conditions must match (AND).
type Rule struct {
	ID         string
	Priority   int
	Active     bool
	Conditions map[string]Condition
	Result     Set
}

// Matches reports whether every condition in the rule is satisfied by
// the given instrument attribute map.
func (r Rule) Matches(data map[string]any) bool {
	if !r.Active {
		return false
	}
	for field, cond := range r.Conditions {
		if !cond.matches(data[field]) {
			return false
		}
	}
	return true
}

// CounterpartyAssumption is a name-keyed record that short-circuits rule
// matching when an instrument's counterparty name matches, per §3.6.
type CounterpartyAssumption struct {
	CounterpartyName string
	Result           Set
}

// Resolver holds the configured rules, counterparty overrides and default
// table used to resolve assumptions for any instrument, per §4.3.
type Resolver struct {
	rules         []Rule
	counterparty  map[string]CounterpartyAssumption
	log           zerolog.Logger
}

// NewResolver builds a Resolver from rules and counterparty overrides.
// Rules are sorted by descending priority immediately so Resolve never
// re-sorts on the hot path.
func NewResolver(rules []Rule, counterparty map[string]CounterpartyAssumption, log zerolog.Logger) *Resolver {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority > sorted[j].Priority })
	if counterparty == nil {
		counterparty = map[string]CounterpartyAssumption{}
	}
	return &Resolver{rules: sorted, counterparty: counterparty, log: log}
}

// Resolve returns the applicable assumption Set for an instrument
// described by data, per the three-step procedure of §4.3:
//  1. counterparty-name override table,
//  2. highest-priority matching active rule,
//  3. instrument_class × counterparty_type default table.
func (r *Resolver) Resolve(data map[string]any) Set {
	if name, _ := data["counterparty_name"].(string); name != "" {
		if cp, ok := r.counterparty[name]; ok {
			r.log.Debug().Str("counterparty_name", name).Msg("resolved assumptions via counterparty override")
			return cp.Result
		}
	}
	for _, rule := range r.rules {
		if rule.Matches(data) {
			r.log.Debug().Str("rule_id", rule.ID).Int("priority", rule.Priority).Msg("resolved assumptions via rule")
			return rule.Result
		}
	}
	return defaultAssumptions(data)
}

// defaultAssumptions implements the instrument_class × counterparty_type
// fallback table of §4.3's step 3.
func defaultAssumptions(data map[string]any) Set {
	class, _ := data["instrument_class"].(string)
	cpType, _ := data["counterparty_type"].(string)

	switch class {
	case "deposit":
		switch cpType {
		case "retail":
			return Set{"stable_portion": 0.6, "avg_life_days": 180}
		case "corporate":
			return Set{"stable_portion": 0.4, "avg_life_days": 90}
		}
	case "current_account":
		return Set{"stable_portion": 0.3, "avg_life_days": 30}
	}
	return Set{}
}

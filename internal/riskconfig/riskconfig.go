// Package riskconfig loads the YAML-configured elasticity parameter
// table and assumption rule set of SPEC_FULL.md §10.2/§11, keeping the
// engine's behavioral parameters (elasticity coefficients, run-off
// assumption rules) out of code, per §3.6/§4.3/§4.4.
package riskconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/elasticity"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// elasticityFile is the on-disk shape of the elasticity parameter table:
// segment -> deposit type -> parameters.
type elasticityFile struct {
	Segments map[string]map[string]elasticityParamsYAML `yaml:"segments"`
}

type elasticityParamsYAML struct {
	BaseElasticity float64 `yaml:"base_elasticity"`

	Asymmetric              bool     `yaml:"asymmetric"`
	PositiveShockElasticity *float64 `yaml:"positive_shock_elasticity"`
	NegativeShockElasticity *float64 `yaml:"negative_shock_elasticity"`

	ThresholdRateChange      *float64 `yaml:"threshold_rate_change"`
	BelowThresholdElasticity *float64 `yaml:"below_threshold_elasticity"`
	AboveThresholdElasticity *float64 `yaml:"above_threshold_elasticity"`

	ElasticityFloor   *float64 `yaml:"elasticity_floor"`
	ElasticityCeiling *float64 `yaml:"elasticity_ceiling"`

	AdjustmentSpeed   float64 `yaml:"adjustment_speed"`
	CompetitiveFactor float64 `yaml:"competitive_factor"`

	MaxVolumeChange    *float64 `yaml:"max_volume_change"`
	MinRemainingVolume *float64 `yaml:"min_remaining_volume"`
}

// LoadElasticityTable reads an elasticity parameter table from a YAML
// file at path, per §4.4/§6.
func LoadElasticityTable(path string) (elasticity.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("riskconfig: reading elasticity config: %w", err)
	}

	var f elasticityFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("riskconfig: parsing elasticity config: %w", err)
	}

	table := make(elasticity.Table, len(f.Segments))
	for segmentName, byType := range f.Segments {
		segment := riskenum.CustomerSegment(segmentName)
		table[segment] = make(map[riskenum.DepositType]elasticity.Parameters, len(byType))
		for depositTypeName, p := range byType {
			depositType := riskenum.DepositType(depositTypeName)
			table[segment][depositType] = elasticity.Parameters{
				BaseElasticity:           p.BaseElasticity,
				Asymmetric:               p.Asymmetric,
				PositiveShockElasticity:  p.PositiveShockElasticity,
				NegativeShockElasticity:  p.NegativeShockElasticity,
				ThresholdRateChange:      p.ThresholdRateChange,
				BelowThresholdElasticity: p.BelowThresholdElasticity,
				AboveThresholdElasticity: p.AboveThresholdElasticity,
				ElasticityFloor:          p.ElasticityFloor,
				ElasticityCeiling:        p.ElasticityCeiling,
				AdjustmentSpeed:          p.AdjustmentSpeed,
				CompetitiveFactor:        p.CompetitiveFactor,
				MaxVolumeChange:          p.MaxVolumeChange,
				MinRemainingVolume:       p.MinRemainingVolume,
			}
		}
	}
	return table, nil
}

// assumptionsFile is the on-disk shape of §4.3's rule set and
// counterparty-override table.
type assumptionsFile struct {
	Rules []ruleYAML `yaml:"rules"`

	Counterparty []struct {
		CounterpartyName string         `yaml:"counterparty_name"`
		Result           map[string]any `yaml:"result"`
	} `yaml:"counterparty_overrides"`
}

type ruleYAML struct {
	ID         string                    `yaml:"id"`
	Priority   int                       `yaml:"priority"`
	Active     bool                      `yaml:"active"`
	Conditions map[string]conditionYAML  `yaml:"conditions"`
	Result     map[string]any            `yaml:"result"`
}

type conditionYAML struct {
	Equals    any            `yaml:"equals"`
	OneOf     []any          `yaml:"one_of"`
	Operators map[string]any `yaml:"operators"`
}

// LoadAssumptions reads an assumption rule set and counterparty override
// table from a YAML file at path, per §4.3/§6.
func LoadAssumptions(path string) ([]assumptions.Rule, map[string]assumptions.CounterpartyAssumption, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("riskconfig: reading assumptions config: %w", err)
	}

	var f assumptionsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, nil, fmt.Errorf("riskconfig: parsing assumptions config: %w", err)
	}

	rules := make([]assumptions.Rule, 0, len(f.Rules))
	for _, r := range f.Rules {
		conditions := make(map[string]assumptions.Condition, len(r.Conditions))
		for field, c := range r.Conditions {
			conditions[field] = toCondition(c)
		}
		rules = append(rules, assumptions.Rule{
			ID:         r.ID,
			Priority:   r.Priority,
			Active:     r.Active,
			Conditions: conditions,
			Result:     assumptions.Set(r.Result),
		})
	}

	counterparty := make(map[string]assumptions.CounterpartyAssumption, len(f.Counterparty))
	for _, cp := range f.Counterparty {
		counterparty[cp.CounterpartyName] = assumptions.CounterpartyAssumption{
			CounterpartyName: cp.CounterpartyName,
			Result:           assumptions.Set(cp.Result),
		}
	}

	return rules, counterparty, nil
}

func toCondition(c conditionYAML) assumptions.Condition {
	switch {
	case c.OneOf != nil:
		return assumptions.OneOfCond(c.OneOf...)
	case c.Operators != nil:
		ops := make(map[assumptions.MatchOperator]any, len(c.Operators))
		for op, v := range c.Operators {
			ops[assumptions.MatchOperator(op)] = v
		}
		return assumptions.OpCond(ops)
	default:
		return assumptions.EqualsCond(c.Equals)
	}
}

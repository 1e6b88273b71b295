// Package elasticity implements the Elasticity Engine of spec.md §4.4:
// modeling the change in deposit volume in response to an interest-rate
// shock, used to build the dynamic balance sheet for interest-rate risk.
package elasticity

import "github.com/aristath/alm-risk-engine/internal/riskenum"

// Parameters is the elasticity model for one (segment, deposit type)
// combination, per §4.4 and §6's configuration key table.
type Parameters struct {
	BaseElasticity float64

	Asymmetric              bool
	PositiveShockElasticity *float64
	NegativeShockElasticity *float64

	ThresholdRateChange      *float64
	BelowThresholdElasticity *float64
	AboveThresholdElasticity *float64

	ElasticityFloor   *float64
	ElasticityCeiling *float64

	AdjustmentSpeed   float64
	CompetitiveFactor float64

	MaxVolumeChange    *float64
	MinRemainingVolume *float64
}

// Table is the elasticity parameter set keyed by (segment, deposit type),
// loaded from YAML by internal/riskconfig per §10.2.
type Table map[riskenum.CustomerSegment]map[riskenum.DepositType]Parameters

// Lookup resolves parameters for (segment, depositType), falling back to
// (segment, DepositDemand) when the exact type has none configured, per
// §4.4 step 2.
func (t Table) Lookup(segment riskenum.CustomerSegment, depositType riskenum.DepositType) (Parameters, bool) {
	byType, ok := t[segment]
	if !ok {
		return Parameters{}, false
	}
	if p, ok := byType[depositType]; ok {
		return p, true
	}
	if p, ok := byType[riskenum.DepositDemand]; ok {
		return p, true
	}
	return Parameters{}, false
}

package elasticity

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// DepositVolumeChange is the per-deposit result record of §4.4 step 6.
type DepositVolumeChange struct {
	InstrumentID   string
	Segment        riskenum.CustomerSegment
	DepositType    riskenum.DepositType
	OriginalAmount float64
	NewAmount      float64
	Change         float64
	ChangePercent  float64
	RateShockBps   float64
	ElasticityUsed float64
}

// Engine computes deposit volume changes under a per-currency rate shock,
// per §4.4.
type Engine struct {
	Table    Table
	Classify Classifier
	log      zerolog.Logger
}

// NewEngine constructs an Engine. A zero zerolog.Logger defaults to a
// no-op logger, keeping the engine usable as a library with no ambient
// side effects, per §9/§10.1.
func NewEngine(table Table, classify Classifier, log zerolog.Logger) *Engine {
	if classify == nil {
		classify = DefaultClassifier
	}
	return &Engine{Table: table, Classify: classify, log: log}
}

// Evaluate runs the six-step procedure of §4.4 over deposits for the given
// cdate and per-currency rate shocks (basis points).
func (e *Engine) Evaluate(deposits []*instrument.Deposit, cdate time.Time, shockBps map[string]float64) []DepositVolumeChange {
	out := make([]DepositVolumeChange, 0, len(deposits))
	for _, d := range deposits {
		shock, ok := shockBps[d.Base.Currency]
		if !ok || shock == 0 {
			continue
		}

		segment, depositType := e.Classify(d, cdate)
		params, ok := e.Table.Lookup(segment, depositType)
		if !ok {
			e.log.Debug().
				Str("instrument_id", d.Base.ID).
				Str("segment", string(segment)).
				Str("deposit_type", string(depositType)).
				Msg("no elasticity parameters, skipping deposit")
			continue
		}

		change := e.evaluateOne(d, segment, depositType, shock, params)
		out = append(out, change)
	}
	return out
}

func (e *Engine) evaluateOne(d *instrument.Deposit, segment riskenum.CustomerSegment, depositType riskenum.DepositType, shockBps float64, params Parameters) DepositVolumeChange {
	original := d.Base.Amount
	deltaRpp := shockBps / 100

	elasticityUsed := pickElasticity(params, deltaRpp)

	deltaVolPct := elasticityUsed * deltaRpp * params.AdjustmentSpeed * params.CompetitiveFactor
	if params.MaxVolumeChange != nil {
		max := *params.MaxVolumeChange
		if deltaVolPct > max {
			deltaVolPct = max
		}
		if deltaVolPct < -max {
			deltaVolPct = -max
		}
	}

	newAmount := original * (1 + deltaVolPct)
	if params.MinRemainingVolume != nil {
		floor := original * *params.MinRemainingVolume
		if newAmount < floor {
			newAmount = floor
		}
	}

	changePct := 0.0
	if original != 0 {
		changePct = (newAmount - original) / original
	}

	return DepositVolumeChange{
		InstrumentID:   d.Base.ID,
		Segment:        segment,
		DepositType:    depositType,
		OriginalAmount: original,
		NewAmount:      newAmount,
		Change:         newAmount - original,
		ChangePercent:  changePct,
		RateShockBps:   shockBps,
		ElasticityUsed: elasticityUsed,
	}
}

// pickElasticity selects the elasticity coefficient per §4.4 step 3,
// applying the asymmetric, threshold, or base rule in that priority order
// and clipping to [floor, ceiling] if either is set.
func pickElasticity(p Parameters, deltaRpp float64) float64 {
	var el float64
	switch {
	case p.Asymmetric && deltaRpp > 0 && p.PositiveShockElasticity != nil:
		el = *p.PositiveShockElasticity
	case p.Asymmetric && deltaRpp < 0 && p.NegativeShockElasticity != nil:
		el = *p.NegativeShockElasticity
	case p.ThresholdRateChange != nil && p.BelowThresholdElasticity != nil && p.AboveThresholdElasticity != nil:
		if math.Abs(deltaRpp) < *p.ThresholdRateChange {
			el = *p.BelowThresholdElasticity
		} else {
			el = *p.AboveThresholdElasticity
		}
	default:
		el = p.BaseElasticity
	}
	if p.ElasticityFloor != nil && el < *p.ElasticityFloor {
		el = *p.ElasticityFloor
	}
	if p.ElasticityCeiling != nil && el > *p.ElasticityCeiling {
		el = *p.ElasticityCeiling
	}
	return el
}

// ApplyDynamicBalance replaces each affected deposit in a deep copy with
// an identical record whose amount is new_amount, per §4.4's last
// paragraph. Non-deposits (and deposits with no computed change) pass
// through unmodified.
func ApplyDynamicBalance(instruments []instrument.Instrument, changes []DepositVolumeChange) []instrument.Instrument {
	byID := make(map[string]DepositVolumeChange, len(changes))
	for _, c := range changes {
		byID[c.InstrumentID] = c
	}

	out := make([]instrument.Instrument, len(instruments))
	for i, inst := range instruments {
		d, isDeposit := inst.(*instrument.Deposit)
		if !isDeposit {
			out[i] = inst.Clone()
			continue
		}
		change, ok := byID[d.Base.ID]
		if !ok {
			out[i] = inst.Clone()
			continue
		}
		cp := d.Clone().(*instrument.Deposit)
		cp.Base.Amount = change.NewAmount
		out[i] = cp
	}
	return out
}

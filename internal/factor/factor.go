// Package factor implements the Factor Decomposer of spec.md §4.10:
// splitting the change in a portfolio-level metric between two dates into
// an aging effect (existing instruments rolling forward in time) and a
// new-deals effect (instruments added since the base date).
package factor

import (
	"sort"
	"time"

	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/riskerr"
)

// Metric is a decomposable portfolio-level measurement, per §4.10 step 5:
// scalars subtract directly; mappings subtract key-wise with zero
// defaults; tabular metrics are returned as-is (Sub is a no-op).
type Metric interface {
	// Sub returns this metric minus other.
	Sub(other Metric) Metric
	// Magnitude returns the sum of absolute scalar values, used to rank
	// per-new-product impacts, per §4.10's last paragraph.
	Magnitude() float64
}

// Scalar is a Metric that is a single number (e.g. repricing_gap_total).
type Scalar float64

func (s Scalar) Sub(other Metric) Metric {
	o, ok := other.(Scalar)
	if !ok {
		return s
	}
	return s - o
}

func (s Scalar) Magnitude() float64 {
	if s < 0 {
		return float64(-s)
	}
	return float64(s)
}

// Mapping is a Metric keyed by an arbitrary string (e.g. FX positions by
// currency, liquidity gaps by bucket name).
type Mapping map[string]float64

func (m Mapping) Sub(other Metric) Metric {
	o, _ := other.(Mapping)
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v - o[k]
	}
	for k, v := range o {
		if _, ok := m[k]; !ok {
			out[k] = -v
		}
	}
	return out
}

func (m Mapping) Magnitude() float64 {
	total := 0.0
	for _, v := range m {
		if v < 0 {
			total -= v
		} else {
			total += v
		}
	}
	return total
}

// MetricFunc computes a named Metric for a portfolio as of a date, per
// §4.10's "metric function M(instruments, date) -> value" input.
type MetricFunc func(instruments []instrument.Instrument, asOf time.Time) Metric

// Result is the Decomposer's output, per §4.10 step 4.
type Result struct {
	MetricName     string
	Base           Metric
	Aged           Metric
	Full           Metric
	AgingEffect    Metric
	NewDealsEffect Metric
	TotalChange    Metric
}

// NewProductImpact is one entry of the optional per-new-product
// breakdown, per §4.10's last paragraph.
type NewProductImpact struct {
	InstrumentID string
	Impact       Metric
	Magnitude    float64
}

// Decomposer runs the five-step procedure of §4.10.
type Decomposer struct{}

// NewDecomposer constructs a Decomposer. It is stateless.
func NewDecomposer() *Decomposer {
	return &Decomposer{}
}

// Decompose computes aging_effect, new_deals_effect and total_change for
// metricName between base (at baseDate) and comparison (at
// comparisonDate). It fails with riskerr.ErrInvalidPeriod if
// comparisonDate does not strictly follow baseDate.
func (d *Decomposer) Decompose(base, comparison []instrument.Instrument, baseDate, comparisonDate time.Time, metricName string, metric MetricFunc) (Result, error) {
	if !comparisonDate.After(baseDate) {
		return Result{}, riskerr.ErrInvalidPeriod
	}

	compIDs := idSet(comparison)

	aged := make([]instrument.Instrument, 0, len(base))
	for _, inst := range base {
		if !compIDs[inst.ID()] {
			continue
		}
		aged = append(aged, agedCopy(inst, comparisonDate))
	}

	mBase := metric(base, baseDate)
	mAged := metric(aged, comparisonDate)
	mFull := metric(comparison, comparisonDate)

	res := Result{
		MetricName:     metricName,
		Base:           mBase,
		Aged:           mAged,
		Full:           mFull,
		AgingEffect:    mAged.Sub(mBase),
		NewDealsEffect: mFull.Sub(mAged),
		TotalChange:    mFull.Sub(mBase),
	}

	return res, nil
}

// NewProductImpacts computes the optional per-new-product breakdown of
// §4.10's last paragraph: for each instrument present in comparison but
// not in base, the marginal effect of adding it to the aged portfolio,
// sorted by magnitude descending and truncated to topN if topN > 0.
func (d *Decomposer) NewProductImpacts(base, comparison []instrument.Instrument, baseDate, comparisonDate time.Time, metric MetricFunc, topN int) []NewProductImpact {
	baseIDs := idSet(base)
	compIDs := idSet(comparison)

	aged := make([]instrument.Instrument, 0, len(base))
	for _, inst := range base {
		if compIDs[inst.ID()] {
			aged = append(aged, agedCopy(inst, comparisonDate))
		}
	}
	mAged := metric(aged, comparisonDate)

	impacts := make([]NewProductImpact, 0)
	for _, inst := range comparison {
		if baseIDs[inst.ID()] {
			continue
		}
		withNew := append(append([]instrument.Instrument{}, aged...), inst)
		mWithNew := metric(withNew, comparisonDate)
		impact := mWithNew.Sub(mAged)
		impacts = append(impacts, NewProductImpact{
			InstrumentID: inst.ID(),
			Impact:       impact,
			Magnitude:    impact.Magnitude(),
		})
	}

	sort.SliceStable(impacts, func(i, j int) bool {
		return impacts[i].Magnitude > impacts[j].Magnitude
	})

	if topN > 0 && len(impacts) > topN {
		impacts = impacts[:topN]
	}
	return impacts
}

func idSet(instruments []instrument.Instrument) map[string]bool {
	set := make(map[string]bool, len(instruments))
	for _, inst := range instruments {
		set[inst.ID()] = true
	}
	return set
}

// agedCopy deep-copies inst and rolls its as_of_date forward to
// comparisonDate without shifting its maturity date, per §4.10 step 2.
func agedCopy(inst instrument.Instrument, comparisonDate time.Time) instrument.Instrument {
	cp := inst.Clone()
	setAsOfDate(cp, comparisonDate)
	return cp
}

// setAsOfDate mutates the as_of_date of a cloned instrument in place. As
// with the Scenario Stressor's rate-shock mutation, every variant embeds
// its common fields inside an exported Base struct, so this requires a
// type switch over the concrete variants.
func setAsOfDate(inst instrument.Instrument, asOf time.Time) {
	switch v := inst.(type) {
	case *instrument.Loan:
		v.Base.AsOfDate = asOf
	case *instrument.Deposit:
		v.Base.AsOfDate = asOf
	case *instrument.InterbankLoan:
		v.Base.AsOfDate = asOf
	case *instrument.Repo:
		v.Base.AsOfDate = asOf
	case *instrument.ReverseRepo:
		v.Base.AsOfDate = asOf
	case *instrument.Bond:
		v.Base.AsOfDate = asOf
	case *instrument.CurrentAccount:
		v.Base.AsOfDate = asOf
	case *instrument.CorrespondentAccount:
		v.Base.AsOfDate = asOf
	case *instrument.OtherAsset:
		v.Base.AsOfDate = asOf
	case *instrument.OtherLiability:
		v.Base.AsOfDate = asOf
	case *instrument.OffBalance:
		v.Base.AsOfDate = asOf
	case *instrument.RateSwap:
		v.Base.AsOfDate = asOf
	case *instrument.FxSwap:
		v.Base.AsOfDate = asOf
	case *instrument.Futures:
		v.Base.AsOfDate = asOf
	case *instrument.TOM:
		v.Base.AsOfDate = asOf
	case *instrument.DepositMargin:
		v.Base.AsOfDate = asOf
	case *instrument.Forward:
		v.Base.AsOfDate = asOf
	case *instrument.XCCY:
		v.Base.AsOfDate = asOf
	}
}

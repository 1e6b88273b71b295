// Package survival implements the scenario-path Survival Horizon
// Calculator of spec.md §4.7: a flow-oriented alternative to the
// contribution-path horizon computed inline by internal/aggregate,
// operating on preprocessed daily flow rows instead of instrument
// contributions.
package survival

import "sort"

// ScenarioColumn names one of the flow table's signed-amount columns.
type ScenarioColumn string

const (
	ColumnName   ScenarioColumn = "NAME"
	ColumnMarket ScenarioColumn = "MARKET"
	ColumnCombo  ScenarioColumn = "COMBO"
)

// FlowRow is one row of the preprocessed daily flow table of §4.7.
type FlowRow struct {
	FlowDay     int
	Values      map[ScenarioColumn]float64
	InBuffer    bool
	HasInBuffer bool
}

// Buffer is the day-zero high-quality liquid asset stock, per §4.7.
type Buffer struct {
	Value         float64
	Impairment    float64
	HasImpairment bool
}

// Calculator computes the flow-oriented survival horizon, per §4.7.
type Calculator struct {
	// ExcludeFromBuffer drops rows already counted in the buffer, per
	// §4.7 step 1.
	ExcludeFromBuffer bool
	// MaxHorizonDays bounds the reported horizon, per I9.
	MaxHorizonDays int
}

// NewCalculator constructs a Calculator with the given horizon ceiling.
func NewCalculator(excludeFromBuffer bool, maxHorizonDays int) *Calculator {
	return &Calculator{ExcludeFromBuffer: excludeFromBuffer, MaxHorizonDays: maxHorizonDays}
}

// Horizons computes the survival horizon for every scenario column
// present across rows, per the five-step procedure of §4.7.
func (c *Calculator) Horizons(rows []FlowRow, buffer Buffer) map[ScenarioColumn]int {
	filtered := rows
	if c.ExcludeFromBuffer {
		filtered = make([]FlowRow, 0, len(rows))
		for _, r := range rows {
			if r.HasInBuffer && r.InBuffer {
				continue
			}
			filtered = append(filtered, r)
		}
	}

	grouped := make(map[int]map[ScenarioColumn]float64)
	days := make([]int, 0)
	for _, r := range filtered {
		g, ok := grouped[r.FlowDay]
		if !ok {
			g = make(map[ScenarioColumn]float64)
			grouped[r.FlowDay] = g
			days = append(days, r.FlowDay)
		}
		for col, v := range r.Values {
			g[col] += v
		}
	}
	sort.Ints(days)

	columns := columnsPresent(filtered)

	result := make(map[ScenarioColumn]int, len(columns))
	for _, col := range columns {
		day0 := buffer.Value
		if (col == ColumnMarket || col == ColumnCombo) && buffer.HasImpairment {
			day0 = buffer.Value - buffer.Impairment
		}

		series := make([]float64, 0, len(days)+1)
		series = append(series, day0)
		for _, d := range days {
			series = append(series, grouped[d][col])
		}

		cum := make([]float64, len(series))
		running := 0.0
		for i, v := range series {
			running += v
			cum[i] = running
		}

		result[col] = horizonFromCumulative(cum, c.MaxHorizonDays)
	}
	return result
}

// horizonFromCumulative finds the largest index k such that cum[0..k] are
// all strictly positive (equivalently, the index just before the first
// non-positive cumulative value), per §4.7 step 5. A negative result or
// one exceeding maxHorizonDays reports maxHorizonDays.
func horizonFromCumulative(cum []float64, maxHorizonDays int) int {
	horizon := -1
	for i, v := range cum {
		if v <= 0 {
			horizon = i - 1
			break
		}
	}
	if horizon == -1 {
		horizon = len(cum) - 1
	}
	if horizon < 0 || horizon > maxHorizonDays {
		return maxHorizonDays
	}
	return horizon
}

func columnsPresent(rows []FlowRow) []ScenarioColumn {
	seen := make(map[ScenarioColumn]bool)
	ordered := make([]ScenarioColumn, 0, 3)
	for _, candidate := range []ScenarioColumn{ColumnName, ColumnMarket, ColumnCombo} {
		for _, r := range rows {
			if _, ok := r.Values[candidate]; ok && !seen[candidate] {
				seen[candidate] = true
				ordered = append(ordered, candidate)
				break
			}
		}
	}
	return ordered
}

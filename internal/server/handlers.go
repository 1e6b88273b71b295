package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aristath/alm-risk-engine/internal/bucket"
	"github.com/aristath/alm-risk-engine/internal/factor"
	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/loader"
	"github.com/aristath/alm-risk-engine/internal/riskerr"
	"github.com/aristath/alm-risk-engine/internal/riskstat"
	"github.com/aristath/alm-risk-engine/internal/scenario"
)

// netPositionMetric sums signed amounts across a portfolio, used as the
// example §4.10 metric function for /api/factor-analysis.
func netPositionMetric(instruments []instrument.Instrument, _ time.Time) factor.Metric {
	total := 0.0
	for _, inst := range instruments {
		total += inst.Common().Amount
	}
	return factor.Scalar(total)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// scenarioRequest is the request body for POST /api/scenarios/run, per
// §4.5's Parameters and §6's ScenarioResult output.
type scenarioRequest struct {
	Name                  string             `json:"name"`
	InterestRateShockBps  map[string]float64 `json:"interest_rate_shock_bps"`
	DepositRunoffPct      float64            `json:"deposit_runoff_pct"`
	CreditLineDrawdownPct float64            `json:"credit_line_drawdown_pct"`
	FXShockPct            map[string]float64 `json:"fx_shock_pct"`
}

// handleRunScenario applies a Scenario Stressor to the engine's example
// portfolio and returns the aggregated result, per §4.5/§4.6/§6.
func (s *Server) handleRunScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cdate := time.Now().UTC().Truncate(24 * time.Hour)
	instruments := s.portfolio()

	stressed := s.cfg.Stressor.Apply(instruments, scenario.Parameters{
		Name:                  req.Name,
		InterestRateShockBps:  req.InterestRateShockBps,
		DepositRunoffPct:      req.DepositRunoffPct,
		CreditLineDrawdownPct: req.CreditLineDrawdownPct,
		FXShockPct:            req.FXShockPct,
	})

	assump := s.resolveAssumptions(stressed)
	res := s.cfg.Aggregator.Aggregate(stressed, cdate, assump)

	writeJSON(w, http.StatusOK, map[string]any{
		"scenario_name":          req.Name,
		"date":                   cdate.Format("2006-01-02"),
		"liquidity_gaps":         res.LiquidityGaps,
		"cumulative_gaps":        res.CumulativeGaps,
		"interest_rate_gaps":     res.InterestRateGaps,
		"repricing_gap_total":    res.RepricingGapTotal,
		"dv01_total":             res.DV01Total,
		"fx_positions":           res.FXPositions,
		"fx_exposure_total":      res.FXExposureTotal,
		"total_assets":           res.TotalAssets,
		"total_liabilities":      res.TotalLiabilities,
		"net_position":           res.NetPosition,
		"survival_horizon_days":  res.SurvivalHorizon,
		"skipped_instrument_ids": res.SkippedIDs,
		"gap_dispersion":         gapDispersionByCurrency(res.InterestRateGaps),
		"fx_shock_pct":           req.FXShockPct,
	})
}

// gapDispersionByCurrency summarizes how concentrated each currency's
// interest-rate gap profile is across repricing buckets, per
// internal/riskstat, surfaced as ScenarioResult metadata.
func gapDispersionByCurrency(gaps map[string]map[bucket.Repricing]float64) map[string]riskstat.Dispersion {
	out := make(map[string]riskstat.Dispersion, len(gaps))
	for currency, byBucket := range gaps {
		out[currency] = riskstat.GapConcentration(byBucket)
	}
	return out
}

// dynamicBalanceRequest is the request body for
// POST /api/elasticity/dynamic-balance, per §4.9.
type dynamicBalanceRequest struct {
	ShockBps map[string]float64 `json:"shock_bps"`
}

// handleDynamicBalance runs the dynamic-balance orchestrator and returns
// the static/dynamic comparison, per §4.9/§6's DynamicIRRResult.
func (s *Server) handleDynamicBalance(w http.ResponseWriter, r *http.Request) {
	var req dynamicBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cdate := time.Now().UTC().Truncate(24 * time.Hour)
	instruments := s.portfolio()
	assump := s.resolveAssumptions(instruments)
	res := s.cfg.Dynamic.Run(instruments, cdate, assump, req.ShockBps)

	writeJSON(w, http.StatusOK, map[string]any{
		"static":             res.Static,
		"dynamic":            res.Dynamic,
		"deposit_changes":    res.DepositChanges,
		"bucket_deltas":      res.BucketDeltas,
		"sensitivity_deltas": res.SensitivityDeltas,
	})
}

// factorAnalysisRequest is the request body for POST /api/factor-analysis,
// per §4.10.
type factorAnalysisRequest struct {
	ComparisonDate string `json:"comparison_date"`
	TopN           int    `json:"top_n"`
}

// handleFactorAnalysis decomposes the change in total signed exposure
// between today and a requested comparison date into aging and
// new-deals effects, per §4.10/§6's FactorAnalysisResult. It reuses the
// engine's active portfolio for both dates, since the driver owns no
// historical persistence (§5).
func (s *Server) handleFactorAnalysis(w http.ResponseWriter, r *http.Request) {
	var req factorAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	comparisonDate, err := time.Parse("2006-01-02", req.ComparisonDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	baseDate := time.Now().UTC().Truncate(24 * time.Hour)

	base := s.portfolio()
	comparison := s.portfolio()

	d := s.cfg.Decomposer
	res, err := d.Decompose(base, comparison, baseDate, comparisonDate, "net_position", netPositionMetric)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, riskerr.ErrInvalidPeriod) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	impacts := d.NewProductImpacts(base, comparison, baseDate, comparisonDate, netPositionMetric, req.TopN)

	writeJSON(w, http.StatusOK, map[string]any{
		"metric_name":        res.MetricName,
		"aging_effect":       res.AgingEffect,
		"new_deals_effect":   res.NewDealsEffect,
		"total_change":       res.TotalChange,
		"new_product_impact": impacts,
	})
}

// handlePortfolioLoad parses a balance-sheet CSV upload into the engine's
// active portfolio, replacing the mock portfolio for every subsequent
// request, per SPEC_FULL.md §12's supplemented CSV ingestion feature.
func (s *Server) handlePortfolioLoad(w http.ResponseWriter, r *http.Request) {
	ld := loader.New(s.cfg.LoaderPatterns)
	report, err := ld.Load(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.setLoadedPortfolio(report.Instruments)

	skipped := make([]map[string]any, len(report.Skipped))
	for i, rowErr := range report.Skipped {
		skipped[i] = map[string]any{"row": rowErr.Row, "reason": rowErr.Reason}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"loaded_count":  len(report.Instruments),
		"skipped_count": len(report.Skipped),
		"skipped":       skipped,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Package main is the entry point for the ALM risk engine's example HTTP
// driver: a thin wrapper around the pure-transform core exposing scenario
// stress testing, dynamic-balance comparison, and factor decomposition
// over an example portfolio.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aristath/alm-risk-engine/internal/aggregate"
	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/config"
	"github.com/aristath/alm-risk-engine/internal/dynamicbalance"
	"github.com/aristath/alm-risk-engine/internal/elasticity"
	"github.com/aristath/alm-risk-engine/internal/factor"
	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/irr"
	"github.com/aristath/alm-risk-engine/internal/loader"
	"github.com/aristath/alm-risk-engine/internal/mockdata"
	"github.com/aristath/alm-risk-engine/internal/riskconfig"
	"github.com/aristath/alm-risk-engine/internal/scenario"
	"github.com/aristath/alm-risk-engine/internal/server"
	"github.com/aristath/alm-risk-engine/pkg/logger"
)

// defaultBalancePatterns mirrors the balance-account codes the mock
// portfolio generator uses, so a loaded CSV and the demo portfolio agree
// on instrument-type classification.
func defaultBalancePatterns() loader.PatternTable {
	return loader.PatternTable{
		"45201": instrument.TypeLoan,
		"42301": instrument.TypeDeposit,
		"42302": instrument.TypeDeposit,
		"50101": instrument.TypeBond,
		"32001": instrument.TypeInterbankLoan,
	}
}

func main() {
	cfg, err := config.Load()
	log := logger.New(logger.Config{Level: "info", Pretty: true})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log = logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode})
	logger.SetGlobalLogger(log)
	log.Info().Msg("starting ALM risk engine")

	elasticityTable, err := riskconfig.LoadElasticityTable(cfg.DataDir + "/elasticity.yaml")
	if err != nil {
		log.Warn().Err(err).Msg("no elasticity config found, starting with an empty table")
		elasticityTable = elasticity.Table{}
	}

	assumptionRules, counterpartyAssumptions, err := riskconfig.LoadAssumptions(cfg.DataDir + "/assumptions.yaml")
	if err != nil {
		log.Warn().Err(err).Msg("no assumptions config found, starting with default-only resolution")
		assumptionRules = nil
		counterpartyAssumptions = nil
	}
	resolver := assumptions.NewResolver(assumptionRules, counterpartyAssumptions, log)

	params := instrument.DefaultParams()
	aggregator := aggregate.NewAggregator(params, log)
	stressor := scenario.NewStressor()
	engine := elasticity.NewEngine(elasticityTable, nil, log)
	irrCalc := irr.NewCalculator()
	orchestrator := dynamicbalance.New(aggregator, engine, params)
	decomposer := factor.NewDecomposer()
	portfolio := mockdata.New(1)

	srv := server.New(server.Config{
		Log:            log,
		Config:         cfg,
		Port:           cfg.Port,
		DevMode:        cfg.DevMode,
		Aggregator:     aggregator,
		Stressor:       stressor,
		Elasticity:     engine,
		IRR:            irrCalc,
		Dynamic:        orchestrator,
		Decomposer:     decomposer,
		Portfolio:      portfolio,
		Assumptions:    resolver,
		LoaderPatterns: defaultBalancePatterns(),
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Port).Msg("server started")

	// A periodic recompute job, grounded on the teacher's scheduled job
	// pattern: re-aggregates the mock portfolio on a fixed interval and
	// logs the resulting net position, the way a real deployment would
	// refresh a cached risk snapshot without waiting on the next request.
	c := cron.New()
	_, err = c.AddFunc("@every 1h", func() {
		cdate := time.Now().UTC().Truncate(24 * time.Hour)
		book := portfolio.Portfolio(cdate)
		assump := make(map[string]assumptions.Set, len(book))
		for _, inst := range book {
			common := inst.Common()
			assump[inst.ID()] = resolver.Resolve(map[string]any{
				"instrument_class":  string(inst.Type()),
				"counterparty_type": string(common.CounterpartyType),
				"counterparty_name": common.CounterpartyName,
			})
		}
		res := aggregator.Aggregate(book, cdate, assump)
		log.Info().
			Float64("net_position", res.NetPosition).
			Float64("total_assets", res.TotalAssets).
			Float64("total_liabilities", res.TotalLiabilities).
			Interface("survival_horizon_days", res.SurvivalHorizon).
			Msg("scheduled portfolio recompute")
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to schedule recompute job")
	}
	c.Start()
	defer c.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server stopped")
}

// Package instrument implements the tagged family of balance-sheet
// entities of spec.md §3 and their common per-instrument contribution
// operation (§4.2). Every variant implements Instrument totally: compute
// a fresh Contribution for any valid (calculation date, params,
// assumptions) triple. None of the variants in this package returns a
// non-nil error; the error result exists so the Aggregator can isolate a
// failing Instrument implementation per §7.
package instrument

import (
	"time"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// Type tags the instrument variant, per §3.2.
type Type string

const (
	TypeLoan                 Type = "loan"
	TypeDeposit               Type = "deposit"
	TypeInterbankLoan         Type = "interbank_loan"
	TypeRepo                  Type = "repo"
	TypeReverseRepo           Type = "reverse_repo"
	TypeBond                  Type = "bond"
	TypeCurrentAccount        Type = "current_account"
	TypeCorrespondentAccount  Type = "correspondent_account"
	TypeOtherAsset            Type = "other_asset"
	TypeOtherLiability        Type = "other_liability"
	TypeOffBalance            Type = "off_balance"
	TypeIRS                   Type = "irs"
	TypeOIS                   Type = "ois"
	TypeFxSwap                Type = "fx_swap"
	TypeFutures               Type = "futures"
	TypeTOM                   Type = "tom"
	TypeDepositMargin         Type = "deposit_margin"
	TypeForward               Type = "forward"
	TypeXCCY                  Type = "xccy"
	TypeOther                 Type = "other"
)

// Common holds the identifying attributes every instrument carries, per
// §3.1.
type Common struct {
	ID               string
	InstrumentType   Type
	BalanceAccount   string
	Amount           float64 // signed: positive = asset, negative = liability
	Currency         string
	StartDate        time.Time
	AsOfDate         time.Time
	MaturityDate     *time.Time
	InterestRate     *float64
	CounterpartyID   string
	CounterpartyName string
	CounterpartyType riskenum.CounterpartyType
	TradingPortfolio string
	BookOverride     *riskenum.Book
}

// Book returns the instrument's book classification: the explicit
// override if set, else derived from TradingPortfolio per §3.1/I8 —
// TRADING iff TradingPortfolio begins with the exact literal "TRADING_".
func (c Common) Book() riskenum.Book {
	if c.BookOverride != nil {
		return *c.BookOverride
	}
	if len(c.TradingPortfolio) >= len("TRADING_") && c.TradingPortfolio[:len("TRADING_")] == "TRADING_" {
		return riskenum.BookTrading
	}
	return riskenum.BookBanking
}

// IsAsset reports whether the instrument is carried as an asset (amount
// strictly positive).
func (c Common) IsAsset() bool {
	return c.Amount > 0
}

// DaysToMaturity returns the number of days from asOf to MaturityDate, or
// false if the instrument has none.
func (c Common) DaysToMaturity(asOf time.Time) (int, bool) {
	if c.MaturityDate == nil {
		return 0, false
	}
	return daysBetween(asOf, *c.MaturityDate), true
}

// cloneCommonPointers deep-copies dst's pointer fields from src so a
// variant's Clone never shares mutable state with its source, per §3.6's
// "Stressor produces deep copies and mutates the copy" lifecycle rule.
func cloneCommonPointers(dst, src *Common) {
	if src.MaturityDate != nil {
		m := *src.MaturityDate
		dst.MaturityDate = &m
	}
	if src.InterestRate != nil {
		r := *src.InterestRate
		dst.InterestRate = &r
	}
	if src.BookOverride != nil {
		b := *src.BookOverride
		dst.BookOverride = &b
	}
}

func daysBetween(base, target time.Time) int {
	b := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(b).Hours() / 24)
}

// YearsBetween converts a day span into a year fraction using the
// act/365.25 convention used throughout the contribution engine for
// duration and NMD-life calculations.
func YearsBetween(base, target time.Time) float64 {
	return float64(daysBetween(base, target)) / 365.25
}

// AddYears adds a fractional number of 365.25-day years to base, rounding
// the resulting day offset down, matching the Python original's
// `timedelta(days=int(years * 365.25))`.
func AddYears(base time.Time, years float64) time.Time {
	return base.AddDate(0, 0, int(years*365.25))
}

// Instrument is the capability every variant dispatches through, per §9's
// "capability dispatch rather than shared inheritance" design note.
type Instrument interface {
	ID() string
	Type() Type
	Currency() string
	Book() riskenum.Book
	Common() Common

	// ComputeContribution computes this instrument's fresh, immutable
	// contribution to repricing, liquidity and FX risk as of cdate. It is
	// total: every variant must return a valid Contribution or a non-nil
	// error, never panic.
	ComputeContribution(cdate time.Time, params Params, a assumptions.Set) (Contribution, error)

	// Clone returns a deep copy. Components that change an instrument
	// (the Stressor, the Factor Decomposer's aging step and the
	// Elasticity Engine's ApplyDynamicBalance) mutate such a copy, never
	// the original.
	Clone() Instrument
}

// Params carries the few contribution-engine behaviors that are
// configurable (as opposed to the bucket boundaries, which are fixed
// contracts per §6) — default horizons and haircuts used when an
// instrument or its assumptions don't override them.
type Params struct {
	// CurrentAccountDefaultStablePortion is the stable fraction of a
	// current account's balance when no assumption overrides it (§4.2).
	CurrentAccountDefaultStablePortion float64
	// CurrentAccountDefaultAvgLifeDays is the stable-portion horizon when
	// no assumption overrides it (§4.2).
	CurrentAccountDefaultAvgLifeDays int

	// CBRRequiredReserveHorizonDays is the immobilization horizon for a
	// central-bank required-reserve correspondent account (§4.2, default
	// 365).
	CBRRequiredReserveHorizonDays int
	// NostroStableHorizonDays is the optional longer horizon for the
	// operationally-immobilized portion of a nostro/cbr_operational
	// account (§4.2, default 90).
	NostroStableHorizonDays int
	// LoroRunoffDays is the assumed run-off horizon for a loro account
	// (§4.2, default 7).
	LoroRunoffDays int

	// OtherAssetFixedAssetHorizonDays and OtherAssetFixedAssetHaircut
	// govern the fixed-asset default treatment in OtherAsset (§4.2,
	// defaults: configurable horizon, 0.5 haircut).
	OtherAssetFixedAssetHorizonDays int
	OtherAssetFixedAssetHaircut     float64

	// OffBalanceDefaultDrawDownProbability is used when a guarantee or
	// credit line doesn't specify one (§4.2, default 0.5).
	OffBalanceDefaultDrawDownProbability float64
}

// DefaultParams returns the Params defaults named throughout §4.2.
func DefaultParams() Params {
	return Params{
		CurrentAccountDefaultStablePortion:  0.3,
		CurrentAccountDefaultAvgLifeDays:    180,
		CBRRequiredReserveHorizonDays:       365,
		NostroStableHorizonDays:             90,
		LoroRunoffDays:                      7,
		OtherAssetFixedAssetHorizonDays:     365,
		OtherAssetFixedAssetHaircut:         0.5,
		OffBalanceDefaultDrawDownProbability: 0.5,
	}
}

package instrument

import (
	"time"

	"github.com/aristath/alm-risk-engine/internal/bucket"
)

// Contribution is the immutable result of a single instrument's
// ComputeContribution, per spec.md §3.3. Every field is computed fresh
// from the instrument's own attributes, the assumptions passed in and
// the calculation date; nothing here is mutated in place once returned.
type Contribution struct {
	InstrumentID   string
	InstrumentType Type

	// RepricingAmount is the signed amount that reprices or matures at
	// RepricingDate, feeding the IRR Gap Calculator's bucket placement.
	// Instruments excluded from the IRR gap (e.g. a matured bond, per
	// OQ2) leave RepricingDate nil and RepricingAmount at zero.
	RepricingAmount float64
	RepricingDate   *time.Time

	// Duration, ModifiedDuration and DV01 are populated only for
	// instruments whose contribution carries EVE sensitivity (unmatured
	// bonds; loans, term deposits, interbank loans and repos with both a
	// maturity and an interest rate); swaps with a settlement or maturity
	// date set Duration and DV01 only. They are nil otherwise.
	Duration         *float64
	ModifiedDuration *float64
	DV01             *float64

	// CashFlows distributes the instrument's liquidity-relevant amount
	// across the fixed liquidity buckets of §4.1, used by the
	// Aggregator and the Survival Horizon Calculator.
	CashFlows map[bucket.Liquidity]float64

	// CurrencyExposure distributes the instrument's signed amount by
	// currency, normally a single entry, two for an FX swap/forward.
	CurrencyExposure map[string]float64

	// PrimaryCurrency is the first currency added to CurrencyExposure:
	// the currency the Aggregator assigns this contribution's liquidity
	// and repricing buckets to, per §4.6 ("the first key of its
	// currency_exposure map"). Go map iteration order is undefined, so
	// this is tracked explicitly rather than read back off the map.
	PrimaryCurrency string
}

// AddCashFlow accumulates amount into bucket b, initializing the map on
// first use. Contribution builders use this rather than touching the
// map directly so a nil CashFlows never needs a separate check.
func (c *Contribution) AddCashFlow(b bucket.Liquidity, amount float64) {
	if c.CashFlows == nil {
		c.CashFlows = make(map[bucket.Liquidity]float64)
	}
	c.CashFlows[b] += amount
}

// AddCurrencyExposure accumulates amount into the named currency's
// exposure, initializing the map on first use.
func (c *Contribution) AddCurrencyExposure(currency string, amount float64) {
	if c.CurrencyExposure == nil {
		c.CurrencyExposure = make(map[string]float64)
		c.PrimaryCurrency = currency
	}
	c.CurrencyExposure[currency] += amount
}

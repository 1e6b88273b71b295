// Package riskenum holds the enum types shared by the Elasticity Engine
// and the Dynamic Balance IRR Orchestrator. Per SPEC_FULL.md §9's note on
// cross-module circular references, these live in a leaf module that both
// depend on rather than in either engine.
package riskenum

// CustomerSegment classifies a deposit-holding counterparty for the
// Elasticity Engine.
type CustomerSegment string

const (
	SegmentRetail     CustomerSegment = "retail"
	SegmentCorporate  CustomerSegment = "corporate"
	SegmentSME        CustomerSegment = "sme"
	SegmentGovernment CustomerSegment = "government"
	SegmentBank       CustomerSegment = "bank"
)

// DepositType classifies a deposit by its tenor, per §3.4.
type DepositType string

const (
	DepositDemand     DepositType = "demand"
	DepositShortTerm  DepositType = "short_term"
	DepositMediumTerm DepositType = "medium_term"
	DepositLongTerm   DepositType = "long_term"
)

// CounterpartyType is the common attribute §3.1 defines on every
// instrument.
type CounterpartyType string

const (
	CounterpartyRetail      CounterpartyType = "retail"
	CounterpartyCorporate   CounterpartyType = "corporate"
	CounterpartySME         CounterpartyType = "sme"
	CounterpartyGovernment  CounterpartyType = "government"
	CounterpartyBank        CounterpartyType = "bank"
	CounterpartyCentralBank CounterpartyType = "central_bank"
)

// Book is the trading/banking book classification of §3.1/I8.
type Book string

const (
	BookTrading Book = "TRADING"
	BookBanking Book = "BANKING"
)

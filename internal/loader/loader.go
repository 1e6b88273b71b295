// Package loader implements the balance-sheet record loader of spec.md
// §6/§12: parsing CSV rows into instrument.Instrument values, classifying
// instrument type by a longest-prefix balance-account pattern table, and
// reporting malformed rows instead of failing the whole load, per §7's
// DataValidation policy.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// dateLayouts are the accepted date formats of §6, tried in order.
var dateLayouts = []string{"2006-01-02", "02.01.2006", "20060102"}

// RowError reports one skipped row, per §7's "reported, row skipped"
// DataValidation policy.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// Report is the outcome of a Load call: the instruments that parsed
// successfully, plus every skipped row's reason.
type Report struct {
	Instruments []instrument.Instrument
	Skipped     []RowError
}

// PatternTable maps a balance-account prefix to an instrument type,
// resolved by longest-prefix match, per §6.
type PatternTable map[string]instrument.Type

// classify resolves the instrument type of a row, per §6: an explicit
// instrument_type column wins; otherwise the longest matching prefix in
// t; otherwise OTHER (resolved by sign into OtherAsset/OtherLiability by
// the caller).
func (t PatternTable) classify(balanceAccount, explicit string) (instrument.Type, bool) {
	if explicit != "" {
		return instrument.Type(explicit), true
	}

	bestPrefix := ""
	bestType := instrument.Type("")
	for prefix, typ := range t {
		if strings.HasPrefix(balanceAccount, prefix) && len(prefix) > len(bestPrefix) {
			bestPrefix = prefix
			bestType = typ
		}
	}
	if bestPrefix == "" {
		return "", false
	}
	return bestType, true
}

// Loader reads balance-sheet CSV records into instruments.
type Loader struct {
	Patterns PatternTable
}

// New constructs a Loader with the given balance-account pattern table.
func New(patterns PatternTable) *Loader {
	return &Loader{Patterns: patterns}
}

// Load reads every CSV row from r (the first row is the header) and
// returns a Report. Malformed rows are skipped and recorded rather than
// aborting the load.
func (l *Loader) Load(r io.Reader) (Report, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return Report{}, fmt.Errorf("loader: reading header: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	rep := Report{}
	rowNum := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			rep.Skipped = append(rep.Skipped, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		row := make(map[string]string, len(colIndex))
		for name, idx := range colIndex {
			if idx < len(record) {
				row[name] = strings.TrimSpace(record[idx])
			}
		}

		inst, err := l.parseRow(row)
		if err != nil {
			rep.Skipped = append(rep.Skipped, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		rep.Instruments = append(rep.Instruments, inst)
	}
	return rep, nil
}

func (l *Loader) parseRow(row map[string]string) (instrument.Instrument, error) {
	id := row["id"]
	if id == "" {
		return nil, fmt.Errorf("missing id")
	}

	amount, err := parseFloat(row["amount"])
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}

	currency := row["currency"]
	if currency == "" {
		return nil, fmt.Errorf("missing currency")
	}

	startDate, err := parseDate(row["start_date"])
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}
	asOfDate, err := parseDate(row["as_of_date"])
	if err != nil {
		return nil, fmt.Errorf("as_of_date: %w", err)
	}
	maturityDate, err := parseOptionalDate(row["maturity_date"])
	if err != nil {
		return nil, fmt.Errorf("maturity_date: %w", err)
	}
	interestRate, err := parseOptionalFloat(row["interest_rate"])
	if err != nil {
		return nil, fmt.Errorf("interest_rate: %w", err)
	}

	typ, ok := l.Patterns.classify(row["balance_account"], row["instrument_type"])
	if !ok {
		typ = defaultType(amount)
	}

	common := instrument.Common{
		ID:               id,
		InstrumentType:   typ,
		BalanceAccount:   row["balance_account"],
		Amount:           amount,
		Currency:         currency,
		StartDate:        startDate,
		AsOfDate:         asOfDate,
		MaturityDate:     maturityDate,
		InterestRate:     interestRate,
		CounterpartyID:   row["counterparty_id"],
		CounterpartyName: row["counterparty_name"],
		CounterpartyType: riskenum.CounterpartyType(row["counterparty_type"]),
		TradingPortfolio: row["trading_portfolio"],
	}

	return buildVariant(typ, common, row)
}

func defaultType(amount float64) instrument.Type {
	if amount < 0 {
		return instrument.TypeOtherLiability
	}
	return instrument.TypeOtherAsset
}

func buildVariant(typ instrument.Type, common instrument.Common, row map[string]string) (instrument.Instrument, error) {
	switch typ {
	case instrument.TypeLoan:
		prepaymentRate, err := parseOptionalFloat(row["prepayment_rate"])
		if err != nil {
			return nil, fmt.Errorf("prepayment_rate: %w", err)
		}
		return &instrument.Loan{Base: common, PrepaymentRate: prepaymentRate, IsFix: parseBool(row["is_fix"])}, nil

	case instrument.TypeDeposit:
		corePortion, err := parseOptionalFloat(row["core_portion"])
		if err != nil {
			return nil, fmt.Errorf("core_portion: %w", err)
		}
		avgLifeYears, err := parseOptionalFloat(row["avg_life_years"])
		if err != nil {
			return nil, fmt.Errorf("avg_life_years: %w", err)
		}
		return &instrument.Deposit{
			Base:            common,
			IsDemandDeposit: parseBool(row["is_demand_deposit"]),
			CorePortion:     corePortion,
			AvgLifeYears:    avgLifeYears,
		}, nil

	case instrument.TypeInterbankLoan:
		return &instrument.InterbankLoan{Base: common, IsPlacement: parseBool(row["is_placement"])}, nil

	case instrument.TypeRepo:
		repoRate, err := parseOptionalFloat(row["repo_rate"])
		if err != nil {
			return nil, fmt.Errorf("repo_rate: %w", err)
		}
		return &instrument.Repo{Base: common, RepoRate: repoRate, CollateralType: row["collateral_type"]}, nil

	case instrument.TypeReverseRepo:
		repoRate, err := parseOptionalFloat(row["repo_rate"])
		if err != nil {
			return nil, fmt.Errorf("repo_rate: %w", err)
		}
		return &instrument.ReverseRepo{Base: common, RepoRate: repoRate, CollateralType: row["collateral_type"]}, nil

	case instrument.TypeBond:
		nominal, err := parseOptionalFloat(row["notional_amount"])
		if err != nil {
			return nil, fmt.Errorf("notional_amount: %w", err)
		}
		coupon, err := parseOptionalFloat(row["interest_rate"])
		if err != nil {
			return nil, fmt.Errorf("interest_rate: %w", err)
		}
		return &instrument.Bond{Base: common, ISIN: row["isin"], NominalValue: nominal, CouponRate: coupon}, nil

	case instrument.TypeCurrentAccount:
		stablePortion, err := parseOptionalFloat(row["stable_portion"])
		if err != nil {
			return nil, fmt.Errorf("stable_portion: %w", err)
		}
		return &instrument.CurrentAccount{Base: common, StablePortion: stablePortion}, nil

	case instrument.TypeOtherAsset:
		haircut, err := parseOptionalFloat(row["liquidity_haircut"])
		if err != nil {
			return nil, fmt.Errorf("liquidity_haircut: %w", err)
		}
		return &instrument.OtherAsset{
			Base:             common,
			AssetCategory:    row["asset_category"],
			IsMonetary:       parseBool(row["is_monetary"]),
			LiquidityHaircut: haircut,
		}, nil

	case instrument.TypeOtherLiability:
		return &instrument.OtherLiability{
			Base:              common,
			LiabilityCategory: row["liability_category"],
			IsMonetary:        parseBool(row["is_monetary"]),
		}, nil

	case instrument.TypeOffBalance:
		utilized, err := parseOptionalFloat(row["utilized_amount"])
		if err != nil {
			return nil, fmt.Errorf("utilized_amount: %w", err)
		}
		available, err := parseOptionalFloat(row["available_amount"])
		if err != nil {
			return nil, fmt.Errorf("available_amount: %w", err)
		}
		drawDown, err := parseOptionalFloat(row["draw_down_probability"])
		if err != nil {
			return nil, fmt.Errorf("draw_down_probability: %w", err)
		}
		notional, err := parseFloat(row["notional_amount"])
		if err != nil {
			notional = 0
		}
		return &instrument.OffBalance{
			Base:                common,
			OffBalanceKind:      instrument.OffBalanceKind(row["off_balance_kind"]),
			NotionalAmount:      notional,
			UtilizedAmount:      utilized,
			AvailableAmount:     available,
			DrawDownProbability: drawDown,
		}, nil

	default:
		if amount := common.Amount; amount < 0 {
			return &instrument.OtherLiability{Base: common, LiabilityCategory: "unclassified"}, nil
		}
		return &instrument.OtherAsset{Base: common, AssetCategory: "unclassified"}, nil
	}
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	var lastErr error
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SortedPrefixes returns the pattern table's prefixes in descending
// length. Prefixes of equal length come out in no defined order.
func (t PatternTable) SortedPrefixes() []string {
	prefixes := make([]string, 0, len(t))
	for p := range t {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })
	return prefixes
}

package instrument

import (
	"time"

	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/bucket"
	"github.com/aristath/alm-risk-engine/internal/riskenum"
)

// otherCategoryHorizonDays is the category-driven default cash-flow
// horizon for an Other{Asset,Liability} with no explicit maturity_date,
// per §4.2.
var otherCategoryHorizonDays = map[string]int{
	"receivables": 90,
	"payables":    30,
	"payroll":     15,
	"reserves":    365,
}

// OtherAsset is a residual, non-core asset-side balance item, per
// §3.2/§4.2.
type OtherAsset struct {
	Base Common

	AssetCategory   string
	IsMonetary      bool
	LiquidityHaircut *float64
}

func (o *OtherAsset) ID() string          { return o.Base.ID }
func (o *OtherAsset) Type() Type          { return TypeOtherAsset }
func (o *OtherAsset) Currency() string    { return o.Base.Currency }
func (o *OtherAsset) Book() riskenum.Book { return o.Base.Book() }
func (o *OtherAsset) Common() Common      { return o.Base }

func (o *OtherAsset) Clone() Instrument {
	cp := *o
	cloneCommonPointers(&cp.Base, &o.Base)
	if o.LiquidityHaircut != nil {
		v := *o.LiquidityHaircut
		cp.LiquidityHaircut = &v
	}
	return &cp
}

// ComputeContribution implements the OtherAsset contract of §4.2.
func (o *OtherAsset) ComputeContribution(cdate time.Time, params Params, assump assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: o.Base.ID, InstrumentType: TypeOtherAsset}

	var date time.Time
	amount := o.Base.Amount
	switch {
	case o.Base.MaturityDate != nil:
		date = *o.Base.MaturityDate
	case o.AssetCategory == "fixed_assets":
		date = cdate.AddDate(0, 0, params.OtherAssetFixedAssetHorizonDays)
		haircut := params.OtherAssetFixedAssetHaircut
		if o.LiquidityHaircut != nil {
			haircut = *o.LiquidityHaircut
		}
		amount = o.Base.Amount * (1 - haircut)
	default:
		horizon, ok := otherCategoryHorizonDays[o.AssetCategory]
		if !ok {
			horizon = 90
		}
		date = cdate.AddDate(0, 0, horizon)
	}

	c.RepricingDate = &date
	c.RepricingAmount = o.Base.Amount
	c.AddCashFlow(bucket.AssignLiquidity(cdate, date), amount)

	if o.IsMonetary {
		c.AddCurrencyExposure(o.Base.Currency, o.Base.Amount)
	} else {
		c.AddCurrencyExposure(o.Base.Currency, 0)
	}
	return c, nil
}

// OtherLiability is a residual, non-core liability-side balance item,
// per §3.2/§4.2.
type OtherLiability struct {
	Base Common

	LiabilityCategory string
	IsMonetary        bool
}

func (o *OtherLiability) ID() string          { return o.Base.ID }
func (o *OtherLiability) Type() Type          { return TypeOtherLiability }
func (o *OtherLiability) Currency() string    { return o.Base.Currency }
func (o *OtherLiability) Book() riskenum.Book { return o.Base.Book() }
func (o *OtherLiability) Common() Common      { return o.Base }

func (o *OtherLiability) Clone() Instrument {
	cp := *o
	cloneCommonPointers(&cp.Base, &o.Base)
	return &cp
}

// ComputeContribution implements the OtherLiability contract of §4.2.
func (o *OtherLiability) ComputeContribution(cdate time.Time, params Params, assump assumptions.Set) (Contribution, error) {
	c := Contribution{InstrumentID: o.Base.ID, InstrumentType: TypeOtherLiability}

	var date time.Time
	if o.Base.MaturityDate != nil {
		date = *o.Base.MaturityDate
	} else {
		horizon, ok := otherCategoryHorizonDays[o.LiabilityCategory]
		if !ok {
			horizon = 30
		}
		date = cdate.AddDate(0, 0, horizon)
	}

	c.RepricingDate = &date
	c.RepricingAmount = o.Base.Amount
	c.AddCashFlow(bucket.AssignLiquidity(cdate, date), o.Base.Amount)

	if o.IsMonetary {
		c.AddCurrencyExposure(o.Base.Currency, o.Base.Amount)
	} else {
		c.AddCurrencyExposure(o.Base.Currency, 0)
	}
	return c, nil
}

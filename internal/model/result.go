package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationMetadata identifies a single engine run.
type CalculationMetadata struct {
	CalculationID string    `json:"calculationId"`
	TaxYear       string    `json:"taxYear"`
	DeathDate     time.Time `json:"deathDate"`
	CalculatedAt  time.Time `json:"calculatedAt"`
	DurationMs    int64     `json:"durationMs"`
}

// ExemptionUse is one exemption consumed by a gift, with the amount it
// removed from the gift's value.
type ExemptionUse struct {
	Kind   ExemptionKind   `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// GiftTax is the per-gift line of the death-time gift recomputation.
// Amounts are shown even for exempt gifts so the breakdown can explain why
// nothing is due.
type GiftTax struct {
	GiftID         string             `json:"giftId"`
	Date           time.Time          `json:"date"`
	Amount         decimal.Decimal    `json:"amount"`
	Classification GiftClassification `json:"classification"`

	ExemptionsApplied []ExemptionUse  `json:"exemptionsApplied,omitempty"`
	ChargeableValue   decimal.Decimal `json:"chargeableValue"`

	// Sum of chargeable transfers in the 7 years before this gift's own
	// date. Determines how much NRB remains for this gift.
	CumulationBefore decimal.Decimal `json:"cumulationBefore"`
	NRBApplied       decimal.Decimal `json:"nrbApplied"`
	TaxableAmount    decimal.Decimal `json:"taxableAmount"`
	TaxBeforeTaper   decimal.Decimal `json:"taxBeforeTaper"`

	// Taper relief band. Percent is the relief percentage, not the residual.
	YearsBeforeDeath  int             `json:"yearsBeforeDeath"`
	TaperPercent      int64           `json:"taperPercent"`
	TaperRelief       decimal.Decimal `json:"taperRelief"`
	LifetimeTaxCredit decimal.Decimal `json:"lifetimeTaxCredit"`

	TaxDue decimal.Decimal `json:"taxDue"`
}

// ReliefLine is the outcome of one BR/APR claim. Ineligibility is a normal
// outcome, reported with a reason instead of failing the calculation.
type ReliefLine struct {
	AssetID     string          `json:"assetId"`
	Category    ReliefCategory  `json:"category"`
	Value       decimal.Decimal `json:"value"`
	NominalRate decimal.Decimal `json:"nominalRate"`
	GrantedRate decimal.Decimal `json:"grantedRate"`
	Relief      decimal.Decimal `json:"relief"`
	Ineligible  bool            `json:"ineligible"`
	Reason      string          `json:"reason,omitempty"`
}

// ReliefBreakdown aggregates the relief stage.
type ReliefBreakdown struct {
	Lines       []ReliefLine    `json:"lines"`
	TotalRelief decimal.Decimal `json:"totalRelief"`
	CapApplied  bool            `json:"capApplied"`
	Cap         decimal.Decimal `json:"cap"`
}

// AllowanceBreakdown shows every figure in the NRB/RNRB computation.
type AllowanceBreakdown struct {
	NRBBase               decimal.Decimal `json:"nrbBase"`
	TransferredNRBPercent decimal.Decimal `json:"transferredNrbPercent"`
	NRBTotal              decimal.Decimal `json:"nrbTotal"`
	NRBUsedByGifts        decimal.Decimal `json:"nrbUsedByGifts"`
	NRBRemaining          decimal.Decimal `json:"nrbRemaining"`

	RNRBBase           decimal.Decimal `json:"rnrbBase"`
	RNRBTaperReduction decimal.Decimal `json:"rnrbTaperReduction"`
	DownsizingAddition decimal.Decimal `json:"downsizingAddition"`
	RNRBEffective      decimal.Decimal `json:"rnrbEffective"`
	RNRBQualified      bool            `json:"rnrbQualified"`
	RNRBReason         string          `json:"rnrbReason,omitempty"`
}

// EstateComponent names the independently rate-assessed parts of the estate.
type EstateComponent string

const (
	ComponentGeneral         EstateComponent = "general"
	ComponentSurvivorship    EstateComponent = "survivorship"
	ComponentSettledProperty EstateComponent = "settledProperty"
)

// ComponentTax is the per-component rate resolution and tax.
type ComponentTax struct {
	Component       EstateComponent `json:"component"`
	ChargeableValue decimal.Decimal `json:"chargeableValue"`
	BaselineAmount  decimal.Decimal `json:"baselineAmount"`
	CharitableGifts decimal.Decimal `json:"charitableGifts"`
	RateApplied     decimal.Decimal `json:"rateApplied"`
	RateReason      string          `json:"rateReason"`
	TaxableShare    decimal.Decimal `json:"taxableShare"`
	TaxDue          decimal.Decimal `json:"taxDue"`
}

// PeriodicCharge is one 10-year relevant-property charge.
type PeriodicCharge struct {
	Anniversary   time.Time       `json:"anniversary"`
	Value         decimal.Decimal `json:"value"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
	Charge        decimal.Decimal `json:"charge"`
}

// ExitCharge is a proportionate charge on assets leaving the trust.
type ExitCharge struct {
	Date             time.Time       `json:"date"`
	Amount           decimal.Decimal `json:"amount"`
	CompleteQuarters int             `json:"completeQuarters"`
	GoverningRate    decimal.Decimal `json:"governingRate"`
	Charge           decimal.Decimal `json:"charge"`
}

// TrustCharges collects the charges for one trust.
type TrustCharges struct {
	TrustID string    `json:"trustId"`
	Type    TrustType `json:"type"`

	EntryCharge     decimal.Decimal  `json:"entryCharge"`
	EntryRate       decimal.Decimal  `json:"entryRate"`
	PeriodicCharges []PeriodicCharge `json:"periodicCharges,omitempty"`
	ExitCharges     []ExitCharge     `json:"exitCharges,omitempty"`

	// Interest-in-possession funds folded into the death estate instead of
	// being charged here.
	FoldedIntoEstate bool            `json:"foldedIntoEstate"`
	FoldedValue      decimal.Decimal `json:"foldedValue"`

	Total decimal.Decimal `json:"total"`
}

// QSRBreakdown is the Quick Succession Relief adjustment.
type QSRBreakdown struct {
	Credits []QSRCredit     `json:"credits,omitempty"`
	Total   decimal.Decimal `json:"total"`
}

// QSRCredit is one banded QSR credit line.
type QSRCredit struct {
	FirstDeathDate time.Time       `json:"firstDeathDate"`
	YearsElapsed   int             `json:"yearsElapsed"`
	Percent        int64           `json:"percent"`
	TaxPaid        decimal.Decimal `json:"taxPaid"`
	Credit         decimal.Decimal `json:"credit"`
}

// CalculationResult is the full audit breakdown of one calculation. It is
// the engine's only output and is safe to serialize as-is.
type CalculationResult struct {
	Metadata  CalculationMetadata `json:"metadata"`
	Valuation Valuation           `json:"valuation"`

	Reliefs    ReliefBreakdown    `json:"reliefs"`
	Allowances AllowanceBreakdown `json:"allowances"`

	Gifts        []GiftTax       `json:"gifts"`
	GiftTaxTotal decimal.Decimal `json:"giftTaxTotal"`

	Trusts           []TrustCharges  `json:"trusts"`
	TrustChargeTotal decimal.Decimal `json:"trustChargeTotal"`

	SettledPropertyValue decimal.Decimal `json:"settledPropertyValue"`
	TaxableEstate        decimal.Decimal `json:"taxableEstate"`
	Components           []ComponentTax  `json:"components"`
	EstateTax            decimal.Decimal `json:"estateTax"`

	QSR QSRBreakdown `json:"qsr"`

	TotalTaxDue decimal.Decimal `json:"totalTaxDue"`
}

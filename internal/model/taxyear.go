package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxYearRates is one row of the versioned rates reference table, keyed by
// UK tax year label ("2024/25"). All statutory amounts and rates the engine
// needs are carried here; the engine never hardcodes them. Rows are immutable
// once loaded - a rates update replaces the whole in-memory table.
type TaxYearRates struct {
	TaxYear   string    `json:"taxYear"`
	StartDate time.Time `json:"startDate"` // 6 April
	EndDate   time.Time `json:"endDate"`   // following 5 April

	NilRateBand          decimal.Decimal `json:"nilRateBand"`
	ResidenceNilRateBand decimal.Decimal `json:"residenceNilRateBand"`

	// RNRB is reduced by £1 for every £2 of net estate above this threshold.
	ResidenceTaperThreshold decimal.Decimal `json:"residenceTaperThreshold"`

	DeathRate        decimal.Decimal `json:"deathRate"`        // 0.40
	ReducedDeathRate decimal.Decimal `json:"reducedDeathRate"` // 0.36
	LifetimeRate     decimal.Decimal `json:"lifetimeRate"`     // 0.20
	GrossedUpRate    decimal.Decimal `json:"grossedUpRate"`    // 0.25

	// Fraction of the baseline amount that must pass to charity for the
	// reduced death rate to apply.
	CharitableThreshold decimal.Decimal `json:"charitableThreshold"` // 0.10

	AnnualExemption       decimal.Decimal `json:"annualExemption"`       // 3,000
	SmallGiftLimit        decimal.Decimal `json:"smallGiftLimit"`        // 250
	WeddingGiftChild      decimal.Decimal `json:"weddingGiftChild"`      // 5,000
	WeddingGiftGrandchild decimal.Decimal `json:"weddingGiftGrandchild"` // 2,500
	WeddingGiftOther      decimal.Decimal `json:"weddingGiftOther"`      // 1,000

	// Combined BR+APR cap introduced by the 2026 reform. Value relieved at
	// 100% beyond the cap reverts to 50%.
	ReliefCapEnabled bool            `json:"reliefCapEnabled"`
	ReliefCap        decimal.Decimal `json:"reliefCap"`

	MinOwnershipMonths int `json:"minOwnershipMonths"` // 24
}

// Contains reports whether a calendar date falls inside this tax year.
func (r TaxYearRates) Contains(d time.Time) bool {
	return !d.Before(r.StartDate) && !d.After(r.EndDate)
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetEntry is a single valued asset in the death estate.
type AssetEntry struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// LiabilityEntry is a debt or funeral expense deductible from the gross estate.
type LiabilityEntry struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// DownsizingEvent records a sale or move to a lower-value residence on or
// after 8 July 2015, which can restore lost RNRB via the downsizing addition.
type DownsizingEvent struct {
	Date                   time.Time       `json:"date"`
	LostResidenceValue     decimal.Decimal `json:"lostResidenceValue"`
	ValueLeftToDescendants decimal.Decimal `json:"valueLeftToDescendants"`
}

// EstateProfile is the snapshot of a person's estate at the calculation date.
// The engine never mutates it.
type EstateProfile struct {
	Assets      []AssetEntry     `json:"assets"`
	Liabilities []LiabilityEntry `json:"liabilities"`

	// Qualifying residence, if any, and whether it passes to direct
	// descendants (the RNRB condition).
	ResidenceValue               decimal.Decimal `json:"residenceValue"`
	ResidencePassesToDescendants bool            `json:"residencePassesToDescendants"`

	// Value passing by survivorship (jointly held property), assessed as its
	// own component for the charitable-rate test.
	SurvivorshipValue decimal.Decimal `json:"survivorshipValue"`

	// Charitable legacies in the will. Exempt from tax and the driver of the
	// reduced 36% rate.
	CharitableLegacies decimal.Decimal `json:"charitableLegacies"`

	// Whether the person is within UK IHT scope at all.
	OwnedByLongTermResident bool `json:"ownedByLongTermResident"`

	Downsizing *DownsizingEvent `json:"downsizing,omitempty"`
}

// Valuation is the normalized output of the valuation stage.
type Valuation struct {
	GrossEstateValue decimal.Decimal `json:"grossEstateValue"`
	Liabilities      decimal.Decimal `json:"liabilities"`
	NetEstateValue   decimal.Decimal `json:"netEstateValue"`
}

package model

import "github.com/shopspring/decimal"

// ReliefCategory classifies an asset for Business Relief or Agricultural
// Property Relief purposes. The category fixes both the relief kind and the
// unconstrained rate.
type ReliefCategory string

const (
	// 100% Business Relief.
	ReliefUnincorporatedBusiness ReliefCategory = "unincorporatedBusiness"
	ReliefUnquotedShares         ReliefCategory = "unquotedShares" // incl. AIM

	// 50% Business Relief.
	ReliefQuotedControllingShares ReliefCategory = "quotedControllingShares"
	ReliefBusinessLandMachinery   ReliefCategory = "businessLandMachinery"

	// Agricultural Property Relief.
	ReliefAgriculturalProperty ReliefCategory = "agriculturalProperty" // 100%
	ReliefAgriculturalTenancy  ReliefCategory = "agriculturalTenancy"  // 50%
)

// ReliefAsset is an asset for which BR/APR is claimed.
type ReliefAsset struct {
	ID              string          `json:"id"`
	Description     string          `json:"description"`
	Category        ReliefCategory  `json:"category"`
	Value           decimal.Decimal `json:"value"`
	OwnershipMonths int             `json:"ownershipMonths"`

	// Excepted assets (not used for business purposes) get no relief even
	// when the category otherwise qualifies.
	IsExceptedAsset bool `json:"isExceptedAsset"`
}

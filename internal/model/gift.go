package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipientType distinguishes gifts to individuals (PETs) from gifts into
// trust (CLTs).
type RecipientType string

const (
	RecipientIndividual RecipientType = "individual"
	RecipientTrust      RecipientType = "trust"
)

// Relationship of the recipient to the donor. Drives the spouse and charity
// exemptions and the wedding-gift tiers.
type Relationship string

const (
	RelationshipSpouse     Relationship = "spouse"
	RelationshipCharity    Relationship = "charity"
	RelationshipChild      Relationship = "child"
	RelationshipGrandchild Relationship = "grandchild"
	RelationshipOther      Relationship = "other"
)

// ExemptionKind identifies a lifetime-gift exemption consumed by a gift.
type ExemptionKind string

const (
	ExemptionSpouse            ExemptionKind = "spouse"
	ExemptionCharity           ExemptionKind = "charity"
	ExemptionNormalExpenditure ExemptionKind = "normalExpenditure"
	ExemptionWedding           ExemptionKind = "wedding"
	ExemptionAnnual            ExemptionKind = "annual"
	ExemptionSmallGift         ExemptionKind = "smallGift"
)

// Gift is a lifetime transfer of value, supplied gross of the lifetime
// exemptions (the engine applies those itself).
type Gift struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	RecipientType RecipientType   `json:"recipientType"`
	RecipientID   string          `json:"recipientId"`
	Relationship  Relationship    `json:"relationship"`

	// Gift in consideration of a marriage or civil partnership.
	IsWeddingGift bool `json:"isWeddingGift"`

	// Claimed as normal expenditure out of income. The eligibility
	// determination (regular pattern, made from income, standard of living
	// unaffected) belongs to the caller; the engine trusts the flag.
	IsNormalExpenditure bool `json:"isNormalExpenditure"`
}

// GiftClassification is the chargeability of a gift once exemptions are
// applied and survival against the 7-year rule is known.
type GiftClassification string

const (
	GiftFullyExempt GiftClassification = "exempt"
	GiftPET         GiftClassification = "potentiallyExemptTransfer"
	GiftFailedPET   GiftClassification = "failedPotentiallyExemptTransfer"
	GiftCLT         GiftClassification = "chargeableLifetimeTransfer"
)

package testutil

import (
	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/api/request"
)

// CalculationRequestBuilder provides a fluent interface for creating test
// calculation requests.
//
// Example usage:
//
//	// Simple estate with defaults
//	req := testutil.NewCalculationRequest().Build()
//
//	// Customized request
//	req := testutil.NewCalculationRequest().
//	    WithDeathDate("2024-09-01").
//	    WithAsset("home", 500000).
//	    WithGiftTo("child", "2021-03-01", 400000).
//	    Build()
type CalculationRequestBuilder struct {
	req request.CalculationRequest
}

// NewCalculationRequest creates a builder with sensible defaults: a UK
// domiciled estate, no gifts, no trusts and a mid tax-year death date.
func NewCalculationRequest() *CalculationRequestBuilder {
	return &CalculationRequestBuilder{
		req: request.CalculationRequest{
			DeathDate: "2024-09-01",
			Profile: request.EstateProfile{
				OwnedByLongTermResident: true,
			},
		},
	}
}

// WithTaxYear pins the request to an explicit tax year label.
func (b *CalculationRequestBuilder) WithTaxYear(taxYear string) *CalculationRequestBuilder {
	b.req.TaxYear = taxYear
	return b
}

// WithDeathDate sets the death date.
func (b *CalculationRequestBuilder) WithDeathDate(date string) *CalculationRequestBuilder {
	b.req.DeathDate = date
	return b
}

// WithAsset adds an estate asset worth the given whole pound amount.
func (b *CalculationRequestBuilder) WithAsset(description string, value int64) *CalculationRequestBuilder {
	b.req.Profile.Assets = append(b.req.Profile.Assets, request.AssetEntry{
		ID:          MakeID(),
		Description: description,
		Value:       decimal.NewFromInt(value),
	})
	return b
}

// WithLiability adds an estate liability.
func (b *CalculationRequestBuilder) WithLiability(description string, amount int64) *CalculationRequestBuilder {
	b.req.Profile.Liabilities = append(b.req.Profile.Liabilities, request.LiabilityEntry{
		ID:          MakeID(),
		Description: description,
		Amount:      decimal.NewFromInt(amount),
	})
	return b
}

// WithResidence sets a residence value passing to direct descendants.
func (b *CalculationRequestBuilder) WithResidence(value int64) *CalculationRequestBuilder {
	b.req.Profile.ResidenceValue = decimal.NewFromInt(value)
	b.req.Profile.ResidencePassesToDescendants = true
	b.req.Allowances.ClaimRNRB = true
	return b
}

// WithSurvivorship sets the jointly held value passing outside the will.
func (b *CalculationRequestBuilder) WithSurvivorship(value int64) *CalculationRequestBuilder {
	b.req.Profile.SurvivorshipValue = decimal.NewFromInt(value)
	return b
}

// WithCharitableLegacies sets the value left to charity under the will.
func (b *CalculationRequestBuilder) WithCharitableLegacies(value int64) *CalculationRequestBuilder {
	b.req.Profile.CharitableLegacies = decimal.NewFromInt(value)
	return b
}

// NotLongTermResident marks the deceased as outside the UK IHT net.
func (b *CalculationRequestBuilder) NotLongTermResident() *CalculationRequestBuilder {
	b.req.Profile.OwnedByLongTermResident = false
	return b
}

// WithGift appends a fully specified gift.
func (b *CalculationRequestBuilder) WithGift(g request.Gift) *CalculationRequestBuilder {
	if g.ID == "" {
		g.ID = MakeID()
	}
	b.req.Gifts = append(b.req.Gifts, g)
	return b
}

// WithGiftTo appends an outright gift to an individual with the given
// relationship.
func (b *CalculationRequestBuilder) WithGiftTo(relationship, date string, amount int64) *CalculationRequestBuilder {
	return b.WithGift(request.Gift{
		Date:          date,
		Amount:        decimal.NewFromInt(amount),
		RecipientType: "individual",
		RecipientID:   MakeID(),
		Relationship:  relationship,
	})
}

// WithTrust appends a trust settlement.
func (b *CalculationRequestBuilder) WithTrust(tr request.Trust) *CalculationRequestBuilder {
	if tr.ID == "" {
		tr.ID = MakeID()
	}
	b.req.Trusts = append(b.req.Trusts, tr)
	return b
}

// WithReliefAsset appends a business or agricultural relief claim.
func (b *CalculationRequestBuilder) WithReliefAsset(category string, value int64, ownershipMonths int) *CalculationRequestBuilder {
	b.req.ReliefAssets = append(b.req.ReliefAssets, request.ReliefAsset{
		ID:              MakeID(),
		Description:     category,
		Category:        category,
		Value:           decimal.NewFromInt(value),
		OwnershipMonths: ownershipMonths,
	})
	return b
}

// WithTransferredNRB sets the transferred nil-rate band percentage.
func (b *CalculationRequestBuilder) WithTransferredNRB(percent int64) *CalculationRequestBuilder {
	b.req.Allowances.TransferredNRBPercent = decimal.NewFromInt(percent)
	return b
}

// WithTransferredRNRB sets the transferred residence nil-rate band percentage.
func (b *CalculationRequestBuilder) WithTransferredRNRB(percent int64) *CalculationRequestBuilder {
	b.req.Allowances.TransferredRNRBPercent = decimal.NewFromInt(percent)
	return b
}

// WithQuickSuccession appends a prior charge eligible for quick succession
// relief.
func (b *CalculationRequestBuilder) WithQuickSuccession(firstDeathDate string, taxPaid int64) *CalculationRequestBuilder {
	b.req.QuickSuccession = append(b.req.QuickSuccession, request.QuickSuccessionCredit{
		FirstDeathDate: firstDeathDate,
		TaxPaid:        decimal.NewFromInt(taxPaid),
	})
	return b
}

// Build returns the assembled request.
func (b *CalculationRequestBuilder) Build() request.CalculationRequest {
	return b.req
}

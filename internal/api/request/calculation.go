package request

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/model"
)

// DateFormat is the wire format for all calendar dates in the API.
const DateFormat = "2006-01-02"

// AssetEntry mirrors model.AssetEntry with a wire-friendly shape.
type AssetEntry struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// LiabilityEntry mirrors model.LiabilityEntry.
type LiabilityEntry struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// DownsizingEvent mirrors model.DownsizingEvent with a string date.
type DownsizingEvent struct {
	Date                   string          `json:"date"`
	LostResidenceValue     decimal.Decimal `json:"lostResidenceValue"`
	ValueLeftToDescendants decimal.Decimal `json:"valueLeftToDescendants"`
}

// EstateProfile is the wire form of the estate snapshot.
type EstateProfile struct {
	Assets                       []AssetEntry     `json:"assets"`
	Liabilities                  []LiabilityEntry `json:"liabilities"`
	ResidenceValue               decimal.Decimal  `json:"residenceValue"`
	ResidencePassesToDescendants bool             `json:"residencePassesToDescendants"`
	SurvivorshipValue            decimal.Decimal  `json:"survivorshipValue"`
	CharitableLegacies           decimal.Decimal  `json:"charitableLegacies"`
	OwnedByLongTermResident      bool             `json:"ownedByLongTermResident"`
	Downsizing                   *DownsizingEvent `json:"downsizing,omitempty"`
}

// Gift is the wire form of a lifetime gift.
type Gift struct {
	ID                  string          `json:"id"`
	Date                string          `json:"date"`
	Amount              decimal.Decimal `json:"amount"`
	RecipientType       string          `json:"recipientType"`
	RecipientID         string          `json:"recipientId"`
	Relationship        string          `json:"relationship"`
	IsWeddingGift       bool            `json:"isWeddingGift"`
	IsNormalExpenditure bool            `json:"isNormalExpenditure"`
}

// TrustExit is the wire form of assets leaving a trust.
type TrustExit struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Trust is the wire form of a settled trust.
type Trust struct {
	ID                     string          `json:"id"`
	Type                   string          `json:"type"`
	CreationDate           string          `json:"creationDate"`
	EntryValue             decimal.Decimal `json:"entryValue"`
	CurrentValue           decimal.Decimal `json:"currentValue"`
	SettlorPriorCumulation decimal.Decimal `json:"settlorPriorCumulation"`
	TaxBorneByTrust        bool            `json:"taxBorneByTrust"`
	LifeTenantIsDescendant bool            `json:"lifeTenantIsDescendant"`
	Exits                  []TrustExit     `json:"exits,omitempty"`
}

// ReliefAsset is the wire form of a BR/APR claim.
type ReliefAsset struct {
	ID              string          `json:"id"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Value           decimal.Decimal `json:"value"`
	OwnershipMonths int             `json:"ownershipMonths"`
	IsExceptedAsset bool            `json:"isExceptedAsset"`
}

// QuickSuccessionCredit is the wire form of a prior IHT charge.
type QuickSuccessionCredit struct {
	FirstDeathDate string          `json:"firstDeathDate"`
	TaxPaid        decimal.Decimal `json:"taxPaid"`
}

// AllowanceClaim is the wire form of the allowance inputs.
type AllowanceClaim struct {
	TransferredNRBPercent  decimal.Decimal `json:"transferredNrbPercent"`
	TransferredRNRBPercent decimal.Decimal `json:"transferredRnrbPercent"`
	ClaimRNRB              bool            `json:"claimRnrb"`
}

// CalculationRequest is the body of POST /api/iht/calculate. TaxYear is
// optional; when empty the rates row is resolved from the death date.
type CalculationRequest struct {
	TaxYear         string                  `json:"taxYear,omitempty"`
	DeathDate       string                  `json:"deathDate"`
	Profile         EstateProfile           `json:"profile"`
	Gifts           []Gift                  `json:"gifts"`
	Trusts          []Trust                 `json:"trusts"`
	ReliefAssets    []ReliefAsset           `json:"reliefAssets"`
	Allowances      AllowanceClaim          `json:"allowances"`
	QuickSuccession []QuickSuccessionCredit `json:"quickSuccession"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// ToProfile converts the wire profile to the domain form. Dates must have
// been validated first.
func (p EstateProfile) ToProfile() model.EstateProfile {
	out := model.EstateProfile{
		ResidenceValue:               p.ResidenceValue,
		ResidencePassesToDescendants: p.ResidencePassesToDescendants,
		SurvivorshipValue:            p.SurvivorshipValue,
		CharitableLegacies:           p.CharitableLegacies,
		OwnedByLongTermResident:      p.OwnedByLongTermResident,
	}
	for _, a := range p.Assets {
		out.Assets = append(out.Assets, model.AssetEntry(a))
	}
	for _, l := range p.Liabilities {
		out.Liabilities = append(out.Liabilities, model.LiabilityEntry(l))
	}
	if p.Downsizing != nil {
		date, _ := parseDate(p.Downsizing.Date)
		out.Downsizing = &model.DownsizingEvent{
			Date:                   date,
			LostResidenceValue:     p.Downsizing.LostResidenceValue,
			ValueLeftToDescendants: p.Downsizing.ValueLeftToDescendants,
		}
	}
	return out
}

// ToGifts converts the wire gifts to the domain form.
func (r CalculationRequest) ToGifts() []model.Gift {
	out := make([]model.Gift, 0, len(r.Gifts))
	for _, g := range r.Gifts {
		date, _ := parseDate(g.Date)
		out = append(out, model.Gift{
			ID:                  g.ID,
			Date:                date,
			Amount:              g.Amount,
			RecipientType:       model.RecipientType(g.RecipientType),
			RecipientID:         g.RecipientID,
			Relationship:        model.Relationship(g.Relationship),
			IsWeddingGift:       g.IsWeddingGift,
			IsNormalExpenditure: g.IsNormalExpenditure,
		})
	}
	return out
}

// ToTrusts converts the wire trusts to the domain form.
func (r CalculationRequest) ToTrusts() []model.Trust {
	out := make([]model.Trust, 0, len(r.Trusts))
	for _, t := range r.Trusts {
		created, _ := parseDate(t.CreationDate)
		trust := model.Trust{
			ID:                     t.ID,
			Type:                   model.TrustType(t.Type),
			CreationDate:           created,
			EntryValue:             t.EntryValue,
			CurrentValue:           t.CurrentValue,
			SettlorPriorCumulation: t.SettlorPriorCumulation,
			TaxBorneByTrust:        t.TaxBorneByTrust,
			LifeTenantIsDescendant: t.LifeTenantIsDescendant,
		}
		for _, e := range t.Exits {
			date, _ := parseDate(e.Date)
			trust.Exits = append(trust.Exits, model.TrustExit{Date: date, Amount: e.Amount})
		}
		out = append(out, trust)
	}
	return out
}

// ToReliefAssets converts the wire relief claims to the domain form.
func (r CalculationRequest) ToReliefAssets() []model.ReliefAsset {
	out := make([]model.ReliefAsset, 0, len(r.ReliefAssets))
	for _, a := range r.ReliefAssets {
		out = append(out, model.ReliefAsset{
			ID:              a.ID,
			Description:     a.Description,
			Category:        model.ReliefCategory(a.Category),
			Value:           a.Value,
			OwnershipMonths: a.OwnershipMonths,
			IsExceptedAsset: a.IsExceptedAsset,
		})
	}
	return out
}

// ToQuickSuccession converts the wire QSR credits to the domain form.
func (r CalculationRequest) ToQuickSuccession() []model.QuickSuccessionCredit {
	out := make([]model.QuickSuccessionCredit, 0, len(r.QuickSuccession))
	for _, c := range r.QuickSuccession {
		date, _ := parseDate(c.FirstDeathDate)
		out = append(out, model.QuickSuccessionCredit{FirstDeathDate: date, TaxPaid: c.TaxPaid})
	}
	return out
}

// ToAllowanceClaim converts the wire allowance inputs to the domain form.
func (r CalculationRequest) ToAllowanceClaim() model.AllowanceClaim {
	return model.AllowanceClaim(r.Allowances)
}

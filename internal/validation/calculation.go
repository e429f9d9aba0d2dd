package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/finplanner/iht-engine/internal/api/request"
)

var validRecipientType = map[string]bool{
	"individual": true, "trust": true,
}

var validRelationship = map[string]bool{
	"spouse": true, "charity": true, "child": true, "grandchild": true, "other": true,
}

var validTrustType = map[string]bool{
	"discretionary": true, "interestInPossession": true, "bareTrust": true,
	"disabledPersonTrust": true, "bereavedMinorTrust": true,
}

var validReliefCategory = map[string]bool{
	"unincorporatedBusiness": true, "unquotedShares": true,
	"quotedControllingShares": true, "businessLandMachinery": true,
	"agriculturalProperty": true, "agriculturalTenancy": true,
}

func parseableDate(s string) bool {
	_, err := time.Parse(request.DateFormat, s)
	return err == nil
}

// ValidateCalculation checks the calculation request field by field. Every
// problem is reported at once, keyed by field path, so the caller can fix
// the whole payload in one round trip.
//
//nolint:gocyclo // field-by-field input validation
func ValidateCalculation(req request.CalculationRequest) error {
	errors := make(map[string]string)

	var deathDate time.Time
	if strings.TrimSpace(req.DeathDate) == "" {
		errors["deathDate"] = "death date is required"
	} else if d, err := time.Parse(request.DateFormat, req.DeathDate); err != nil {
		errors["deathDate"] = "death date must be formatted YYYY-MM-DD"
	} else {
		deathDate = d
	}

	for i, a := range req.Profile.Assets {
		if a.Value.IsNegative() {
			errors[fmt.Sprintf("profile.assets[%d].value", i)] = "asset value cannot be negative"
		}
	}
	for i, l := range req.Profile.Liabilities {
		if l.Amount.IsNegative() {
			errors[fmt.Sprintf("profile.liabilities[%d].amount", i)] = "liability amount cannot be negative"
		}
	}
	if req.Profile.ResidenceValue.IsNegative() {
		errors["profile.residenceValue"] = "residence value cannot be negative"
	}
	if req.Profile.SurvivorshipValue.IsNegative() {
		errors["profile.survivorshipValue"] = "survivorship value cannot be negative"
	}
	if req.Profile.CharitableLegacies.IsNegative() {
		errors["profile.charitableLegacies"] = "charitable legacies cannot be negative"
	}
	if d := req.Profile.Downsizing; d != nil {
		if !parseableDate(d.Date) {
			errors["profile.downsizing.date"] = "downsizing date must be formatted YYYY-MM-DD"
		}
		if d.LostResidenceValue.IsNegative() {
			errors["profile.downsizing.lostResidenceValue"] = "lost residence value cannot be negative"
		}
		if d.ValueLeftToDescendants.IsNegative() {
			errors["profile.downsizing.valueLeftToDescendants"] = "value left to descendants cannot be negative"
		}
	}

	seenGiftIDs := make(map[string]bool)
	for i, g := range req.Gifts {
		field := func(name string) string { return fmt.Sprintf("gifts[%d].%s", i, name) }
		if strings.TrimSpace(g.ID) == "" {
			errors[field("id")] = "gift id is required"
		} else if seenGiftIDs[g.ID] {
			errors[field("id")] = fmt.Sprintf("duplicate gift id: %s", g.ID)
		} else {
			seenGiftIDs[g.ID] = true
		}
		if !parseableDate(g.Date) {
			errors[field("date")] = "gift date must be formatted YYYY-MM-DD"
		} else if !deathDate.IsZero() {
			d, _ := time.Parse(request.DateFormat, g.Date)
			if d.After(deathDate) {
				errors[field("date")] = "gift date cannot be after the death date"
			}
		}
		if g.Amount.IsNegative() {
			errors[field("amount")] = "gift amount cannot be negative"
		}
		if !validRecipientType[g.RecipientType] {
			errors[field("recipientType")] = fmt.Sprintf("invalid recipient type: %s", g.RecipientType)
		}
		if !validRelationship[g.Relationship] {
			errors[field("relationship")] = fmt.Sprintf("invalid relationship: %s", g.Relationship)
		}
	}

	for i, t := range req.Trusts {
		field := func(name string) string { return fmt.Sprintf("trusts[%d].%s", i, name) }
		if strings.TrimSpace(t.ID) == "" {
			errors[field("id")] = "trust id is required"
		}
		if !validTrustType[t.Type] {
			errors[field("type")] = fmt.Sprintf("invalid trust type: %s", t.Type)
		}
		if !parseableDate(t.CreationDate) {
			errors[field("creationDate")] = "creation date must be formatted YYYY-MM-DD"
		}
		if t.EntryValue.IsNegative() {
			errors[field("entryValue")] = "entry value cannot be negative"
		}
		if t.CurrentValue.IsNegative() {
			errors[field("currentValue")] = "current value cannot be negative"
		}
		if t.SettlorPriorCumulation.IsNegative() {
			errors[field("settlorPriorCumulation")] = "settlor cumulation cannot be negative"
		}
		for j, e := range t.Exits {
			if !parseableDate(e.Date) {
				errors[fmt.Sprintf("trusts[%d].exits[%d].date", i, j)] = "exit date must be formatted YYYY-MM-DD"
			}
			if e.Amount.IsNegative() {
				errors[fmt.Sprintf("trusts[%d].exits[%d].amount", i, j)] = "exit amount cannot be negative"
			}
		}
	}

	for i, a := range req.ReliefAssets {
		field := func(name string) string { return fmt.Sprintf("reliefAssets[%d].%s", i, name) }
		if strings.TrimSpace(a.ID) == "" {
			errors[field("id")] = "relief asset id is required"
		}
		if !validReliefCategory[a.Category] {
			errors[field("category")] = fmt.Sprintf("invalid relief category: %s", a.Category)
		}
		if a.Value.IsNegative() {
			errors[field("value")] = "asset value cannot be negative"
		}
		if a.OwnershipMonths < 0 {
			errors[field("ownershipMonths")] = "ownership months cannot be negative"
		}
	}

	if req.Allowances.TransferredNRBPercent.IsNegative() {
		errors["allowances.transferredNrbPercent"] = "transferred NRB percentage cannot be negative"
	}
	if req.Allowances.TransferredRNRBPercent.IsNegative() {
		errors["allowances.transferredRnrbPercent"] = "transferred RNRB percentage cannot be negative"
	}

	for i, c := range req.QuickSuccession {
		if !parseableDate(c.FirstDeathDate) {
			errors[fmt.Sprintf("quickSuccession[%d].firstDeathDate", i)] = "first death date must be formatted YYYY-MM-DD"
		}
		if c.TaxPaid.IsNegative() {
			errors[fmt.Sprintf("quickSuccession[%d].taxPaid", i)] = "tax paid cannot be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/apperrors"
	"github.com/finplanner/iht-engine/internal/model"
)

var (
	rateFull = decimal.NewFromInt(1)
	rateHalf = decimal.RequireFromString("0.5")
)

// nominalReliefRate maps a relief category to its unconstrained rate.
func nominalReliefRate(c model.ReliefCategory) (decimal.Decimal, error) {
	switch c {
	case model.ReliefUnincorporatedBusiness,
		model.ReliefUnquotedShares,
		model.ReliefAgriculturalProperty:
		return rateFull, nil
	case model.ReliefQuotedControllingShares,
		model.ReliefBusinessLandMachinery,
		model.ReliefAgriculturalTenancy:
		return rateHalf, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown relief category %q: %w",
			c, apperrors.ErrInvalidReliefAsset)
	}
}

// calculateReliefs applies Business and Agricultural Relief to the claimed
// assets. Failed eligibility tests (ownership period, excepted asset) grant
// 0% with a reason in the line rather than aborting: "the relief doesn't
// apply" is an expected outcome, and HMRC determination is the final word.
//
// When the combined-relief cap is enabled for the tax year, value relieved
// at 100% beyond the cap reverts to 50%. The cap is apportioned pro-rata
// across the qualifying 100% assets so the result does not depend on input
// order.
func calculateReliefs(assets []model.ReliefAsset, rates model.TaxYearRates) (model.ReliefBreakdown, error) {
	breakdown := model.ReliefBreakdown{
		Lines:       make([]model.ReliefLine, 0, len(assets)),
		TotalRelief: decimal.Zero,
		Cap:         rates.ReliefCap,
	}

	fullRateValue := decimal.Zero

	for _, a := range assets {
		if a.Value.IsNegative() {
			return model.ReliefBreakdown{}, fmt.Errorf("relief asset %q has negative value %s: %w",
				a.ID, a.Value, apperrors.ErrInvalidReliefAsset)
		}

		nominal, err := nominalReliefRate(a.Category)
		if err != nil {
			return model.ReliefBreakdown{}, err
		}

		line := model.ReliefLine{
			AssetID:     a.ID,
			Category:    a.Category,
			Value:       a.Value,
			NominalRate: nominal,
			GrantedRate: decimal.Zero,
			Relief:      decimal.Zero,
		}

		switch {
		case a.IsExceptedAsset:
			line.Ineligible = true
			line.Reason = "excepted asset: not used for business purposes"
		case a.OwnershipMonths < rates.MinOwnershipMonths:
			line.Ineligible = true
			line.Reason = fmt.Sprintf("ownership period %d months is below the %d month minimum",
				a.OwnershipMonths, rates.MinOwnershipMonths)
		default:
			line.GrantedRate = nominal
			line.Relief = a.Value.Mul(nominal)
			if nominal.Equal(rateFull) {
				fullRateValue = fullRateValue.Add(a.Value)
			}
		}

		breakdown.Lines = append(breakdown.Lines, line)
	}

	if rates.ReliefCapEnabled && fullRateValue.GreaterThan(rates.ReliefCap) {
		// Fraction of each 100%-rate asset still relieved in full; the rest
		// drops to 50%.
		breakdown.CapApplied = true
		capped := rates.ReliefCap.Div(fullRateValue)
		for i := range breakdown.Lines {
			line := &breakdown.Lines[i]
			if line.Ineligible || !line.GrantedRate.Equal(rateFull) {
				continue
			}
			line.GrantedRate = capped.Add(rateFull.Sub(capped).Mul(rateHalf))
			line.Relief = line.Value.Mul(line.GrantedRate)
		}
	}

	for _, line := range breakdown.Lines {
		breakdown.TotalRelief = breakdown.TotalRelief.Add(line.Relief)
	}

	return breakdown, nil
}

package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/model"
)

// estateComponents splits the chargeable estate into its independently
// rate-assessed components. Reliefs and charitable legacies are attributed
// to the free (general) estate; survivorship property and folded
// interest-in-possession funds stand alone.
func estateComponents(
	profile model.EstateProfile,
	valuation model.Valuation,
	reliefs model.ReliefBreakdown,
	settledValue decimal.Decimal,
) []model.ComponentTax {
	survivorship := decimal.Min(profile.SurvivorshipValue, valuation.NetEstateValue)
	general := decimal.Max(decimal.Zero, valuation.NetEstateValue.
		Sub(survivorship).
		Sub(reliefs.TotalRelief).
		Sub(profile.CharitableLegacies))

	components := []model.ComponentTax{
		{
			Component:       model.ComponentGeneral,
			ChargeableValue: general,
			BaselineAmount:  general,
			CharitableGifts: profile.CharitableLegacies,
		},
	}
	if survivorship.IsPositive() {
		components = append(components, model.ComponentTax{
			Component:       model.ComponentSurvivorship,
			ChargeableValue: survivorship,
			BaselineAmount:  survivorship,
			CharitableGifts: decimal.Zero,
		})
	}
	if settledValue.IsPositive() {
		components = append(components, model.ComponentTax{
			Component:       model.ComponentSettledProperty,
			ChargeableValue: settledValue,
			BaselineAmount:  settledValue,
			CharitableGifts: decimal.Zero,
		})
	}
	return components
}

// resolveRates applies the charitable-rate test to each component
// independently: where charitable gifts reach the threshold fraction of the
// component's baseline amount, that component is taxed at the reduced death
// rate. A mixed estate can carry both rates at once. There is no error path;
// the standard rate is the default.
func resolveRates(components []model.ComponentTax, rates model.TaxYearRates) {
	for i := range components {
		c := &components[i]
		required := c.BaselineAmount.Mul(rates.CharitableThreshold)

		if c.BaselineAmount.IsPositive() && c.CharitableGifts.GreaterThanOrEqual(required) &&
			c.CharitableGifts.IsPositive() {
			c.RateApplied = rates.ReducedDeathRate
			c.RateReason = fmt.Sprintf("charitable gifts %s meet the %s%% baseline test (baseline %s)",
				c.CharitableGifts.StringFixed(2),
				rates.CharitableThreshold.Mul(hundred).StringFixed(0),
				c.BaselineAmount.StringFixed(2))
			continue
		}

		c.RateApplied = rates.DeathRate
		c.RateReason = fmt.Sprintf("charitable gifts below %s%% of baseline amount %s",
			rates.CharitableThreshold.Mul(hundred).StringFixed(0),
			c.BaselineAmount.StringFixed(2))
	}
}

// apportionEstateTax spreads the taxable estate across the components
// pro-rata to their chargeable values and taxes each share at its resolved
// rate. Returns the total estate tax.
func apportionEstateTax(components []model.ComponentTax, taxableEstate decimal.Decimal) decimal.Decimal {
	totalChargeable := decimal.Zero
	for _, c := range components {
		totalChargeable = totalChargeable.Add(c.ChargeableValue)
	}

	estateTax := decimal.Zero
	for i := range components {
		c := &components[i]
		c.TaxableShare = decimal.Zero
		c.TaxDue = decimal.Zero
		if totalChargeable.IsPositive() && taxableEstate.IsPositive() {
			c.TaxableShare = taxableEstate.Mul(c.ChargeableValue).Div(totalChargeable)
			c.TaxDue = c.TaxableShare.Mul(c.RateApplied)
		}
		estateTax = estateTax.Add(c.TaxDue)
	}
	return estateTax
}

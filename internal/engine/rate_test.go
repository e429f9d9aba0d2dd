package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/model"
)

// TestEstateComponents tests the split of the chargeable estate.
//
// WHY: Components are rate-assessed independently, so value must land in
// exactly one component and charitable legacies must only count against the
// general estate.
func TestEstateComponents(t *testing.T) {
	t.Run("single general component by default", func(t *testing.T) {
		components := estateComponents(
			model.EstateProfile{OwnedByLongTermResident: true},
			valuationOf(800000),
			model.ReliefBreakdown{TotalRelief: decimal.Zero},
			decimal.Zero,
		)

		if len(components) != 1 {
			t.Fatalf("expected 1 component, got %d", len(components))
		}
		if components[0].Component != model.ComponentGeneral {
			t.Errorf("component = %q, want general", components[0].Component)
		}
		assertDecimal(t, "ChargeableValue", components[0].ChargeableValue, "800000")
	})

	t.Run("survivorship and settled property stand alone", func(t *testing.T) {
		components := estateComponents(
			model.EstateProfile{
				OwnedByLongTermResident: true,
				SurvivorshipValue:       money(200000),
			},
			valuationOf(800000),
			model.ReliefBreakdown{TotalRelief: decimal.Zero},
			money(150000),
		)

		if len(components) != 3 {
			t.Fatalf("expected 3 components, got %d", len(components))
		}
		assertDecimal(t, "general", components[0].ChargeableValue, "600000")
		assertDecimal(t, "survivorship", components[1].ChargeableValue, "200000")
		assertDecimal(t, "settled", components[2].ChargeableValue, "150000")
	})

	t.Run("reliefs and charity reduce only the general estate", func(t *testing.T) {
		components := estateComponents(
			model.EstateProfile{
				OwnedByLongTermResident: true,
				SurvivorshipValue:       money(200000),
				CharitableLegacies:      money(100000),
			},
			valuationOf(800000),
			model.ReliefBreakdown{TotalRelief: money(50000)},
			decimal.Zero,
		)

		assertDecimal(t, "general", components[0].ChargeableValue, "450000")
		assertDecimal(t, "survivorship", components[1].ChargeableValue, "200000")
		assertDecimal(t, "general charity", components[0].CharitableGifts, "100000")
		assertDecimal(t, "survivorship charity", components[1].CharitableGifts, "0")
	})

	t.Run("survivorship is capped at the net estate", func(t *testing.T) {
		components := estateComponents(
			model.EstateProfile{
				OwnedByLongTermResident: true,
				SurvivorshipValue:       money(900000),
			},
			valuationOf(800000),
			model.ReliefBreakdown{TotalRelief: decimal.Zero},
			decimal.Zero,
		)

		assertDecimal(t, "general", components[0].ChargeableValue, "0")
		assertDecimal(t, "survivorship", components[1].ChargeableValue, "800000")
	})
}

// TestResolveRates tests the 10% charitable baseline test per component.
//
// WHY: The reduced 36% rate turns on a strict threshold; a gift a pound
// short of 10% of the baseline stays at 40%, and each component is tested
// on its own.
func TestResolveRates(t *testing.T) {
	rates := testRates()

	component := func(baseline, charity int64) model.ComponentTax {
		return model.ComponentTax{
			Component:       model.ComponentGeneral,
			ChargeableValue: money(baseline),
			BaselineAmount:  money(baseline),
			CharitableGifts: money(charity),
		}
	}

	t.Run("charity at the threshold earns the reduced rate", func(t *testing.T) {
		components := []model.ComponentTax{component(900000, 90000)}
		resolveRates(components, rates)

		assertDecimal(t, "RateApplied", components[0].RateApplied, "0.36")
		if components[0].RateReason == "" {
			t.Error("expected a rate reason")
		}
	})

	t.Run("charity just under the threshold stays at the standard rate", func(t *testing.T) {
		components := []model.ComponentTax{component(900000, 89999)}
		resolveRates(components, rates)

		assertDecimal(t, "RateApplied", components[0].RateApplied, "0.40")
	})

	t.Run("no charity stays at the standard rate", func(t *testing.T) {
		components := []model.ComponentTax{component(900000, 0)}
		resolveRates(components, rates)

		assertDecimal(t, "RateApplied", components[0].RateApplied, "0.40")
	})

	t.Run("components resolve independently", func(t *testing.T) {
		components := []model.ComponentTax{
			component(900000, 100000),
			{
				Component:       model.ComponentSurvivorship,
				ChargeableValue: money(400000),
				BaselineAmount:  money(400000),
				CharitableGifts: decimal.Zero,
			},
		}
		resolveRates(components, rates)

		assertDecimal(t, "general rate", components[0].RateApplied, "0.36")
		assertDecimal(t, "survivorship rate", components[1].RateApplied, "0.40")
	})
}

// TestApportionEstateTax tests the pro-rata spread of the taxable estate.
//
// WHY: Allowances are deducted from the estate as a whole, so each
// component must bear tax on its proportional share at its own rate.
func TestApportionEstateTax(t *testing.T) {
	t.Run("mixed-rate estate", func(t *testing.T) {
		components := []model.ComponentTax{
			{Component: model.ComponentGeneral, ChargeableValue: money(600000),
				RateApplied: decimal.RequireFromString("0.36")},
			{Component: model.ComponentSurvivorship, ChargeableValue: money(400000),
				RateApplied: decimal.RequireFromString("0.40")},
		}

		total := apportionEstateTax(components, money(500000))

		assertDecimal(t, "general share", components[0].TaxableShare, "300000")
		assertDecimal(t, "survivorship share", components[1].TaxableShare, "200000")
		assertDecimal(t, "general tax", components[0].TaxDue, "108000")
		assertDecimal(t, "survivorship tax", components[1].TaxDue, "80000")
		assertDecimal(t, "total", total, "188000")
	})

	t.Run("zero taxable estate means zero tax", func(t *testing.T) {
		components := []model.ComponentTax{
			{Component: model.ComponentGeneral, ChargeableValue: money(300000),
				RateApplied: decimal.RequireFromString("0.40")},
		}

		total := apportionEstateTax(components, decimal.Zero)

		assertDecimal(t, "total", total, "0")
		assertDecimal(t, "share", components[0].TaxableShare, "0")
	})
}

package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/apperrors"
	"github.com/finplanner/iht-engine/internal/model"
)

// normalizeValuation aggregates the disaggregated asset and liability
// entries into gross, liability and net figures. Any negative entry aborts
// the calculation: a negative valuation is an input defect, not a tax
// outcome.
func normalizeValuation(profile model.EstateProfile) (model.Valuation, error) {
	gross := decimal.Zero
	for _, a := range profile.Assets {
		if a.Value.IsNegative() {
			return model.Valuation{}, fmt.Errorf("asset %q has negative value %s: %w",
				a.ID, a.Value, apperrors.ErrInvalidValuation)
		}
		gross = gross.Add(a.Value)
	}

	liabilities := decimal.Zero
	for _, l := range profile.Liabilities {
		if l.Amount.IsNegative() {
			return model.Valuation{}, fmt.Errorf("liability %q has negative amount %s: %w",
				l.ID, l.Amount, apperrors.ErrInvalidValuation)
		}
		liabilities = liabilities.Add(l.Amount)
	}

	if profile.ResidenceValue.IsNegative() {
		return model.Valuation{}, fmt.Errorf("residence value %s is negative: %w",
			profile.ResidenceValue, apperrors.ErrInvalidValuation)
	}
	if profile.SurvivorshipValue.IsNegative() {
		return model.Valuation{}, fmt.Errorf("survivorship value %s is negative: %w",
			profile.SurvivorshipValue, apperrors.ErrInvalidValuation)
	}
	if profile.CharitableLegacies.IsNegative() {
		return model.Valuation{}, fmt.Errorf("charitable legacies %s are negative: %w",
			profile.CharitableLegacies, apperrors.ErrInvalidValuation)
	}

	net := gross.Sub(liabilities)
	if net.IsNegative() {
		// An insolvent estate owes no tax; the net value floors at zero so
		// downstream stages never see a negative base.
		net = decimal.Zero
	}

	return model.Valuation{
		GrossEstateValue: gross,
		Liabilities:      liabilities,
		NetEstateValue:   net,
	}, nil
}

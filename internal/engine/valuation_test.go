package engine

import (
	"errors"
	"testing"

	"github.com/finplanner/iht-engine/internal/apperrors"
	"github.com/finplanner/iht-engine/internal/model"
)

// TestNormalizeValuation tests aggregation of the estate snapshot.
//
// WHY: Every later stage keys off the net estate figure; negative entries
// are input defects that must abort, while an insolvent estate is a valid
// zero-tax outcome.
func TestNormalizeValuation(t *testing.T) {
	t.Run("aggregates assets and liabilities", func(t *testing.T) {
		v, err := normalizeValuation(model.EstateProfile{
			Assets: []model.AssetEntry{
				{ID: "a1", Value: money(500000)},
				{ID: "a2", Value: money(300000)},
			},
			Liabilities: []model.LiabilityEntry{
				{ID: "l1", Amount: money(100000)},
			},
		})
		if err != nil {
			t.Fatalf("normalizeValuation() returned unexpected error: %v", err)
		}

		assertDecimal(t, "GrossEstateValue", v.GrossEstateValue, "800000")
		assertDecimal(t, "Liabilities", v.Liabilities, "100000")
		assertDecimal(t, "NetEstateValue", v.NetEstateValue, "700000")
	})

	t.Run("insolvent estate floors at zero", func(t *testing.T) {
		v, err := normalizeValuation(model.EstateProfile{
			Assets:      []model.AssetEntry{{ID: "a1", Value: money(100000)}},
			Liabilities: []model.LiabilityEntry{{ID: "l1", Amount: money(250000)}},
		})
		if err != nil {
			t.Fatalf("normalizeValuation() returned unexpected error: %v", err)
		}

		assertDecimal(t, "NetEstateValue", v.NetEstateValue, "0")
	})

	t.Run("negative entries abort", func(t *testing.T) {
		profiles := []model.EstateProfile{
			{Assets: []model.AssetEntry{{ID: "a1", Value: money(-1)}}},
			{Liabilities: []model.LiabilityEntry{{ID: "l1", Amount: money(-1)}}},
			{ResidenceValue: money(-1)},
			{SurvivorshipValue: money(-1)},
			{CharitableLegacies: money(-1)},
		}

		for i, p := range profiles {
			if _, err := normalizeValuation(p); !errors.Is(err, apperrors.ErrInvalidValuation) {
				t.Errorf("profile %d: expected ErrInvalidValuation, got %v", i, err)
			}
		}
	})

	t.Run("empty estate is valid", func(t *testing.T) {
		v, err := normalizeValuation(model.EstateProfile{})
		if err != nil {
			t.Fatalf("normalizeValuation() returned unexpected error: %v", err)
		}
		assertDecimal(t, "NetEstateValue", v.NetEstateValue, "0")
	})
}

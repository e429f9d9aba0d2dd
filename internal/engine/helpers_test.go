package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/model"
)

// testRates returns the 2024/25 statutory figures used across the engine
// tests.
func testRates() model.TaxYearRates {
	return model.TaxYearRates{
		TaxYear:                 "2024/25",
		StartDate:               date(2024, 4, 6),
		EndDate:                 date(2025, 4, 5),
		NilRateBand:             money(325000),
		ResidenceNilRateBand:    money(175000),
		ResidenceTaperThreshold: money(2000000),
		DeathRate:               decimal.RequireFromString("0.40"),
		ReducedDeathRate:        decimal.RequireFromString("0.36"),
		LifetimeRate:            decimal.RequireFromString("0.20"),
		GrossedUpRate:           decimal.RequireFromString("0.25"),
		CharitableThreshold:     decimal.RequireFromString("0.10"),
		AnnualExemption:         money(3000),
		SmallGiftLimit:          money(250),
		WeddingGiftChild:        money(5000),
		WeddingGiftGrandchild:   money(2500),
		WeddingGiftOther:        money(1000),
		ReliefCapEnabled:        false,
		ReliefCap:               money(1000000),
		MinOwnershipMonths:      24,
	}
}

// testRatesWithCap returns the same figures with the combined relief cap
// switched on, as seeded for 2026/27.
func testRatesWithCap() model.TaxYearRates {
	r := testRates()
	r.TaxYear = "2026/27"
	r.StartDate = date(2026, 4, 6)
	r.EndDate = date(2027, 4, 5)
	r.ReliefCapEnabled = true
	return r
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func money(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

// assertDecimal fails the test when got differs from want numerically.
func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

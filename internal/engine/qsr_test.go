package engine

import (
	"testing"

	"github.com/finplanner/iht-engine/internal/model"
)

// TestQSRPercent tests the quick succession relief bands.
//
// WHY: The bands step down 20% per complete year and run out at 5 years;
// the boundaries are by complete years, not rounded fractions.
func TestQSRPercent(t *testing.T) {
	tests := []struct {
		years int
		want  int64
	}{
		{0, 100},
		{1, 80},
		{2, 60},
		{3, 40},
		{4, 20},
		{5, 0},
		{10, 0},
	}

	for _, tt := range tests {
		if got := qsrPercent(tt.years); got != tt.want {
			t.Errorf("qsrPercent(%d) = %d, want %d", tt.years, got, tt.want)
		}
	}
}

// TestCalculateQSR tests the assembled credit.
func TestCalculateQSR(t *testing.T) {
	death := date(2024, 9, 1)

	t.Run("banded credit by complete years", func(t *testing.T) {
		out := calculateQSR([]model.QuickSuccessionCredit{
			{FirstDeathDate: date(2022, 3, 1), TaxPaid: money(50000)},
		}, death, money(200000))

		credit := out.Credits[0]
		if credit.YearsElapsed != 2 || credit.Percent != 60 {
			t.Errorf("got %d years at %d%%, want 2 years at 60%%", credit.YearsElapsed, credit.Percent)
		}
		assertDecimal(t, "Credit", credit.Credit, "30000")
		assertDecimal(t, "Total", out.Total, "30000")
	})

	t.Run("anniversary on the death date completes the year", func(t *testing.T) {
		out := calculateQSR([]model.QuickSuccessionCredit{
			{FirstDeathDate: date(2023, 9, 1), TaxPaid: money(50000)},
		}, death, money(200000))

		if out.Credits[0].Percent != 80 {
			t.Errorf("percent = %d, want 80", out.Credits[0].Percent)
		}
	})

	t.Run("credits beyond 5 years lapse", func(t *testing.T) {
		out := calculateQSR([]model.QuickSuccessionCredit{
			{FirstDeathDate: date(2018, 1, 1), TaxPaid: money(50000)},
		}, death, money(200000))

		assertDecimal(t, "Total", out.Total, "0")
	})

	t.Run("total is capped at the estate tax", func(t *testing.T) {
		out := calculateQSR([]model.QuickSuccessionCredit{
			{FirstDeathDate: date(2024, 5, 1), TaxPaid: money(100000)},
		}, death, money(60000))

		assertDecimal(t, "Total", out.Total, "60000")
	})

	t.Run("multiple credits accumulate", func(t *testing.T) {
		out := calculateQSR([]model.QuickSuccessionCredit{
			{FirstDeathDate: date(2024, 5, 1), TaxPaid: money(10000)},
			{FirstDeathDate: date(2021, 5, 1), TaxPaid: money(10000)},
		}, death, money(200000))

		// 100% of the first plus 40% of the second.
		assertDecimal(t, "Total", out.Total, "14000")
	})
}

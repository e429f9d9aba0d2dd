package engine

import "testing"

// TestTaperReliefPercent tests the statutory taper relief bands.
//
// WHY: Taper relief is the single most consulted reference figure in estate
// planning. The band boundaries are inclusive at the lower edge and the table
// must agree exactly with the statutory schedule.
func TestTaperReliefPercent(t *testing.T) {
	tests := []struct {
		name  string
		years float64
		want  int64
	}{
		{"negative years", -1, 0},
		{"at the gift date", 0, 0},
		{"just under 3 years", 2.99, 0},
		{"exactly 3 years", 3, 20},
		{"mid 3-4 band", 3.5, 20},
		{"exactly 4 years", 4, 40},
		{"mid 4-5 band", 4.5, 40},
		{"exactly 5 years", 5, 60},
		{"exactly 6 years", 6, 80},
		{"just under 7 years", 6.99, 80},
		{"exactly 7 years", 7, 100},
		{"well past 7 years", 12, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TaperReliefPercent(tt.years); got != tt.want {
				t.Errorf("TaperReliefPercent(%v) = %d, want %d", tt.years, got, tt.want)
			}
		})
	}
}

// TestTaperReliefPercent_Monotonic tests that relief never decreases as the
// survival period grows.
//
// WHY: A longer survival period can never produce a smaller relief; any
// regression here would invert the incentive the schedule encodes.
func TestTaperReliefPercent_Monotonic(t *testing.T) {
	prev := int64(0)
	for y := 0.0; y <= 8.0; y += 0.25 {
		got := TaperReliefPercent(y)
		if got < prev {
			t.Fatalf("TaperReliefPercent(%v) = %d, below previous value %d", y, got, prev)
		}
		prev = got
	}
}

// TestTaperReliefForDates tests the exact-date band resolution.
//
// WHY: Band boundaries are decided by anniversary comparison, not day counts.
// An anniversary landing exactly on the death date completes the year.
func TestTaperReliefForDates(t *testing.T) {
	t.Run("anniversary on the death date completes the year", func(t *testing.T) {
		years, percent := taperReliefForDates(date(2018, 6, 1), date(2022, 6, 1))
		if years != 4 || percent != 40 {
			t.Errorf("got %d years at %d%%, want 4 years at 40%%", years, percent)
		}
	})

	t.Run("day before the anniversary stays in the lower band", func(t *testing.T) {
		years, percent := taperReliefForDates(date(2018, 6, 1), date(2022, 5, 31))
		if years != 3 || percent != 20 {
			t.Errorf("got %d years at %d%%, want 3 years at 20%%", years, percent)
		}
	})

	t.Run("seven complete years is full exemption", func(t *testing.T) {
		years, percent := taperReliefForDates(date(2015, 1, 15), date(2022, 1, 15))
		if years != 7 || percent != 100 {
			t.Errorf("got %d years at %d%%, want 7 years at 100%%", years, percent)
		}
	})

	t.Run("death before the gift yields nothing", func(t *testing.T) {
		years, percent := taperReliefForDates(date(2022, 6, 1), date(2020, 6, 1))
		if years != 0 || percent != 0 {
			t.Errorf("got %d years at %d%%, want 0 years at 0%%", years, percent)
		}
	})
}

// TestSevenYearWindow tests the boundary behavior of the two 7-year helpers.
func TestSevenYearWindow(t *testing.T) {
	t.Run("survivedSevenYears is inclusive at exactly 7 years", func(t *testing.T) {
		if !survivedSevenYears(date(2015, 3, 10), date(2022, 3, 10)) {
			t.Error("exactly 7 years should count as survived")
		}
		if survivedSevenYears(date(2015, 3, 10), date(2022, 3, 9)) {
			t.Error("one day short of 7 years should not count as survived")
		}
	})

	t.Run("withinSevenYearsBefore excludes the reference date itself", func(t *testing.T) {
		ref := date(2024, 9, 1)
		if withinSevenYearsBefore(ref, ref) {
			t.Error("the reference date is not before itself")
		}
		if !withinSevenYearsBefore(date(2017, 9, 1), ref) {
			t.Error("exactly 7 years before should be inside the window")
		}
		if withinSevenYearsBefore(date(2017, 8, 31), ref) {
			t.Error("more than 7 years before should be outside the window")
		}
	})
}

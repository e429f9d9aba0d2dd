package engine

import "time"

// taperBand is one row of the statutory taper relief table. The bands have
// been unchanged since 1984, so they live here rather than in the rates
// table: relief applies to the tax on a failed PET/CLT, scaled by full years
// between gift and death.
type taperBand struct {
	fromYears int
	percent   int64
}

var taperBands = []taperBand{
	{fromYears: 0, percent: 0},
	{fromYears: 3, percent: 20},
	{fromYears: 4, percent: 40},
	{fromYears: 5, percent: 60},
	{fromYears: 6, percent: 80},
}

// TaperReliefPercent returns the taper relief percentage for a gift made the
// given number of years before death. Fractional years fall into the band of
// the completed year: 4.5 years is the 4-5 year band (40%). At 7 years or
// more the gift is fully exempt and the answer is 100.
func TaperReliefPercent(years float64) int64 {
	if years < 0 {
		return 0
	}
	if years >= 7 {
		return 100
	}
	percent := int64(0)
	for _, b := range taperBands {
		if years >= float64(b.fromYears) {
			percent = b.percent
		}
	}
	return percent
}

// taperReliefForDates is the exact-date form: the band is decided by the
// number of complete years between gift and death, with anniversary-day
// comparisons rather than day counts (a gift made 2018-06-01 against a death
// 2022-06-01 has completed exactly 4 years).
func taperReliefForDates(gift, death time.Time) (completeYears int, percent int64) {
	if death.Before(gift) {
		return 0, 0
	}
	years := 0
	for !gift.AddDate(years+1, 0, 0).After(death) {
		years++
	}
	if years >= 7 {
		return years, 100
	}
	return years, TaperReliefPercent(float64(years))
}

// survivedSevenYears reports whether death occurred at least 7 years after
// the gift, making a PET fully exempt.
func survivedSevenYears(gift, death time.Time) bool {
	return !gift.AddDate(7, 0, 0).After(death)
}

// withinSevenYearsBefore reports whether candidate falls in the 7-year
// window ending immediately before ref: ref-7y <= candidate < ref.
func withinSevenYearsBefore(candidate, ref time.Time) bool {
	return candidate.Before(ref) && !candidate.Before(ref.AddDate(-7, 0, 0))
}

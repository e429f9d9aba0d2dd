package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/model"
)

// qsrPercent returns the Quick Succession Relief percentage for assets that
// bore IHT the given number of complete years before this death. The bands
// step down by 20% per year and run out after 5 years.
func qsrPercent(completeYears int) int64 {
	switch {
	case completeYears < 1:
		return 100
	case completeYears < 2:
		return 80
	case completeYears < 3:
		return 60
	case completeYears < 4:
		return 40
	case completeYears < 5:
		return 20
	default:
		return 0
	}
}

// completeYears counts whole years between two dates by anniversary
// comparison.
func completeYears(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	years := 0
	for !from.AddDate(years+1, 0, 0).After(to) {
		years++
	}
	return years
}

// calculateQSR computes the Quick Succession Relief adjustment: a banded
// credit for tax already paid on the same assets within the previous 5
// years, applied after all other stages and never exceeding the estate tax
// otherwise due.
func calculateQSR(credits []model.QuickSuccessionCredit, death time.Time, estateTax decimal.Decimal) model.QSRBreakdown {
	out := model.QSRBreakdown{Total: decimal.Zero}

	for _, c := range credits {
		years := completeYears(c.FirstDeathDate, death)
		pct := qsrPercent(years)
		credit := c.TaxPaid.Mul(decimal.NewFromInt(pct)).Div(hundred)
		out.Credits = append(out.Credits, model.QSRCredit{
			FirstDeathDate: c.FirstDeathDate,
			YearsElapsed:   years,
			Percent:        pct,
			TaxPaid:        c.TaxPaid,
			Credit:         credit,
		})
		out.Total = out.Total.Add(credit)
	}

	out.Total = decimal.Min(out.Total, decimal.Max(estateTax, decimal.Zero))
	return out
}

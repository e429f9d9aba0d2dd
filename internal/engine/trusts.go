package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/apperrors"
	"github.com/finplanner/iht-engine/internal/model"
)

// Statutory relevant-property parameters: the actual rate is 30% of the
// notional lifetime rate, capped at 6%, and exit charges accrue in
// fortieths per complete quarter of the 10-year cycle.
var (
	periodicFraction = decimal.RequireFromString("0.3")
	maxPeriodicRate  = decimal.RequireFromString("0.06")
	quartersInCycle  = decimal.NewFromInt(40)
)

// trustCalculation is the output of the trust stage.
type trustCalculation struct {
	charges []model.TrustCharges
	total   decimal.Decimal

	// Interest-in-possession funds with a direct-descendant life tenant,
	// folded into the death estate's settled-property component.
	settledValue decimal.Decimal
}

// completeQuarters counts the whole 3-month periods between two dates.
func completeQuarters(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	quarters := 0
	for !from.AddDate(0, 3*(quarters+1), 0).After(to) {
		quarters++
	}
	return quarters
}

// entryCharge computes the chargeable-lifetime-transfer charge on creation:
// the lifetime rate on the entry value exceeding the settlor's unused NRB,
// grossed up when the trustees bear the tax.
func entryCharge(t model.Trust, rates model.TaxYearRates) (charge, rate decimal.Decimal) {
	rate = rates.LifetimeRate
	if t.TaxBorneByTrust {
		rate = rates.GrossedUpRate
	}
	free := decimal.Max(decimal.Zero, rates.NilRateBand.Sub(t.SettlorPriorCumulation))
	taxable := decimal.Max(decimal.Zero, t.EntryValue.Sub(free))
	return taxable.Mul(rate), rate
}

// effectiveRate computes the relevant-property effective rate on a given
// fund value: 30% of the notional lifetime rate that a transfer of that
// value would bear on top of the settlor's cumulation, capped at 6%.
func effectiveRate(value, cumulation decimal.Decimal, rates model.TaxYearRates) decimal.Decimal {
	if !value.IsPositive() {
		return decimal.Zero
	}
	notionalTaxable := decimal.Max(decimal.Zero, value.Add(cumulation).Sub(rates.NilRateBand))
	notionalTax := notionalTaxable.Mul(rates.LifetimeRate)
	rate := notionalTax.Div(value).Mul(periodicFraction)
	return decimal.Min(rate, maxPeriodicRate)
}

// calculateTrustCharges computes entry, periodic and exit charges for every
// relevant-property trust, up to the calculation date.
//
// Interest-in-possession trusts whose life tenant is a direct descendant are
// not relevant property: their fund is folded into the death estate and no
// periodic or exit charge arises. Trust kinds the engine does not model are
// rejected outright - approximating them could understate a liability.
func calculateTrustCharges(trusts []model.Trust, death time.Time, rates model.TaxYearRates) (trustCalculation, error) {
	out := trustCalculation{
		total:        decimal.Zero,
		settledValue: decimal.Zero,
	}

	for _, t := range trusts {
		switch t.Type {
		case model.TrustDiscretionary, model.TrustInterestInPossession:
		default:
			return trustCalculation{}, fmt.Errorf("trust %q has type %q: %w",
				t.ID, t.Type, apperrors.ErrUnsupportedTrustType)
		}

		if t.CreationDate.IsZero() {
			return trustCalculation{}, fmt.Errorf("trust %q has no creation date: %w",
				t.ID, apperrors.ErrInvalidTrust)
		}
		if t.EntryValue.IsNegative() || t.CurrentValue.IsNegative() {
			return trustCalculation{}, fmt.Errorf("trust %q has a negative value: %w",
				t.ID, apperrors.ErrInvalidTrust)
		}

		tc := model.TrustCharges{
			TrustID:     t.ID,
			Type:        t.Type,
			EntryCharge: decimal.Zero,
			EntryRate:   decimal.Zero,
			FoldedValue: decimal.Zero,
			Total:       decimal.Zero,
		}

		if t.Type == model.TrustInterestInPossession && t.LifeTenantIsDescendant {
			tc.FoldedIntoEstate = true
			tc.FoldedValue = t.CurrentValue
			out.settledValue = out.settledValue.Add(t.CurrentValue)
			out.charges = append(out.charges, tc)
			continue
		}

		tc.EntryCharge, tc.EntryRate = entryCharge(t, rates)
		tc.Total = tc.Total.Add(tc.EntryCharge)

		// 10-year periodic charges up to the calculation date.
		for _, anniversary := range t.TenYearAnniversaries(death) {
			rate := effectiveRate(t.CurrentValue, t.SettlorPriorCumulation, rates)
			charge := t.CurrentValue.Mul(rate)
			tc.PeriodicCharges = append(tc.PeriodicCharges, model.PeriodicCharge{
				Anniversary:   anniversary,
				Value:         t.CurrentValue,
				EffectiveRate: rate,
				Charge:        charge,
			})
			tc.Total = tc.Total.Add(charge)
		}

		for _, exit := range t.Exits {
			if exit.Date.After(death) {
				continue
			}
			// Pro-rate by complete quarters since the last periodic charge.
			// Before the first anniversary the governing rate comes from a
			// hypothetical charge on the entry value, counted from entry.
			governing := effectiveRate(t.EntryValue, t.SettlorPriorCumulation, rates)
			from := t.CreationDate
			for _, pc := range tc.PeriodicCharges {
				if pc.Anniversary.After(exit.Date) {
					break
				}
				governing = pc.EffectiveRate
				from = pc.Anniversary
			}

			quarters := completeQuarters(from, exit.Date)
			charge := exit.Amount.
				Mul(governing).
				Mul(decimal.NewFromInt(int64(quarters))).
				Div(quartersInCycle)
			tc.ExitCharges = append(tc.ExitCharges, model.ExitCharge{
				Date:             exit.Date,
				Amount:           exit.Amount,
				CompleteQuarters: quarters,
				GoverningRate:    governing,
				Charge:           charge,
			})
			tc.Total = tc.Total.Add(charge)
		}

		out.total = out.total.Add(tc.Total)
		out.charges = append(out.charges, tc)
	}

	return out, nil
}

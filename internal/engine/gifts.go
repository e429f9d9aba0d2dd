package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/apperrors"
	"github.com/finplanner/iht-engine/internal/model"
)

// giftCumulation is the output of the gift stage.
type giftCumulation struct {
	lines []model.GiftTax

	// Chargeable value of transfers within 7 years of death; consumes NRB
	// ahead of the death estate.
	nrbConsumed decimal.Decimal

	taxTotal decimal.Decimal
}

// orderGifts sorts gifts chronologically, breaking same-date ties by gift ID
// so the order is total and independent of input order. Two gifts sharing
// both date and ID cannot be ordered and abort the calculation.
func orderGifts(gifts []model.Gift) ([]model.Gift, error) {
	ordered := make([]model.Gift, len(gifts))
	copy(ordered, gifts)

	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	for i := 1; i < len(ordered); i++ {
		if ordered[i].Date.Equal(ordered[i-1].Date) && ordered[i].ID == ordered[i-1].ID {
			return nil, fmt.Errorf("gifts %q share date %s: %w",
				ordered[i].ID, ordered[i].Date.Format("2006-01-02"), apperrors.ErrInvalidGiftSequence)
		}
	}

	return ordered, nil
}

// classifyAtDeath resolves a gift's chargeability once the death date is
// known. Transfers into trust are chargeable when made; transfers to
// individuals are PETs that fail only if the donor dies within 7 years.
func classifyAtDeath(st giftState, death time.Time) model.GiftClassification {
	if !st.chargeable.IsPositive() {
		return model.GiftFullyExempt
	}
	if st.gift.RecipientType == model.RecipientTrust {
		return model.GiftCLT
	}
	if survivedSevenYears(st.gift.Date, death) {
		return model.GiftPET
	}
	return model.GiftFailedPET
}

// chargeableAtDeath reports whether the gift enters the death-time
// recomputation: CLTs and failed PETs within 7 years of death.
func chargeableAtDeath(c model.GiftClassification, giftDate, death time.Time) bool {
	if c != model.GiftCLT && c != model.GiftFailedPET {
		return false
	}
	return !survivedSevenYears(giftDate, death)
}

// cumulateGifts recomputes every lifetime gift at death.
//
// For each chargeable gift the cumulation is the running total of chargeable
// transfers (CLTs and failed PETs) in the rolling 7 years before that gift's
// own date - not before death - which fixes how much nil-rate band is left
// when the gift itself is taxed. Tax on the excess is charged at the death
// rate, reduced by taper relief for the years the donor survived the gift,
// and, for CLTs, credited with the lifetime tax already paid on entry. Taper
// relief reduces only the tax; the gift's full chargeable value still
// cumulates against later transfers and the death estate.
func cumulateGifts(states []giftState, death time.Time, nrbAtDeath decimal.Decimal, rates model.TaxYearRates) giftCumulation {
	out := giftCumulation{
		nrbConsumed: decimal.Zero,
		taxTotal:    decimal.Zero,
	}

	for i, st := range states {
		g := st.gift
		class := classifyAtDeath(st, death)

		line := model.GiftTax{
			GiftID:            g.ID,
			Date:              g.Date,
			Amount:            g.Amount,
			Classification:    class,
			ExemptionsApplied: st.exemptions,
			ChargeableValue:   st.chargeable,
			CumulationBefore:  decimal.Zero,
			NRBApplied:        decimal.Zero,
			TaxableAmount:     decimal.Zero,
			TaxBeforeTaper:    decimal.Zero,
			TaperRelief:       decimal.Zero,
			LifetimeTaxCredit: decimal.Zero,
			TaxDue:            decimal.Zero,
		}
		line.YearsBeforeDeath, line.TaperPercent = taperReliefForDates(g.Date, death)

		if !chargeableAtDeath(class, g.Date, death) {
			out.lines = append(out.lines, line)
			continue
		}

		// Rolling 7-year cumulation relative to this gift's own date.
		cumulation := decimal.Zero
		lifetimeCumulation := decimal.Zero
		for _, prev := range states[:i] {
			if !withinSevenYearsBefore(prev.gift.Date, g.Date) {
				continue
			}
			prevClass := classifyAtDeath(prev, death)
			if prevClass == model.GiftCLT || prevClass == model.GiftFailedPET {
				cumulation = cumulation.Add(prev.chargeable)
			}
			if prevClass == model.GiftCLT {
				lifetimeCumulation = lifetimeCumulation.Add(prev.chargeable)
			}
		}

		nrbFree := decimal.Max(decimal.Zero, nrbAtDeath.Sub(cumulation))
		line.CumulationBefore = cumulation
		line.NRBApplied = decimal.Min(st.chargeable, nrbFree)
		line.TaxableAmount = decimal.Max(decimal.Zero, st.chargeable.Sub(nrbFree))
		line.TaxBeforeTaper = line.TaxableAmount.Mul(rates.DeathRate)
		line.TaperRelief = line.TaxBeforeTaper.
			Mul(decimal.NewFromInt(line.TaperPercent)).
			Div(decimal.NewFromInt(100))

		due := line.TaxBeforeTaper.Sub(line.TaperRelief)

		if class == model.GiftCLT {
			// Lifetime tax was paid when the transfer was made, against the
			// base band and the CLT-only cumulation of the time. Credit it
			// against the death recharge; never refund below zero.
			lifetimeFree := decimal.Max(decimal.Zero, rates.NilRateBand.Sub(lifetimeCumulation))
			lifetimeTaxable := decimal.Max(decimal.Zero, st.chargeable.Sub(lifetimeFree))
			lifetimeTax := lifetimeTaxable.Mul(rates.LifetimeRate)
			line.LifetimeTaxCredit = decimal.Min(lifetimeTax, due)
			due = due.Sub(line.LifetimeTaxCredit)
		}

		line.TaxDue = decimal.Max(decimal.Zero, due)

		out.nrbConsumed = out.nrbConsumed.Add(st.chargeable)
		out.taxTotal = out.taxTotal.Add(line.TaxDue)
		out.lines = append(out.lines, line)
	}

	return out
}

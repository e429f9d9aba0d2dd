package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/model"
)

// Downsizing moves on or after this date can qualify for the RNRB
// downsizing addition.
var downsizingEligibleFrom = time.Date(2015, time.July, 8, 0, 0, 0, 0, time.UTC)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// combinedBand applies a transferred-percentage uplift to a base band. The
// result never exceeds twice the base band, whatever percentage is claimed.
func combinedBand(base, transferredPercent decimal.Decimal) decimal.Decimal {
	pct := decimal.Max(decimal.Zero, decimal.Min(transferredPercent, hundred))
	return base.Add(base.Mul(pct).Div(hundred))
}

// calculateAllowances computes the NRB and RNRB available to the death
// estate.
//
// The standard band is uplifted by the percentage unused on a pre-deceased
// spouse's death, then reduced by the chargeable lifetime transfers within 7
// years of death (the gift cumulation consumes NRB ahead of the estate).
//
// The RNRB band is uplifted by its own transferred percentage, tapered by
// £1 for every £2 the net estate exceeds the taper threshold, and the
// effective amount is the lower of the tapered band and the value actually
// passing to direct descendants (residence plus any downsizing addition).
// The taper uses the net estate only - lifetime gifts never
// enter it, and the RNRB itself is not part of the base. Ineligibility is an
// outcome, not an error: the breakdown reports a zero band and the reason.
func calculateAllowances(
	profile model.EstateProfile,
	valuation model.Valuation,
	claim model.AllowanceClaim,
	nrbConsumedByGifts decimal.Decimal,
	rates model.TaxYearRates,
) model.AllowanceBreakdown {
	nrbTotal := combinedBand(rates.NilRateBand, claim.TransferredNRBPercent)
	nrbUsed := decimal.Min(nrbConsumedByGifts, nrbTotal)

	b := model.AllowanceBreakdown{
		NRBBase:               rates.NilRateBand,
		TransferredNRBPercent: decimal.Min(decimal.Max(claim.TransferredNRBPercent, decimal.Zero), hundred),
		NRBTotal:              nrbTotal,
		NRBUsedByGifts:        nrbUsed,
		NRBRemaining:          nrbTotal.Sub(nrbUsed),
		RNRBBase:              rates.ResidenceNilRateBand,
		RNRBTaperReduction:    decimal.Zero,
		DownsizingAddition:    decimal.Zero,
		RNRBEffective:         decimal.Zero,
	}

	if !claim.ClaimRNRB {
		b.RNRBReason = "residence nil-rate band not claimed"
		return b
	}

	if d := profile.Downsizing; d != nil && !d.Date.Before(downsizingEligibleFrom) &&
		d.ValueLeftToDescendants.IsPositive() {
		b.DownsizingAddition = decimal.Min(d.LostResidenceValue, d.ValueLeftToDescendants)
	}

	descendantsValue := b.DownsizingAddition
	if profile.ResidencePassesToDescendants {
		descendantsValue = descendantsValue.Add(profile.ResidenceValue)
	}

	if !descendantsValue.IsPositive() {
		b.RNRBReason = "no qualifying residence passing to direct descendants"
		return b
	}

	rnrbTotal := combinedBand(rates.ResidenceNilRateBand, claim.TransferredRNRBPercent)

	excess := valuation.NetEstateValue.Sub(rates.ResidenceTaperThreshold)
	if excess.IsPositive() {
		b.RNRBTaperReduction = excess.Div(two)
	}

	// The taper reduces the band itself; the residence-value limit applies
	// to whatever band survives it.
	tapered := decimal.Max(decimal.Zero, rnrbTotal.Sub(b.RNRBTaperReduction))
	b.RNRBEffective = decimal.Min(tapered, descendantsValue)
	b.RNRBQualified = true
	if b.RNRBEffective.IsZero() {
		b.RNRBReason = "residence nil-rate band fully tapered away"
	}

	return b
}

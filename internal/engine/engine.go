// Package engine implements the UK Inheritance Tax calculation pipeline: a
// pure, deterministic transformation from an estate snapshot to a full
// liability breakdown. It holds no state and performs no I/O; the versioned
// rates row it needs is injected per call, so a single Input always yields
// the same CalculationResult and concurrent calls need no synchronization.
package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/model"
)

// Input is the complete snapshot for one calculation. The engine never
// mutates it.
type Input struct {
	Profile         model.EstateProfile
	Gifts           []model.Gift
	Trusts          []model.Trust
	ReliefAssets    []model.ReliefAsset
	Allowances      model.AllowanceClaim
	QuickSuccession []model.QuickSuccessionCredit
	DeathDate       time.Time
	Rates           model.TaxYearRates
}

// Calculate runs the full pipeline: valuation, gift cumulation, reliefs,
// allowances, trust charges, per-component rate resolution and final
// assembly with Quick Succession Relief.
//
// Validation and unsupported-feature errors abort with nothing partial;
// policy ineligibility (relief refused, RNRB tapered away) is folded into
// the breakdown as zero-value lines with reasons.
func Calculate(in Input) (*model.CalculationResult, error) {
	valuation, err := normalizeValuation(in.Profile)
	if err != nil {
		return nil, err
	}

	result := &model.CalculationResult{
		Metadata: model.CalculationMetadata{
			TaxYear:   in.Rates.TaxYear,
			DeathDate: in.DeathDate,
		},
		Valuation:            valuation,
		Gifts:                []model.GiftTax{},
		GiftTaxTotal:         decimal.Zero,
		Trusts:               []model.TrustCharges{},
		TrustChargeTotal:     decimal.Zero,
		SettledPropertyValue: decimal.Zero,
		TaxableEstate:        decimal.Zero,
		Components:           []model.ComponentTax{},
		EstateTax:            decimal.Zero,
		QSR:                  model.QSRBreakdown{Total: decimal.Zero},
		TotalTaxDue:          decimal.Zero,
	}

	// Outside IHT scope: the snapshot is still valued for display, but no
	// charge arises anywhere.
	if !in.Profile.OwnedByLongTermResident {
		result.Reliefs = model.ReliefBreakdown{Lines: []model.ReliefLine{}, TotalRelief: decimal.Zero, Cap: in.Rates.ReliefCap}
		result.Allowances = model.AllowanceBreakdown{
			NRBBase:      in.Rates.NilRateBand,
			RNRBBase:     in.Rates.ResidenceNilRateBand,
			RNRBReason:   "estate outside UK inheritance tax scope",
			NRBTotal:     decimal.Zero,
			NRBRemaining: decimal.Zero,
		}
		return result, nil
	}

	ordered, err := orderGifts(in.Gifts)
	if err != nil {
		return nil, err
	}
	states := applyExemptions(ordered, in.Rates)
	nrbAtDeath := combinedBand(in.Rates.NilRateBand, in.Allowances.TransferredNRBPercent)
	gifts := cumulateGifts(states, in.DeathDate, nrbAtDeath, in.Rates)

	reliefs, err := calculateReliefs(in.ReliefAssets, in.Rates)
	if err != nil {
		return nil, err
	}

	allowances := calculateAllowances(in.Profile, valuation, in.Allowances, gifts.nrbConsumed, in.Rates)

	trusts, err := calculateTrustCharges(in.Trusts, in.DeathDate, in.Rates)
	if err != nil {
		return nil, err
	}

	components := estateComponents(in.Profile, valuation, reliefs, trusts.settledValue)
	resolveRates(components, in.Rates)

	chargeable := decimal.Zero
	for _, c := range components {
		chargeable = chargeable.Add(c.ChargeableValue)
	}
	taxableEstate := decimal.Max(decimal.Zero, chargeable.
		Sub(allowances.NRBRemaining).
		Sub(allowances.RNRBEffective))

	estateTax := apportionEstateTax(components, taxableEstate)
	qsr := calculateQSR(in.QuickSuccession, in.DeathDate, estateTax)

	if gifts.lines != nil {
		result.Gifts = gifts.lines
	}
	result.GiftTaxTotal = gifts.taxTotal
	result.Reliefs = reliefs
	result.Allowances = allowances
	if trusts.charges != nil {
		result.Trusts = trusts.charges
	}
	result.TrustChargeTotal = trusts.total
	result.SettledPropertyValue = trusts.settledValue
	result.TaxableEstate = taxableEstate
	result.Components = components
	result.EstateTax = estateTax
	result.QSR = qsr
	result.TotalTaxDue = estateTax.Sub(qsr.Total).
		Add(gifts.taxTotal).
		Add(trusts.total)

	return result, nil
}

package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/model"
)

// giftState carries a gift through the cumulation pipeline: the exemptions
// consumed and the chargeable value that survives them.
type giftState struct {
	gift       model.Gift
	exemptions []model.ExemptionUse
	chargeable decimal.Decimal
}

// taxYearStart returns the calendar year in which the UK tax year containing
// d begins (6 April boundary).
func taxYearStart(d time.Time) int {
	boundary := time.Date(d.Year(), time.April, 6, 0, 0, 0, 0, d.Location())
	if d.Before(boundary) {
		return d.Year() - 1
	}
	return d.Year()
}

// annualExemptionLedger tracks annual exemption consumption per tax year,
// including the one-year carry-forward of the unused prior-year amount.
// Gifts must be fed chronologically: a year's final usage must be known
// before its successor draws on the carry-forward.
type annualExemptionLedger struct {
	allowance decimal.Decimal
	used      map[int]decimal.Decimal // current-year exemption used
	carryUsed map[int]decimal.Decimal // prior-year carry consumed in this year
}

func newAnnualExemptionLedger(allowance decimal.Decimal) *annualExemptionLedger {
	return &annualExemptionLedger{
		allowance: allowance,
		used:      make(map[int]decimal.Decimal),
		carryUsed: make(map[int]decimal.Decimal),
	}
}

// consume draws up to amount from the annual exemption for the given tax
// year, current year first, then the prior year's unused carry-forward.
// Returns the amount actually exempted.
func (l *annualExemptionLedger) consume(year int, amount decimal.Decimal) decimal.Decimal {
	taken := decimal.Zero

	current := l.allowance.Sub(l.used[year])
	if current.IsPositive() {
		use := decimal.Min(current, amount)
		l.used[year] = l.used[year].Add(use)
		taken = taken.Add(use)
		amount = amount.Sub(use)
	}

	if amount.IsPositive() {
		carry := l.allowance.Sub(l.used[year-1]).Sub(l.carryUsed[year])
		if carry.IsPositive() {
			use := decimal.Min(carry, amount)
			l.carryUsed[year] = l.carryUsed[year].Add(use)
			taken = taken.Add(use)
		}
	}

	return taken
}

// weddingGiftCap returns the wedding-gift exemption ceiling for the
// recipient's relationship to the donor.
func weddingGiftCap(rel model.Relationship, rates model.TaxYearRates) decimal.Decimal {
	switch rel {
	case model.RelationshipChild:
		return rates.WeddingGiftChild
	case model.RelationshipGrandchild:
		return rates.WeddingGiftGrandchild
	default:
		return rates.WeddingGiftOther
	}
}

// applyExemptions runs every gift through the lifetime exemptions in
// priority order: spouse and charity (unlimited), normal expenditure out of
// income, wedding gifts (tiered by relationship), then either the small-gift
// exemption or the annual exemption. The small-gift exemption is
// all-or-nothing, once per recipient per tax year, and never combines with
// another exemption on the same gift; a gift it cannot fully cover falls
// through to the annual exemption instead.
//
// Gifts must already be in chronological order.
func applyExemptions(gifts []model.Gift, rates model.TaxYearRates) []giftState {
	annual := newAnnualExemptionLedger(rates.AnnualExemption)

	type recipientYear struct {
		recipient string
		year      int
	}
	smallGiftUsed := make(map[recipientYear]bool)

	states := make([]giftState, 0, len(gifts))
	for _, g := range gifts {
		st := giftState{gift: g, chargeable: g.Amount}
		year := taxYearStart(g.Date)

		exempt := func(kind model.ExemptionKind, amount decimal.Decimal) {
			if !amount.IsPositive() {
				return
			}
			st.exemptions = append(st.exemptions, model.ExemptionUse{Kind: kind, Amount: amount})
			st.chargeable = st.chargeable.Sub(amount)
		}

		switch g.Relationship {
		case model.RelationshipSpouse:
			exempt(model.ExemptionSpouse, st.chargeable)
		case model.RelationshipCharity:
			exempt(model.ExemptionCharity, st.chargeable)
		}

		if st.chargeable.IsPositive() && g.IsNormalExpenditure {
			exempt(model.ExemptionNormalExpenditure, st.chargeable)
		}

		if st.chargeable.IsPositive() && g.IsWeddingGift {
			cap := weddingGiftCap(g.Relationship, rates)
			exempt(model.ExemptionWedding, decimal.Min(st.chargeable, cap))
		}

		if st.chargeable.IsPositive() {
			key := recipientYear{recipient: g.RecipientID, year: year}
			untouched := len(st.exemptions) == 0
			if untouched && !smallGiftUsed[key] &&
				g.Amount.LessThanOrEqual(rates.SmallGiftLimit) {
				smallGiftUsed[key] = true
				exempt(model.ExemptionSmallGift, st.chargeable)
			} else {
				exempt(model.ExemptionAnnual, annual.consume(year, st.chargeable))
			}
		}

		states = append(states, st)
	}

	return states
}

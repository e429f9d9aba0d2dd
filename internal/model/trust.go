package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrustType enumerates the trust kinds accepted at the boundary. Only
// relevant-property trusts (discretionary, and interest-in-possession where
// the life tenant is not a direct descendant) are charged by the engine;
// the remaining kinds are rejected rather than silently approximated.
type TrustType string

const (
	TrustDiscretionary        TrustType = "discretionary"
	TrustInterestInPossession TrustType = "interestInPossession"
	TrustBare                 TrustType = "bareTrust"
	TrustDisabledPerson       TrustType = "disabledPersonTrust"
	TrustBereavedMinor        TrustType = "bereavedMinorTrust"
)

// TrustExit records assets leaving the trust, triggering an exit charge.
type TrustExit struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Trust is a trust settled by the deceased.
type Trust struct {
	ID           string    `json:"id"`
	Type         TrustType `json:"type"`
	CreationDate time.Time `json:"creationDate"`

	EntryValue   decimal.Decimal `json:"entryValue"`
	CurrentValue decimal.Decimal `json:"currentValue"`

	// Chargeable lifetime transfers made by the settlor in the 7 years
	// before creation. Feeds the entry charge and the periodic-charge
	// effective rate.
	SettlorPriorCumulation decimal.Decimal `json:"settlorPriorCumulation"`

	// Whether the trustees bear the entry charge (grossed-up rate) rather
	// than the settlor.
	TaxBorneByTrust bool `json:"taxBorneByTrust"`

	// For interest-in-possession trusts: whether a direct descendant holds
	// the life interest. If so the trust fund is folded into the death
	// estate instead of bearing periodic/exit charges.
	LifeTenantIsDescendant bool `json:"lifeTenantIsDescendant"`

	Exits []TrustExit `json:"exits,omitempty"`
}

// TenYearAnniversaries lists the 10-year anniversaries of creation that fall
// on or before the given date, in order.
func (t Trust) TenYearAnniversaries(until time.Time) []time.Time {
	var out []time.Time
	for n := 1; ; n++ {
		a := t.CreationDate.AddDate(10*n, 0, 0)
		if a.After(until) {
			return out
		}
		out = append(out, a)
	}
}

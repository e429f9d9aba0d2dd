package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllowanceClaim carries the claimant-supplied allowance inputs: unused
// percentages brought forward from a pre-deceased spouse and whether RNRB is
// claimed at all.
type AllowanceClaim struct {
	// 0-100. Values above 100 are capped: the combined band can never exceed
	// twice the base band for the tax year.
	TransferredNRBPercent  decimal.Decimal `json:"transferredNrbPercent"`
	TransferredRNRBPercent decimal.Decimal `json:"transferredRnrbPercent"`

	ClaimRNRB bool `json:"claimRnrb"`
}

// QuickSuccessionCredit records IHT previously paid on assets now in this
// estate, for Quick Succession Relief.
type QuickSuccessionCredit struct {
	FirstDeathDate time.Time       `json:"firstDeathDate"`
	TaxPaid        decimal.Decimal `json:"taxPaid"`
}

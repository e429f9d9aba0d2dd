package apperrors

import "errors"

// Validation errors represent malformed or inconsistent input. The
// calculation aborts entirely; nothing partial is returned and the caller
// must fix the input before retrying.
var (
	// ErrInvalidValuation indicates a negative or missing asset/liability value.
	ErrInvalidValuation = errors.New("invalid estate valuation")

	// ErrInvalidGiftSequence indicates the gift list cannot be put into a
	// strict chronological order (duplicate date and ID).
	ErrInvalidGiftSequence = errors.New("gift dates do not resolve to a strict order")

	// ErrInvalidTrust indicates a trust record with negative values or a
	// missing creation date.
	ErrInvalidTrust = errors.New("invalid trust record")

	// ErrInvalidReliefAsset indicates a relief claim with a negative value
	// or an unknown category.
	ErrInvalidReliefAsset = errors.New("invalid relief asset")
)

// Unsupported-feature errors: cases the engine deliberately does not model.
// These abort loudly; silently approximating could understate a liability.
var (
	// ErrUnsupportedTrustType indicates a trust kind outside the
	// relevant-property model (bare, disabled-person, bereaved-minor).
	ErrUnsupportedTrustType = errors.New("unsupported trust type")
)

// Configuration errors: the rates reference data cannot serve the request.
// The engine never guesses or extrapolates a rate.
var (
	// ErrTaxYearNotFound indicates no rates row covers the requested tax
	// year or calculation date.
	ErrTaxYearNotFound = errors.New("no rates found for tax year")

	// ErrAuditKeyInvalid indicates the audit encryption key is malformed.
	ErrAuditKeyInvalid = errors.New("invalid audit encryption key")

	// ErrAuditRecordNotFound indicates no audit row exists for the given
	// calculation ID.
	ErrAuditRecordNotFound = errors.New("audit record not found")

	// ErrAuditDisabled indicates the audit trail is not configured, so no
	// records can be read or written.
	ErrAuditDisabled = errors.New("audit trail disabled")
)

// Operation failure errors surfaced by the HTTP layer.
var (
	ErrCalculationFailed     = errors.New("calculation failed")
	ErrFailedToRetrieveRates = errors.New("failed to retrieve rates")
)

package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/audit"
	"github.com/finplanner/iht-engine/internal/model"
	"github.com/finplanner/iht-engine/internal/rates"
	"github.com/finplanner/iht-engine/internal/service"
)

// NewTestRatesService creates a rates service loaded from the seeded test
// database.
func NewTestRatesService(t *testing.T, db *sql.DB) *rates.Service {
	t.Helper()

	svc, err := rates.NewService(rates.NewRepository(db))
	if err != nil {
		t.Fatalf("Failed to create rates service: %v", err)
	}
	return svc
}

// NewTestAuditStore creates an audit store with a freshly generated key.
func NewTestAuditStore(t *testing.T, db *sql.DB) *audit.Store {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate audit key: %v", err)
	}

	store, err := audit.NewStore(db, key.Encode())
	if err != nil {
		t.Fatalf("Failed to create audit store: %v", err)
	}
	return store
}

// NewTestCalculationService creates a calculation service backed by the
// seeded test database, with the audit trail disabled.
func NewTestCalculationService(t *testing.T, db *sql.DB) *service.CalculationService {
	t.Helper()

	return service.NewCalculationService(NewTestRatesService(t, db), nil)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// Rates2024 returns the 2024/25 reference row, matching the seeded table.
// Handy for engine tests that do not need a database.
func Rates2024() model.TaxYearRates {
	return referenceRates("2024/25",
		time.Date(2024, 4, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC),
		false)
}

// Rates2026 returns the 2026/27 reference row, with the combined relief cap
// enabled.
func Rates2026() model.TaxYearRates {
	return referenceRates("2026/27",
		time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2027, 4, 5, 0, 0, 0, 0, time.UTC),
		true)
}

func referenceRates(taxYear string, start, end time.Time, capEnabled bool) model.TaxYearRates {
	return model.TaxYearRates{
		TaxYear:                 taxYear,
		StartDate:               start,
		EndDate:                 end,
		NilRateBand:             decimal.NewFromInt(325000),
		ResidenceNilRateBand:    decimal.NewFromInt(175000),
		ResidenceTaperThreshold: decimal.NewFromInt(2000000),
		DeathRate:               decimal.NewFromFloat(0.40),
		ReducedDeathRate:        decimal.NewFromFloat(0.36),
		LifetimeRate:            decimal.NewFromFloat(0.20),
		GrossedUpRate:           decimal.NewFromFloat(0.25),
		CharitableThreshold:     decimal.NewFromFloat(0.10),
		AnnualExemption:         decimal.NewFromInt(3000),
		SmallGiftLimit:          decimal.NewFromInt(250),
		WeddingGiftChild:        decimal.NewFromInt(5000),
		WeddingGiftGrandchild:   decimal.NewFromInt(2500),
		WeddingGiftOther:        decimal.NewFromInt(1000),
		ReliefCapEnabled:        capEnabled,
		ReliefCap:               decimal.NewFromInt(1000000),
		MinOwnershipMonths:      24,
	}
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// Money builds a decimal from a whole pound amount.
func Money(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

package service_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/apperrors"
	"github.com/finplanner/iht-engine/internal/service"
	"github.com/finplanner/iht-engine/internal/testutil"
	"github.com/finplanner/iht-engine/internal/validation"
)

// TestCalculationService_Calculate tests the orchestration path: validation,
// rates resolution, engine run and metadata stamping.
//
// WHY: The service is the seam between the HTTP boundary and the pure
// engine. It must reject bad requests before the engine sees them and stamp
// every successful result with traceable metadata.
func TestCalculationService_Calculate(t *testing.T) {
	t.Run("computes a simple estate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCalculationService(t, db)

		req := testutil.NewCalculationRequest().
			WithAsset("savings", 500000).
			Build()

		result, err := svc.Calculate(req)
		if err != nil {
			t.Fatalf("Calculate() returned unexpected error: %v", err)
		}

		if !result.TotalTaxDue.Equal(decimal.NewFromInt(70000)) {
			t.Errorf("TotalTaxDue = %s, want 70000", result.TotalTaxDue)
		}
		if result.Metadata.CalculationID == "" {
			t.Error("expected a calculation ID")
		}
		if result.Metadata.CalculatedAt.IsZero() {
			t.Error("expected a calculation timestamp")
		}
		if result.Metadata.TaxYear != "2024/25" {
			t.Errorf("TaxYear = %q, want 2024/25", result.Metadata.TaxYear)
		}
	})

	t.Run("resolves the tax year from the death date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCalculationService(t, db)

		req := testutil.NewCalculationRequest().
			WithDeathDate("2023-06-15").
			WithAsset("savings", 100000).
			Build()

		result, err := svc.Calculate(req)
		if err != nil {
			t.Fatalf("Calculate() returned unexpected error: %v", err)
		}

		if result.Metadata.TaxYear != "2023/24" {
			t.Errorf("TaxYear = %q, want 2023/24", result.Metadata.TaxYear)
		}
	})

	t.Run("explicit tax year overrides the death date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCalculationService(t, db)

		req := testutil.NewCalculationRequest().
			WithTaxYear("2026/27").
			WithAsset("savings", 100000).
			Build()

		result, err := svc.Calculate(req)
		if err != nil {
			t.Fatalf("Calculate() returned unexpected error: %v", err)
		}

		if result.Metadata.TaxYear != "2026/27" {
			t.Errorf("TaxYear = %q, want 2026/27", result.Metadata.TaxYear)
		}
	})

	t.Run("unknown tax year is a typed error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCalculationService(t, db)

		req := testutil.NewCalculationRequest().
			WithTaxYear("1999/00").
			Build()

		_, err := svc.Calculate(req)
		if !errors.Is(err, apperrors.ErrTaxYearNotFound) {
			t.Errorf("expected ErrTaxYearNotFound, got %v", err)
		}
	})

	t.Run("invalid request fails validation before the engine runs", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCalculationService(t, db)

		req := testutil.NewCalculationRequest().Build()
		req.DeathDate = "tomorrow"

		_, err := svc.Calculate(req)
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Errorf("expected *validation.Error, got %v", err)
		}
	})

	t.Run("writes an audit record when the trail is enabled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewCalculationService(
			testutil.NewTestRatesService(t, db),
			testutil.NewTestAuditStore(t, db),
		)

		req := testutil.NewCalculationRequest().
			WithAsset("savings", 500000).
			Build()

		result, err := svc.Calculate(req)
		if err != nil {
			t.Fatalf("Calculate() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "calculation_audit", 1)

		var storedID string
		if err := db.QueryRow(`SELECT id FROM calculation_audit`).Scan(&storedID); err != nil {
			t.Fatalf("Failed to read audit row: %v", err)
		}
		if storedID != result.Metadata.CalculationID {
			t.Errorf("audit id = %q, want %q", storedID, result.Metadata.CalculationID)
		}
	})

	t.Run("nil audit store disables the trail", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCalculationService(t, db)

		req := testutil.NewCalculationRequest().
			WithAsset("savings", 500000).
			Build()

		if _, err := svc.Calculate(req); err != nil {
			t.Fatalf("Calculate() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "calculation_audit", 0)
	})
}

// TestCalculationService_AuditRecord tests retrieval of stored calculations.
func TestCalculationService_AuditRecord(t *testing.T) {
	t.Run("round trips a stored calculation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewCalculationService(
			testutil.NewTestRatesService(t, db),
			testutil.NewTestAuditStore(t, db),
		)

		req := testutil.NewCalculationRequest().
			WithAsset("savings", 500000).
			Build()

		result, err := svc.Calculate(req)
		if err != nil {
			t.Fatalf("Calculate() returned unexpected error: %v", err)
		}

		record, err := svc.AuditRecord(result.Metadata.CalculationID)
		if err != nil {
			t.Fatalf("AuditRecord() returned unexpected error: %v", err)
		}
		if !record.TotalTaxDue.Equal(result.TotalTaxDue) {
			t.Errorf("TotalTaxDue = %s, want %s", record.TotalTaxDue, result.TotalTaxDue)
		}
	})

	t.Run("disabled trail is a typed error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCalculationService(t, db)

		_, err := svc.AuditRecord(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrAuditDisabled) {
			t.Errorf("expected ErrAuditDisabled, got %v", err)
		}
	})
}

// TestCalculationService_TaperRelief tests the reference table passthrough.
func TestCalculationService_TaperRelief(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestCalculationService(t, db)

	if got := svc.TaperRelief(4.5); got != 40 {
		t.Errorf("TaperRelief(4.5) = %d, want 40", got)
	}
	if got := svc.TaperRelief(8); got != 100 {
		t.Errorf("TaperRelief(8) = %d, want 100", got)
	}
}

package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created and rates seeded
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema and seed data are synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Tax year reference table
		CREATE TABLE tax_year_rates (
			tax_year VARCHAR(7) NOT NULL PRIMARY KEY,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			nil_rate_band TEXT NOT NULL,
			residence_nil_rate_band TEXT NOT NULL,
			residence_taper_threshold TEXT NOT NULL,
			death_rate TEXT NOT NULL,
			reduced_death_rate TEXT NOT NULL,
			lifetime_rate TEXT NOT NULL,
			grossed_up_rate TEXT NOT NULL,
			charitable_threshold TEXT NOT NULL,
			annual_exemption TEXT NOT NULL,
			small_gift_limit TEXT NOT NULL,
			wedding_gift_child TEXT NOT NULL,
			wedding_gift_grandchild TEXT NOT NULL,
			wedding_gift_other TEXT NOT NULL,
			relief_cap_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			relief_cap TEXT NOT NULL,
			min_ownership_months INTEGER NOT NULL
		);

		-- Audit trail table
		CREATE TABLE calculation_audit (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			tax_year VARCHAR(7) NOT NULL,
			death_date DATE NOT NULL,
			net_estate TEXT NOT NULL,
			total_tax_due TEXT NOT NULL,
			snapshot BLOB NOT NULL
		);

		CREATE INDEX idx_calculation_audit_created_at ON calculation_audit(created_at);

		INSERT INTO tax_year_rates VALUES
			('2023/24', '2023-04-06', '2024-04-05', '325000', '175000', '2000000',
			 '0.40', '0.36', '0.20', '0.25', '0.10',
			 '3000', '250', '5000', '2500', '1000',
			 FALSE, '1000000', 24),
			('2024/25', '2024-04-06', '2025-04-05', '325000', '175000', '2000000',
			 '0.40', '0.36', '0.20', '0.25', '0.10',
			 '3000', '250', '5000', '2500', '1000',
			 FALSE, '1000000', 24),
			('2025/26', '2025-04-06', '2026-04-05', '325000', '175000', '2000000',
			 '0.40', '0.36', '0.20', '0.25', '0.10',
			 '3000', '250', '5000', '2500', '1000',
			 FALSE, '1000000', 24),
			('2026/27', '2026-04-06', '2027-04-05', '325000', '175000', '2000000',
			 '0.40', '0.36', '0.20', '0.25', '0.10',
			 '3000', '250', '5000', '2500', '1000',
			 TRUE, '1000000', 24);
	`

	_, err := db.Exec(schema)
	return err
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
//
// Example usage:
//
//	count := testutil.CountRows(t, db, "calculation_audit")
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, "calculation_audit", 1)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}

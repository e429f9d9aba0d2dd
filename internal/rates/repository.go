package rates

import (
	"database/sql"
	"fmt"

	"github.com/finplanner/iht-engine/internal/model"
)

// Repository provides data access for the tax_year_rates reference table.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a Repository with the provided database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const ratesColumns = `
	tax_year, start_date, end_date,
	nil_rate_band, residence_nil_rate_band, residence_taper_threshold,
	death_rate, reduced_death_rate, lifetime_rate, grossed_up_rate,
	charitable_threshold,
	annual_exemption, small_gift_limit,
	wedding_gift_child, wedding_gift_grandchild, wedding_gift_other,
	relief_cap_enabled, relief_cap, min_ownership_months`

func scanRates(row interface{ Scan(dest ...any) error }) (model.TaxYearRates, error) {
	var r model.TaxYearRates

	err := row.Scan(
		&r.TaxYear, &r.StartDate, &r.EndDate,
		&r.NilRateBand, &r.ResidenceNilRateBand, &r.ResidenceTaperThreshold,
		&r.DeathRate, &r.ReducedDeathRate, &r.LifetimeRate, &r.GrossedUpRate,
		&r.CharitableThreshold,
		&r.AnnualExemption, &r.SmallGiftLimit,
		&r.WeddingGiftChild, &r.WeddingGiftGrandchild, &r.WeddingGiftOther,
		&r.ReliefCapEnabled, &r.ReliefCap, &r.MinOwnershipMonths,
	)
	if err != nil {
		return model.TaxYearRates{}, err
	}

	return r, nil
}

// ListAll returns every rates row ordered by tax year start date.
func (r *Repository) ListAll() ([]model.TaxYearRates, error) {
	query := `SELECT ` + ratesColumns + ` FROM tax_year_rates ORDER BY start_date ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax_year_rates table: %w", err)
	}
	defer rows.Close()

	all := []model.TaxYearRates{}
	for rows.Next() {
		rates, err := scanRates(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax_year_rates row: %w", err)
		}
		all = append(all, rates)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tax_year_rates rows: %w", err)
	}

	return all, nil
}

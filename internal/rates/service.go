// Package rates serves the versioned TaxYearRates reference table. The
// table is loaded once into an immutable in-memory snapshot; a rates update
// replaces the whole snapshot atomically rather than mutating entries in
// place, so calculations running concurrently always see a consistent year.
package rates

import (
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/finplanner/iht-engine/internal/apperrors"
	"github.com/finplanner/iht-engine/internal/model"
)

// snapshot is one immutable generation of the rates table.
type snapshot struct {
	byYear  map[string]model.TaxYearRates
	ordered []model.TaxYearRates
}

// Service exposes tax-year lookups over the current snapshot.
type Service struct {
	repo    *Repository
	current atomic.Pointer[snapshot]
	reload  singleflight.Group
}

// NewService creates a Service and loads the initial snapshot.
func NewService(repo *Repository) (*Service, error) {
	s := &Service{repo: repo}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the reference table and swaps in a fresh snapshot.
// Concurrent calls are collapsed into a single read.
func (s *Service) Reload() error {
	_, err, _ := s.reload.Do("reload", func() (any, error) {
		all, err := s.repo.ListAll()
		if err != nil {
			return nil, fmt.Errorf("failed to reload rates table: %w", err)
		}
		next := &snapshot{
			byYear:  make(map[string]model.TaxYearRates, len(all)),
			ordered: all,
		}
		for _, r := range all {
			next.byYear[r.TaxYear] = r
		}
		s.current.Store(next)
		return nil, nil
	})
	return err
}

// All returns every known rates row, oldest tax year first.
func (s *Service) All() []model.TaxYearRates {
	return s.current.Load().ordered
}

// ByYear returns the rates for a tax year label such as "2024/25".
func (s *Service) ByYear(taxYear string) (model.TaxYearRates, error) {
	r, ok := s.current.Load().byYear[taxYear]
	if !ok {
		return model.TaxYearRates{}, fmt.Errorf("%q: %w", taxYear, apperrors.ErrTaxYearNotFound)
	}
	return r, nil
}

// ForDate returns the rates row whose tax year contains the given date.
func (s *Service) ForDate(d time.Time) (model.TaxYearRates, error) {
	for _, r := range s.current.Load().ordered {
		if r.Contains(d) {
			return r, nil
		}
	}
	return model.TaxYearRates{}, fmt.Errorf("%s: %w",
		d.Format("2006-01-02"), apperrors.ErrTaxYearNotFound)
}

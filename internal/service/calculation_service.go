package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/finplanner/iht-engine/internal/api/request"
	"github.com/finplanner/iht-engine/internal/apperrors"
	"github.com/finplanner/iht-engine/internal/audit"
	"github.com/finplanner/iht-engine/internal/engine"
	"github.com/finplanner/iht-engine/internal/model"
	"github.com/finplanner/iht-engine/internal/rates"
	"github.com/finplanner/iht-engine/internal/validation"
)

// CalculationService orchestrates a calculation: validates the request,
// resolves the rates row for the effective date, runs the pure engine and
// stamps the result with its metadata. Each call builds an independent
// engine input, so the service is safe for concurrent use.
type CalculationService struct {
	rates *rates.Service
	audit *audit.Store // nil disables the audit trail
}

// NewCalculationService creates a CalculationService with the provided
// dependencies.
func NewCalculationService(ratesService *rates.Service, auditStore *audit.Store) *CalculationService {
	return &CalculationService{
		rates: ratesService,
		audit: auditStore,
	}
}

// Calculate runs the full IHT computation for one request.
func (s *CalculationService) Calculate(req request.CalculationRequest) (*model.CalculationResult, error) {
	if err := validation.ValidateCalculation(req); err != nil {
		return nil, err
	}

	deathDate, err := time.Parse(request.DateFormat, req.DeathDate)
	if err != nil {
		return nil, fmt.Errorf("invalid death date %q: %w", req.DeathDate, err)
	}

	var taxYearRates model.TaxYearRates
	if req.TaxYear != "" {
		taxYearRates, err = s.rates.ByYear(req.TaxYear)
	} else {
		taxYearRates, err = s.rates.ForDate(deathDate)
	}
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := engine.Calculate(engine.Input{
		Profile:         req.Profile.ToProfile(),
		Gifts:           req.ToGifts(),
		Trusts:          req.ToTrusts(),
		ReliefAssets:    req.ToReliefAssets(),
		Allowances:      req.ToAllowanceClaim(),
		QuickSuccession: req.ToQuickSuccession(),
		DeathDate:       deathDate,
		Rates:           taxYearRates,
	})
	if err != nil {
		return nil, err
	}

	result.Metadata.CalculationID = uuid.New().String()
	result.Metadata.CalculatedAt = time.Now().UTC()
	result.Metadata.DurationMs = time.Since(start).Milliseconds()

	if s.audit != nil {
		if err := s.audit.Save(
			result.Metadata.CalculationID,
			result.Metadata.TaxYear,
			deathDate,
			result.Valuation.NetEstateValue,
			result.TotalTaxDue,
			req,
		); err != nil {
			// The calculation result stands even when the trail cannot be
			// written.
			log.Printf("failed to write audit record %s: %v", result.Metadata.CalculationID, err)
		}
	}

	return result, nil
}

// AuditRecord retrieves the decrypted audit record for a past calculation.
func (s *CalculationService) AuditRecord(id string) (audit.Record, error) {
	if s.audit == nil {
		return audit.Record{}, apperrors.ErrAuditDisabled
	}
	return s.audit.Get(id)
}

// TaperRelief returns the taper relief percentage for a gift made the given
// number of years before death, for callers that need the reference table
// without a full calculation.
func (s *CalculationService) TaperRelief(years float64) int64 {
	return engine.TaperReliefPercent(years)
}

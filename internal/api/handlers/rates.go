package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finplanner/iht-engine/internal/api/response"
	"github.com/finplanner/iht-engine/internal/apperrors"
	"github.com/finplanner/iht-engine/internal/rates"
)

// RatesHandler handles HTTP requests for the tax year reference table.
type RatesHandler struct {
	ratesService *rates.Service
}

// NewRatesHandler creates a new RatesHandler with the provided service dependency.
func NewRatesHandler(ratesService *rates.Service) *RatesHandler {
	return &RatesHandler{
		ratesService: ratesService,
	}
}

// Rates handles GET requests to retrieve every known tax year, oldest first.
//
// Endpoint: GET /api/rates
// Response: 200 OK with array of TaxYearRates
func (h *RatesHandler) Rates(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.ratesService.All())
}

// RatesByYear handles GET requests to retrieve a single tax year.
// The year label uses a hyphen in the path, so "2024-25" resolves "2024/25".
//
// Endpoint: GET /api/rates/{taxYear}
// Response: 200 OK with TaxYearRates
// Error: 404 Not Found if the tax year is not in the reference table
func (h *RatesHandler) RatesByYear(w http.ResponseWriter, r *http.Request) {
	taxYear := normalizeTaxYear(chi.URLParam(r, "taxYear"))

	row, err := h.ratesService.ByYear(taxYear)
	if err != nil {
		if errors.Is(err, apperrors.ErrTaxYearNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTaxYearNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRates.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, row)
}

// normalizeTaxYear maps the URL-safe "2024-25" form onto the canonical
// "2024/25" label used by the reference table.
func normalizeTaxYear(label string) string {
	out := []byte(label)
	for i, c := range out {
		if c == '-' {
			out[i] = '/'
		}
	}
	return string(out)
}

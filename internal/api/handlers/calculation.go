package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/finplanner/iht-engine/internal/api/request"
	"github.com/finplanner/iht-engine/internal/api/response"
	"github.com/finplanner/iht-engine/internal/apperrors"
	"github.com/finplanner/iht-engine/internal/service"
	"github.com/finplanner/iht-engine/internal/validation"
)

// CalculationHandler handles HTTP requests for inheritance tax calculations.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the calculationService.
type CalculationHandler struct {
	calculationService *service.CalculationService
}

// NewCalculationHandler creates a new CalculationHandler with the provided service dependency.
func NewCalculationHandler(calculationService *service.CalculationService) *CalculationHandler {
	return &CalculationHandler{
		calculationService: calculationService,
	}
}

// Calculate handles POST requests to run a full inheritance tax calculation.
// Returns the complete breakdown: valuation, gift cumulation, reliefs,
// allowances, trust charges, per-component estate tax and quick succession relief.
//
// Endpoint: POST /api/iht/calculate
// Response: 200 OK with CalculationResult
// Error: 400 Bad Request if the body cannot be parsed or fails validation
// Error: 422 Unprocessable Entity if the input is well-formed but cannot be computed
// Error: 500 Internal Server Error if the calculation fails unexpectedly
func (h *CalculationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CalculationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.calculationService.Calculate(req)
	if err != nil {
		var validationErr *validation.Error
		switch {
		case errors.As(err, &validationErr):
			response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
		case errors.Is(err, apperrors.ErrTaxYearNotFound):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrTaxYearNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrUnsupportedTrustType):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrUnsupportedTrustType.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidGiftSequence):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInvalidGiftSequence.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidValuation):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInvalidValuation.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidTrust):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInvalidTrust.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrCalculationFailed.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// TaperReliefResponse represents the taper relief lookup response.
type TaperReliefResponse struct {
	Years         float64 `json:"years"`
	ReliefPercent int64   `json:"reliefPercent"`
}

// TaperRelief handles GET requests for the taper relief reference table.
// Returns the relief percentage for a gift made the given number of years
// before death.
//
// Endpoint: GET /api/iht/taper-relief?years=4.5
// Response: 200 OK with TaperReliefResponse
// Error: 400 Bad Request if the years parameter is missing or not a number
func (h *CalculationHandler) TaperRelief(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("years")
	if raw == "" {
		response.RespondError(w, http.StatusBadRequest, "missing years parameter", "")
		return
	}

	years, err := strconv.ParseFloat(raw, 64)
	if err != nil || years < 0 {
		response.RespondError(w, http.StatusBadRequest, "invalid years parameter", raw)
		return
	}

	respondJSON(w, http.StatusOK, TaperReliefResponse{
		Years:         years,
		ReliefPercent: h.calculationService.TaperRelief(years),
	})
}

// AuditRecord handles GET requests for a past calculation's audit record.
// The encrypted input snapshot is decrypted before it is returned.
//
// Endpoint: GET /api/iht/audit/{calculationID}
// Response: 200 OK with the audit record
// Error: 400 Bad Request if the calculation ID is not a UUID
// Error: 404 Not Found if no record exists or the trail is disabled
func (h *CalculationHandler) AuditRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "calculationID")
	if err := validation.ValidateUUID(id); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid calculation ID", err.Error())
		return
	}

	record, err := h.calculationService.AuditRecord(id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAuditRecordNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAuditRecordNotFound.Error(), id)
		case errors.Is(err, apperrors.ErrAuditDisabled):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAuditDisabled.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to retrieve audit record", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, record)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/finplanner/iht-engine/internal/api/handlers"
	custommiddleware "github.com/finplanner/iht-engine/internal/api/middleware"
	"github.com/finplanner/iht-engine/internal/config"
	"github.com/finplanner/iht-engine/internal/rates"
	"github.com/finplanner/iht-engine/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, calculationService *service.CalculationService, ratesService *rates.Service, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/iht", func(r chi.Router) {
			calculationHandler := handlers.NewCalculationHandler(calculationService)
			r.Post("/calculate", calculationHandler.Calculate)
			r.Get("/taper-relief", calculationHandler.TaperRelief)
			r.Get("/audit/{calculationID}", calculationHandler.AuditRecord)
		})

		r.Route("/rates", func(r chi.Router) {
			ratesHandler := handlers.NewRatesHandler(ratesService)
			r.Get("/", ratesHandler.Rates)
			r.Get("/{taxYear}", ratesHandler.RatesByYear)
		})
	})

	return r
}

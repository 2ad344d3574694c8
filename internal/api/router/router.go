// Package router assembles the HTTP surface: booking endpoints, admin
// endpoints behind the shared-secret gate, health, and metrics.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/la-masion/booking-api/internal/booking"
	"github.com/la-masion/booking-api/internal/config"
	"github.com/la-masion/booking-api/internal/http/middleware"
	"github.com/la-masion/booking-api/pkg/logging"
)

// New builds the chi router with the full middleware stack.
func New(cfg *config.Config, h *booking.Handler, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/availability", h.Availability)
	r.Post("/deposit-link", h.DepositLink)
	r.Post("/appointments/create", h.CreateAppointment)
	r.Get("/locations", h.Locations)
	r.Get("/team-members", h.TeamMembers)
	r.Get("/services", h.Services)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminSecret(cfg.SquareAdminSecret))
		r.Post("/bootstrap", h.Bootstrap)
		r.Post("/test/booking-alert", h.TestBookingAlert)
	})

	return r
}

package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/urbancabz/booking-system/internal/domain/types"
)

// setupRoutes registers all HTTP routes on the mux.
func (a *API) setupRoutes() {
	// System health
	a.mux.HandleFunc("GET /health", a.routes.health.HealthCheck)

	// Swagger UI and Prometheus metrics
	a.mux.HandleFunc("/swagger/", httpSwagger.Handler())
	a.mux.Handle("GET /metrics", promhttp.Handler())

	// Storefront, no auth required
	a.mux.HandleFunc("POST /auth/login", a.routes.auth.Login)
	a.mux.HandleFunc("POST /auth/register", a.routes.auth.Register)
	a.mux.HandleFunc("POST /quotes", a.routes.quote.CreateQuote)
	a.mux.HandleFunc("GET /vehicles", a.routes.fleet.ListVehicles)
	a.mux.HandleFunc("POST /payments/create-order", a.routes.payment.CreateOrder)
	a.mux.HandleFunc("POST /payments/verify-and-book", a.routes.payment.VerifyAndBook)

	// Admin dispatch console
	admin := a.routes.admin
	a.mux.Handle("GET /admin/me", a.m.RequireRoles(a.routes.auth.Me, types.AdminRole))
	a.mux.Handle("GET /admin/bookings", a.m.RequireRoles(admin.ListBookings, types.AdminRole))
	a.mux.Handle("GET /admin/history/completed", a.m.RequireRoles(admin.ListCompleted, types.AdminRole))
	a.mux.Handle("GET /admin/history/cancelled", a.m.RequireRoles(admin.ListCancelled, types.AdminRole))
	a.mux.Handle("GET /admin/pending-payments", a.m.RequireRoles(admin.ListPendingPayments, types.AdminRole))
	a.mux.Handle("GET /admin/bookings/{id}", a.m.RequireRoles(admin.GetBooking, types.AdminRole))
	a.mux.Handle("POST /admin/bookings/{id}/assign-taxi", a.m.RequireRoles(admin.AssignTaxi, types.AdminRole))
	a.mux.Handle("PATCH /admin/bookings/{id}/status", a.m.RequireRoles(admin.UpdateStatus, types.AdminRole))
	a.mux.Handle("POST /admin/bookings/{id}/complete", a.m.RequireRoles(admin.Complete, types.AdminRole))
	a.mux.Handle("POST /admin/bookings/{id}/cancel", a.m.RequireRoles(admin.Cancel, types.AdminRole))
	a.mux.Handle("GET /admin/bookings/{id}/notes", a.m.RequireRoles(admin.ListNotes, types.AdminRole))
	a.mux.Handle("POST /admin/bookings/{id}/notes", a.m.RequireRoles(admin.AddNote, types.AdminRole))

	// Fleet management
	a.mux.Handle("GET /admin/vehicles", a.m.RequireRoles(a.routes.fleet.AdminListVehicles, types.AdminRole))
	a.mux.Handle("POST /admin/vehicles", a.m.RequireRoles(a.routes.fleet.CreateVehicle, types.AdminRole))
	a.mux.Handle("PATCH /admin/vehicles/{id}", a.m.RequireRoles(a.routes.fleet.UpdateVehicle, types.AdminRole))
	a.mux.Handle("POST /admin/vehicles/{id}/deactivate", a.m.RequireRoles(a.routes.fleet.DeactivateVehicle, types.AdminRole))

	// Live booking feed for the admin dashboard
	a.mux.Handle("GET /admin/ws", a.m.RequireRoles(a.routes.feed.Subscribe, types.AdminRole))
}

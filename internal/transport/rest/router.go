package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/service-tracking/internal/assignment"
	"github.com/frahmantamala/service-tracking/internal/auth"
	"github.com/frahmantamala/service-tracking/internal/driver"
	"github.com/frahmantamala/service-tracking/internal/route"
	"github.com/frahmantamala/service-tracking/internal/shift"
	"github.com/frahmantamala/service-tracking/internal/tracking"
	"github.com/frahmantamala/service-tracking/internal/transport/middleware"
	"github.com/frahmantamala/service-tracking/internal/transport/swagger"
	"github.com/frahmantamala/service-tracking/internal/user"
	"github.com/frahmantamala/service-tracking/internal/vehicle"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, routeHandler *route.Handler, vehicleHandler *vehicle.Handler, driverHandler *driver.Handler, shiftHandler *shift.Handler, assignmentHandler *assignment.Handler, trackingHandler *tracking.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Get("/validate", authHandler.ValidateToken)
			})
		}

		if authHandler == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Post("/auth/change-password", authHandler.ChangePassword)

			if userHandler != nil {
				pr.Get("/users/me", userHandler.GetCurrentUser)

				// User administration is admin-only
				pr.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireRole("admin"))
					ar.Post("/auth/register", authHandler.Register)
					ar.Get("/users", userHandler.GetUsers)
					ar.Get("/users/{id}", userHandler.GetUser)
					ar.Patch("/users/{id}/role", userHandler.ChangeRole)
					ar.Get("/roles", userHandler.GetRoles)
				})
			}

			if routeHandler != nil {
				pr.Route("/routes", func(rr chi.Router) {
					rr.Get("/", routeHandler.GetRoutes)
					rr.Get("/{id}", routeHandler.GetRoute)
					rr.Get("/{id}/statistics", routeHandler.GetRouteStatistics)
					rr.Post("/", routeHandler.CreateRoute)
					rr.Put("/{id}", routeHandler.UpdateRoute)
					rr.Delete("/{id}", routeHandler.DeleteRoute)
				})
			}

			if vehicleHandler != nil {
				pr.Route("/vehicles", func(vr chi.Router) {
					vr.Get("/", vehicleHandler.GetVehicles)
					vr.Get("/{id}", vehicleHandler.GetVehicle)
					vr.Post("/", vehicleHandler.CreateVehicle)
					vr.Put("/{id}", vehicleHandler.UpdateVehicle)
					vr.Delete("/{id}", vehicleHandler.DeleteVehicle)
				})
			}

			if driverHandler != nil {
				pr.Route("/drivers", func(dr chi.Router) {
					dr.Get("/", driverHandler.GetDrivers)
					dr.Get("/{id}", driverHandler.GetDriver)
					dr.Post("/", driverHandler.CreateDriver)
					dr.Put("/{id}", driverHandler.UpdateDriver)
					dr.Delete("/{id}", driverHandler.DeleteDriver)
				})
			}

			if shiftHandler != nil {
				pr.Route("/shifts", func(sr chi.Router) {
					sr.Get("/", shiftHandler.GetShifts)
					sr.Get("/current", shiftHandler.GetCurrentShift)
					sr.Get("/{id}", shiftHandler.GetShift)
					sr.Post("/", shiftHandler.CreateShift)
					sr.Put("/{id}", shiftHandler.UpdateShift)
					sr.Delete("/{id}", shiftHandler.DeleteShift)
				})
			}

			if assignmentHandler != nil {
				pr.Route("/assignments", func(ar chi.Router) {
					ar.Route("/drivers", func(dar chi.Router) {
						dar.Get("/", assignmentHandler.GetDriverAssignments)
						dar.Get("/{id}", assignmentHandler.GetDriverAssignment)
						dar.Post("/", assignmentHandler.CreateDriverAssignment)
						dar.Put("/{id}", assignmentHandler.UpdateDriverAssignment)
						dar.Patch("/{id}/end", assignmentHandler.EndDriverAssignment)
					})
					ar.Route("/shifts", func(sar chi.Router) {
						sar.Get("/", assignmentHandler.GetShiftAssignments)
						sar.Get("/{id}", assignmentHandler.GetShiftAssignment)
						sar.Post("/", assignmentHandler.CreateShiftAssignment)
						sar.Post("/bulk", assignmentHandler.CreateBulkShiftAssignments)
						sar.Delete("/{id}", assignmentHandler.DeleteShiftAssignment)
					})
				})
			}

			if trackingHandler != nil {
				pr.Route("/tracking", func(tr chi.Router) {
					tr.Post("/entries", trackingHandler.RecordEntry)
					tr.Post("/exits", trackingHandler.RecordExit)
					tr.Get("/vehicles/active", trackingHandler.GetActiveVehicles)
					tr.Get("/vehicles/{vehicleID}/state", trackingHandler.GetVehicleState)
					tr.Get("/vehicles/{vehicleID}/movements", trackingHandler.GetVehicleMovements)
					tr.Get("/shifts/{shiftID}/movements", trackingHandler.GetShiftMovements)
					tr.Get("/reports/daily", trackingHandler.GetDailyReport)
					tr.Delete("/movements/{id}", trackingHandler.DeleteMovement)
				})
			}
		})
	})
}

package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/hrportal/leave-management/internal/auth"
	"github.com/hrportal/leave-management/internal/leave"
	"github.com/hrportal/leave-management/internal/suggestion"
	"github.com/hrportal/leave-management/internal/transport/middleware"
	"github.com/hrportal/leave-management/internal/transport/swagger"
	"github.com/hrportal/leave-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, allowedOrigins []string, authHandler *auth.Handler, userHandler *user.Handler, leaveHandler *leave.Handler, suggestionHandler *suggestion.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	roles := auth.NewRoleAuthorization(logger)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		// Public leave type catalog (no auth required)
		if leaveHandler != nil {
			r.Get("/leave-types", leaveHandler.ListLeaveTypes)
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				// Current user
				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)
					pr.Get("/users/me/balances", userHandler.GetMyBalances)
				}

				// Leave request routes
				if leaveHandler != nil {
					pr.Route("/leave-requests", func(lr chi.Router) {
						// Employee routes
						lr.Post("/", leaveHandler.CreateLeaveRequest) // POST /leave-requests
						lr.Get("/", leaveHandler.ListLeaveRequests)   // GET /leave-requests
						lr.Get("/{id}", leaveHandler.GetLeaveRequest) // GET /leave-requests/:id

						// Admin routes with role protection
						lr.Group(func(ar chi.Router) {
							ar.Use(roles.RequireAdmin())
							ar.Get("/pending", leaveHandler.ListPending)                // GET /leave-requests/pending
							ar.Get("/history", leaveHandler.ListHistory)                // GET /leave-requests/history
							ar.Get("/stats", leaveHandler.GetStats)                     // GET /leave-requests/stats
							ar.Get("/stats/monthly", leaveHandler.GetMonthlyStats)      // GET /leave-requests/stats/monthly
							ar.Patch("/{id}/approve", leaveHandler.ApproveLeaveRequest) // PATCH /leave-requests/:id/approve
							ar.Patch("/{id}/reject", leaveHandler.RejectLeaveRequest)   // PATCH /leave-requests/:id/reject
						})
					})
				}

				// Suggestion routes
				if suggestionHandler != nil {
					pr.Route("/suggestions", func(sr chi.Router) {
						sr.Post("/request-reason", suggestionHandler.SuggestRequestReason)

						sr.Group(func(ar chi.Router) {
							ar.Use(roles.RequireAdmin())
							ar.Post("/rejection-reason", suggestionHandler.SuggestRejectionReason)
						})
					})
				}
			})
		}
	})
}

package api

import (
	"net/http"
	"time"

	"cmcs_backend/internal/api/handler"
	"cmcs_backend/internal/app/service"
	"cmcs_backend/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	claimService *service.ClaimService,
	statsService *service.StatsService,
	reportService *service.ReportService,
	userService *service.UserService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// JWT Auth Middleware Setup
	// It will search for a token in "Authorization: Bearer T".
	r.Use(jwtauth.Verifier(security.TokenAuth)) // Verifies token, puts claims in context

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		// Claim routes (lecturer submission/listing + reviewer actions)
		claimHandler := handler.NewClaimHandler(claimService, statsService)
		v1.Route("/claims", claimHandler.RegisterRoutes)

		// Dashboard + payout report (admin/HR)
		dashboardHandler := handler.NewDashboardHandler(statsService, reportService)
		v1.Route("/dashboard", dashboardHandler.RegisterRoutes)

		// User management (admin/HR)
		userHandler := handler.NewUserHandler(userService)
		v1.Route("/users", userHandler.RegisterRoutes)
	})

	return r
}

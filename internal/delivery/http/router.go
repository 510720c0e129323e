package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "mailmerge/docs"
	"mailmerge/internal/delivery/http/controllers"
	"mailmerge/internal/delivery/http/middleware"
	"mailmerge/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	authController *controllers.AuthController,
	datasetController *controllers.DatasetController,
	campaignController *controllers.CampaignController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("GET /auth/login", authController.Login)
	mux.HandleFunc("GET /auth/callback", authController.Callback)
	mux.HandleFunc("POST /auth/logout", requireAuth(authController.Logout))
	mux.HandleFunc("GET /auth/me", requireAuth(authController.Me))

	// Datasets
	mux.HandleFunc("POST /datasets", requireAuth(datasetController.Upload))
	mux.HandleFunc("GET /datasets/current", requireAuth(datasetController.Current))

	// Sending
	mux.HandleFunc("POST /campaigns", requireAuth(campaignController.Dispatch))
	mux.HandleFunc("POST /messages", requireAuth(campaignController.SendMessage))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

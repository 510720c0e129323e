// Package main is the entry point for the mail-merge API server.
//
// It loads configuration, connects to Postgres, wires the adapters,
// services, and HTTP controllers, and serves the API with graceful
// shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"mailmerge/config"
	authadapter "mailmerge/internal/adapters/auth"
	"mailmerge/internal/adapters/email"
	"mailmerge/internal/adapters/graph"
	"mailmerge/internal/adapters/identity"
	"mailmerge/internal/adapters/uploads"
	httpdelivery "mailmerge/internal/delivery/http"
	"mailmerge/internal/delivery/http/controllers"
	"mailmerge/internal/delivery/http/middleware"
	"mailmerge/internal/repository/postgres"
	"mailmerge/internal/services"
)

const (
	serviceTimeout    = 2 * time.Minute
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// @title Mail Merge API
// @version 1.0
// @description CSV mail-merge backend: upload a recipient list, profile it for email columns, and send templated campaigns as the signed-in user.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := config.NewLogger()
	logger.Info("mailmerge API starting", "environment", cfg.Environment, "port", cfg.Port)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	uploadStore, err := uploads.NewStore(cfg.Upload.Dir)
	if err != nil {
		return fmt.Errorf("creating upload store: %w", err)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:     cfg.Mailer.Provider,
		FromAddress:  cfg.Mailer.FromAddress,
		FromName:     cfg.Mailer.FromName,
		GraphBaseURL: cfg.GraphBaseURL,
		SES: email.SESConfig{
			Region:          cfg.Mailer.SES.Region,
			AccessKeyID:     cfg.Mailer.SES.AccessKeyID,
			SecretAccessKey: cfg.Mailer.SES.SecretAccessKey,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("creating mailer: %w", err)
	}

	sessionRepo := postgres.NewSessionRepository(db)
	datasetRepo := postgres.NewDatasetRepository(db)

	tokens := authadapter.NewJWTTokens(cfg.JWTSecret)
	provider := identity.NewAzureProvider(cfg.OAuth.ClientID, cfg.OAuth.ClientSecret, cfg.OAuth.TenantID, cfg.OAuth.RedirectURL)
	profiles := graph.NewClient(cfg.GraphBaseURL, 30*time.Second)

	authService := services.NewAuthService(provider, profiles, sessionRepo, datasetRepo, tokens, tokens, cfg.SessionTTL, serviceTimeout)
	ingestionService := services.NewIngestionService(datasetRepo, uploadStore, logger, serviceTimeout)
	campaignService := services.NewCampaignService(datasetRepo, sessionRepo, provider, mailer, logger, serviceTimeout)

	authController := controllers.NewAuthController(logger, authService)
	datasetController := controllers.NewDatasetController(logger, ingestionService, cfg.Upload.MaxBytes)
	campaignController := controllers.NewCampaignController(logger, campaignService)

	mux := httpdelivery.NewRouter(authController, datasetController, campaignController, tokens, logger)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

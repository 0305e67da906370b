// cmd/api/main.go
// Main entry point. Bootstraps configuration, databases, and every feature
// package, then serves HTTP with graceful shutdown.

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
	"github.com/heartlinkapp/heartlink-backend/internal/authz"
	"github.com/heartlinkapp/heartlink-backend/internal/billing"
	"github.com/heartlinkapp/heartlink-backend/internal/common/database"
	"github.com/heartlinkapp/heartlink-backend/internal/common/utils"
	"github.com/heartlinkapp/heartlink-backend/internal/config"
	"github.com/heartlinkapp/heartlink-backend/internal/discovery"
	"github.com/heartlinkapp/heartlink-backend/internal/messaging"
	"github.com/heartlinkapp/heartlink-backend/internal/notification"
	"github.com/heartlinkapp/heartlink-backend/internal/presence"
	"github.com/heartlinkapp/heartlink-backend/internal/profile"
	"github.com/heartlinkapp/heartlink-backend/internal/relationship"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("Configuration validation failed")
	}

	setupLogging(cfg)

	logrus.WithField("environment", cfg.Environment).Info("Starting Heartlink API")

	// Databases
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to PostgreSQL")
	}
	defer db.Close()
	logrus.Info("Connected to PostgreSQL")

	redisClient, err := database.NewRedisClientFromURL(cfg.RedisURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logrus.Info("Connected to Redis")

	// Auth
	authRepo := auth.NewPostgresRepository(db)
	authService := auth.NewService(authRepo, redisClient, &auth.Config{
		JWTSecret:           cfg.JWTSecret,
		AccessTokenExpiry:   cfg.AccessTokenExpiry,
		RefreshTokenExpiry:  cfg.RefreshTokenExpiry,
		BCryptCost:          cfg.BCryptCost,
		LoginAttemptsMax:    cfg.LoginAttemptsMax,
		LoginAttemptsWindow: cfg.LoginAttemptsWindow,
	})
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(authService)

	// Relationships and the match detector
	relationshipRepo := relationship.NewPostgresRepository(db)
	detector := relationship.NewDetector(relationshipRepo)

	// Authorization guard
	guard := authz.NewGuard(detector, authz.NewSecurityLogger(logrus.StandardLogger()))

	// Profiles
	uploads := buildUploadService(cfg)
	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(profileRepo, uploads, &profile.Config{
		MaxPhotosPerUser: cfg.MaxPhotosPerUser,
		DefaultMinAge:    cfg.MinAge,
		DefaultMaxAge:    cfg.MaxAge,
	})
	guard.RegisterOwner("photo", profile.NewPhotoOwners(profileRepo))
	profileHandler := profile.NewHandler(profileService, guard)

	// Realtime hub
	hub := messaging.NewHub()
	go hub.Run()
	defer hub.Shutdown()

	// Notifications
	notifier := notification.NewNotifier(
		notification.NewAuthDirectory(authRepo),
		buildEmailService(cfg),
		buildSMSService(cfg),
		hub,
		notification.Config{
			EnableEmail: cfg.EnableEmailNotifications,
			EnableSMS:   cfg.EnableSMSNotifications,
		},
	)

	// Billing
	billingRepo := billing.NewPostgresRepository(db)
	billingService := billing.NewService(billingRepo)
	billingHandler := billing.NewHandler(billingService, cfg.BillingWebhookSecret)

	// Relationship service and handler
	relationshipService := relationship.NewService(relationshipRepo, detector, notifier)
	relationshipHandler := relationship.NewHandler(relationshipService, billingService)

	// Discovery
	discoveryRepo := discovery.NewPostgresRepository(db)
	discoveryService := discovery.NewService(discoveryRepo, profileService, &discovery.Config{
		PageSize: cfg.DiscoveryPageSize,
		MinAge:   cfg.MinAge,
		MaxAge:   cfg.MaxAge,
	})
	discoveryHandler := discovery.NewHandler(discoveryService)

	// Presence
	presenceService := presence.NewService(redisClient, cfg.PresenceTTL)
	presenceHandler := presence.NewHandler(presenceService, guard)

	// Chat credentials
	chatSecret := cfg.ChatTokenSecret
	if chatSecret == "" {
		chatSecret = cfg.JWTSecret
	}
	tokenService := messaging.NewTokenService(guard, chatSecret, cfg.ChatTokenExpiry)
	messagingHandler := messaging.NewHandler(tokenService, hub)

	// Router
	router := mux.NewRouter()
	router.HandleFunc("/healthz", healthHandler).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	auth.RegisterRoutes(router, authHandler, authMiddleware)

	// Profile routes live on a chi router mounted under the main one
	profileRouter := chi.NewRouter()
	profile.RegisterRoutes(profileRouter, profileHandler, authMiddleware)
	router.PathPrefix("/api/v1/profiles").Handler(profileRouter)

	relationship.RegisterRoutes(router, relationshipHandler, authMiddleware)
	discovery.RegisterRoutes(router, discoveryHandler, authMiddleware)
	presence.RegisterRoutes(router, presenceHandler, authMiddleware)
	messaging.RegisterRoutes(router, messagingHandler, authMiddleware)
	billing.RegisterRoutes(router, billingHandler, authMiddleware)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func buildUploadService(cfg *config.Config) profile.UploadService {
	if cfg.UseS3 {
		uploads, err := profile.NewS3UploadService(&profile.S3Config{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Bucket:          cfg.S3Bucket,
		})
		if err != nil {
			logrus.WithError(err).Fatal("Failed to initialize S3 uploads")
		}
		return uploads
	}

	return profile.NewLocalUploadService(cfg.LocalUploadDir, cfg.BaseURL)
}

func buildEmailService(cfg *config.Config) notification.EmailService {
	switch cfg.EmailProvider {
	case "sendgrid":
		return notification.NewSendGridEmailService(cfg.SendGridAPIKey, cfg.EmailFromName, cfg.EmailFrom)
	case "smtp":
		return notification.NewSMTPEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFromName, cfg.EmailFrom)
	default:
		return notification.MockEmailService{}
	}
}

func buildSMSService(cfg *config.Config) notification.SMSService {
	if cfg.SMSProvider == "twilio" {
		return notification.NewTwilioSMSService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
	}
	return notification.MockSMSService{}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	utils.RespondWithData(w, http.StatusOK, map[string]string{"status": "ok"})
}

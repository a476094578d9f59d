package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"roadwatch/internal/config"
	"roadwatch/internal/handlers"
	"roadwatch/internal/middleware"
	"roadwatch/internal/repositories/mongodb"
	"roadwatch/internal/services"
	"roadwatch/pkg/database"
	"roadwatch/pkg/logger"
	"roadwatch/pkg/mailer"
	"roadwatch/pkg/sms"
	"roadwatch/pkg/storage"
	"roadwatch/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.EnsureIndexes(db.Database); err != nil {
		appLogger.Fatalf("Failed to ensure indexes: %v", err)
	}

	// Collaborators
	storageProvider, err := storage.NewAWSS3Storage(
		cfg.Storage.Region,
		cfg.Storage.Bucket,
		cfg.Storage.AccessKeyID,
		cfg.Storage.SecretAccessKey,
	)
	if err != nil {
		appLogger.Fatalf("Failed to initialize S3 storage: %v", err)
	}

	var smsProvider sms.Provider
	switch cfg.SMS.Provider {
	case "twilio":
		smsProvider = sms.NewTwilioProvider(cfg.SMS.Twilio.AccountSID, cfg.SMS.Twilio.AuthToken, cfg.SMS.Twilio.FromNumber)
	default:
		smsProvider = sms.NewFast2SMSProvider(cfg.SMS.Fast2SMS.Endpoint, cfg.SMS.Fast2SMS.APIKey, cfg.SMS.Fast2SMS.SenderID)
	}

	mail := mailer.NewSMTPMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.FromEmail,
		cfg.SMTP.SSL,
	)

	// Repositories
	adminRepo := mongodb.NewAdminRepository(db.Database)
	userRepo := mongodb.NewUserRepository(db.Database)
	potholeRepo := mongodb.NewPotholeRepository(db.Database)

	// Services
	adminService := services.NewAdminService(adminRepo, mail, cfg.Auth, appLogger)
	subAdminService := services.NewSubAdminService(adminRepo, appLogger)
	userService := services.NewUserService(userRepo, smsProvider, cfg.Auth, appLogger)
	potholeService := services.NewPotholeService(potholeRepo, storageProvider, appLogger)

	// Handlers
	adminHandler := handlers.NewAdminHandler(adminService)
	subAdminHandler := handlers.NewSubAdminHandler(subAdminService)
	userHandler := handlers.NewUserHandler(userService)
	potholeHandler := handlers.NewPotholeHandler(potholeService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	api := router.Group("/api")
	{
		routes.SetupAdminRoutes(api, adminHandler, adminRepo, cfg.Auth.JWTSecret)
		routes.SetupSubAdminRoutes(api, subAdminHandler, adminRepo, cfg.Auth.JWTSecret)
		routes.SetupAuthRoutes(api, userHandler, cfg.Auth.JWTSecret)
		routes.SetupPotholeRoutes(api, potholeHandler)
	}

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.WithField("addr", addr).Info("starting server")
	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.Fatalf("Server exited: %v", err)
	}
}

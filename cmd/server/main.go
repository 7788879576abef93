package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/agrolime/limeportal/data"
	_ "github.com/agrolime/limeportal/docs/api" // Swagger docs
	"github.com/agrolime/limeportal/internal/config"
	"github.com/agrolime/limeportal/internal/database"
	"github.com/agrolime/limeportal/internal/handlers"
	"github.com/agrolime/limeportal/internal/logging"
	"github.com/agrolime/limeportal/internal/services"
	"github.com/agrolime/limeportal/internal/utils"
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// @title Lime Portal API
// @version 1.0.0
// @description Liming and fertilization consultancy portal: product catalog, calculators, customer parcels and liming requests
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/agrolime/limeportal
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	logging.Set(appLog)
	defer appLog.Sync() //nolint:errcheck

	utils.SetDefaultLocale(cfg.DefaultLocale)

	db, err := database.Connect(cfg)
	if err != nil {
		appLog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		appLog.Fatal("failed to run migrations", zap.Error(err))
	}

	if cfg.SeedCatalog {
		res, err := database.SeedCatalog(db, data.SeedCatalog)
		if err != nil {
			appLog.Fatal("failed to seed catalog", zap.Error(err))
		}
		appLog.Info("catalog seeded",
			zap.Int("liming_products", res.LimingProducts),
			zap.Int("fertilization_products", res.FertilizationProducts),
			zap.Int("portal_images", res.PortalImages))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("limeportal")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	deps := handlers.Deps{
		DB:       db,
		Config:   cfg,
		Sessions: services.NewAuthorizerValidator(cfg),
	}
	if cfg.BotProtectionEnabled() {
		deps.Bot = services.NewTurnstileVerifier(cfg.TurnstileSecretKey)
	} else {
		appLog.Warn("TURNSTILE_SECRET_KEY is not set, the contact form is not bot protected")
	}
	handlers.Setup(app, deps)

	// Authorizer is contacted on the first authenticated request
	appLog.Info("authorizer will be initialized on first authenticated request", zap.String("url", cfg.AuthzURL))

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		appLog.Info("gracefully shutting down")
		_ = app.Shutdown()
	}()

	appLog.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		appLog.Fatal("failed to start server", zap.Error(err))
	}

	appLog.Info("server stopped")
}

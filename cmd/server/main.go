package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dealerhub/dealerhub-backend/config"
	"github.com/dealerhub/dealerhub-backend/internal/app/controller"
	"github.com/dealerhub/dealerhub-backend/internal/app/repository"
	"github.com/dealerhub/dealerhub-backend/internal/app/service"
	"github.com/dealerhub/dealerhub-backend/internal/db"
	"github.com/dealerhub/dealerhub-backend/internal/router"
	"github.com/dealerhub/dealerhub-backend/internal/scheduler"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
	"github.com/dealerhub/dealerhub-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting DealerHub Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; feature flag checks fall back to the database
	// when it is absent.
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, feature flag caching disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close redis connection", err)
				}
			}()
		}
	}

	// Initialize repositories
	featureRepo := repository.NewFeatureRepository(db.GetDB())
	sectionRepo := repository.NewSectionRepository(db.GetDB())
	fieldRepo := repository.NewFieldRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	dealerRepo := repository.NewDealerRepository(db.GetDB())
	filterRepo := repository.NewFilterRepository(db.GetDB())

	// Initialize services
	featureService := service.NewFeatureService(featureRepo)
	schemaService := service.NewSchemaService(db.GetDB(), sectionRepo, fieldRepo, featureService)
	productService := service.NewProductService(db.GetDB(), productRepo, fieldRepo, featureService)
	dealerService := service.NewDealerService(db.GetDB(), dealerRepo, fieldRepo)
	filterService := service.NewFilterService(db.GetDB(), filterRepo, fieldRepo, featureService)

	// Initialize controllers
	schemaController := controller.NewSchemaController(schemaService)
	productController := controller.NewProductController(productService)
	dealerController := controller.NewDealerController(dealerService)
	filterController := controller.NewFilterController(filterService)

	// Start the filter sync scheduler
	if cfg.Scheduler.FilterSyncEnabled {
		filterSyncScheduler := scheduler.NewFilterSyncScheduler(
			cfg.Scheduler.FilterSyncCron,
			fieldRepo,
			filterService,
		)
		if err := filterSyncScheduler.Start(); err != nil {
			logger.Fatal("Failed to start filter sync scheduler", err)
		}
		defer filterSyncScheduler.Stop()
	}

	// Setup router
	r := router.NewRouter(
		schemaController,
		productController,
		dealerController,
		filterController,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}

package db

import (
	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Tenant{},
		&model.TenantFeature{},
		&model.Dealer{},
		&model.ProductSection{},
		&model.ProductField{},
		&model.Product{},
		&model.ProductFieldValue{},
		&model.Filter{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Database migration failed", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"model_count": len(models),
	})
	return nil
}

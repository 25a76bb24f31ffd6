package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dealerhub/dealerhub-backend/internal/app/repository"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
	"github.com/dealerhub/dealerhub-backend/pkg/redis"
)

// ErrFeatureNotEnabled is returned by any mutation whose functional area
// is switched off for the acting tenant. No write is attempted.
var ErrFeatureNotEnabled = errors.New("feature not enabled for this tenant")

type FeatureService interface {
	IsEnabled(tenantID uuid.UUID, feature string) (bool, error)
	SetFeature(tenantID uuid.UUID, feature string, enabled bool) error
}

type featureService struct {
	featureRepo repository.FeatureRepository
}

func NewFeatureService(featureRepo repository.FeatureRepository) FeatureService {
	return &featureService{featureRepo: featureRepo}
}

// IsEnabled consults the Redis cache first and falls back to the database.
// Cache failures only cost the cache hit, never the answer.
func (s *featureService) IsEnabled(tenantID uuid.UUID, feature string) (bool, error) {
	ctx := context.Background()

	if enabled, found, err := redis.GetCachedFeatureFlag(ctx, tenantID.String(), feature); err == nil && found {
		logger.Debug("Feature flag served from cache", map[string]interface{}{
			"tenant_id": tenantID,
			"feature":   feature,
			"enabled":   enabled,
		})
		return enabled, nil
	}

	enabled, err := s.featureRepo.IsEnabled(tenantID, feature)
	if err != nil {
		logger.Error("Failed to resolve feature flag", err, map[string]interface{}{
			"tenant_id": tenantID,
			"feature":   feature,
		})
		return false, err
	}

	if err := redis.CacheFeatureFlag(ctx, tenantID.String(), feature, enabled); err != nil {
		logger.Warn("Failed to cache feature flag", map[string]interface{}{
			"tenant_id": tenantID,
			"feature":   feature,
		})
	}

	return enabled, nil
}

func (s *featureService) SetFeature(tenantID uuid.UUID, feature string, enabled bool) error {
	logger.Info("Setting tenant feature", map[string]interface{}{
		"tenant_id": tenantID,
		"feature":   feature,
		"enabled":   enabled,
	})

	if err := s.featureRepo.SetFeature(tenantID, feature, enabled); err != nil {
		logger.Error("Failed to set tenant feature", err, map[string]interface{}{
			"tenant_id": tenantID,
			"feature":   feature,
		})
		return err
	}

	if err := redis.InvalidateFeatureFlag(context.Background(), tenantID.String(), feature); err != nil {
		logger.Warn("Failed to invalidate cached feature flag", map[string]interface{}{
			"tenant_id": tenantID,
			"feature":   feature,
		})
	}

	return nil
}

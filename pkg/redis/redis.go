package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/dealerhub/dealerhub-backend/config"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// featureFlagTTL bounds how stale a cached feature decision can be.
const featureFlagTTL = 5 * time.Minute

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

func featureKey(tenantID, feature string) string {
	return fmt.Sprintf("feature:%s:%s", tenantID, feature)
}

// CacheFeatureFlag stores a tenant's feature decision
func CacheFeatureFlag(ctx context.Context, tenantID, feature string, enabled bool) error {
	if client == nil {
		return nil
	}

	value := "0"
	if enabled {
		value = "1"
	}

	err := client.Set(ctx, featureKey(tenantID, feature), value, featureFlagTTL).Err()
	if err != nil {
		logger.Error("Failed to cache feature flag", err, map[string]interface{}{
			"tenant_id": tenantID,
			"feature":   feature,
		})
		return err
	}
	return nil
}

// GetCachedFeatureFlag returns (enabled, found, err) for a cached feature decision
func GetCachedFeatureFlag(ctx context.Context, tenantID, feature string) (bool, bool, error) {
	if client == nil {
		return false, false, nil
	}

	val, err := client.Get(ctx, featureKey(tenantID, feature)).Result()
	if err == redis.Nil {
		return false, false, nil
	}
	if err != nil {
		logger.Error("Failed to read cached feature flag", err, map[string]interface{}{
			"tenant_id": tenantID,
			"feature":   feature,
		})
		return false, false, err
	}

	return val == "1", true, nil
}

// InvalidateFeatureFlag drops a cached feature decision after a flag change
func InvalidateFeatureFlag(ctx context.Context, tenantID, feature string) error {
	if client == nil {
		return nil
	}
	return client.Del(ctx, featureKey(tenantID, feature)).Err()
}

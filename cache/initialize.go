package cache

import (
	"os"

	"kalma/config"

	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeCache builds the cache that records revoked session tokens.
// Use CACHE_TYPE=redis when more than one instance serves the same cookies.
func InitializeCache(cfg config.Cache) cache.Cache {
	c, err := cache.New(cache.Config{
		Type:          cfg.Type,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error("Failed to initialize cache:", zap.String("type", cfg.Type), zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Cache initialized", zap.String("type", cfg.Type))
	return c
}

package store

import (
	"fmt"
	"log/slog"

	"skysage.app/config"
)

// NewStore builds the preference store selected by configuration.
func NewStore(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "file":
		slog.Info("Using file preference store", "path", cfg.FilePath)
		return NewFileStore(cfg.FilePath)
	case "redis":
		return NewRedisStore(&RedisStoreConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "memory":
		slog.Warn("Using in-memory preference store; settings will not survive restarts")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown preference store backend: %q", cfg.Backend)
	}
}

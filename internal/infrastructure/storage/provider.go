package storage

import (
	"context"

	"github.com/rs/zerolog"

	"apkraft/internal/config"
	"apkraft/internal/domain/file"
)

// NewStorage creates the backend selected by APKRAFT_STORAGE_BACKEND.
func NewStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (file.Storage, error) {
	if cfg.IsLocalStorage() {
		return NewLocalStorage(cfg, log)
	}
	return NewS3Storage(ctx, cfg, log)
}

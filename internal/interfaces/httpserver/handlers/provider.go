package handlers

import (
	"github.com/rs/zerolog"

	"apkraft/internal/domain/app"
	"apkraft/internal/domain/file"
	"apkraft/internal/domain/platform"
)

// Provider wires HTTP handlers.
type Provider struct {
	Platform *PlatformHandler
	File     *FileHandler
	App      *AppHandler
	Version  *VersionHandler
}

func NewProvider(
	platforms *platform.Service,
	files *file.Service,
	apps *app.Service,
	versions *app.VersionService,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Platform: NewPlatformHandler(platforms, log),
		File:     NewFileHandler(files, log),
		App:      NewAppHandler(apps, log),
		Version:  NewVersionHandler(versions, log),
	}
}

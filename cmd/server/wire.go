//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"apkraft/internal/config"
	"apkraft/internal/domain/app"
	"apkraft/internal/domain/file"
	"apkraft/internal/domain/platform"
	"apkraft/internal/domain/query"
	"apkraft/internal/infrastructure/database/repository"
	"apkraft/internal/infrastructure/database/transaction"
	"apkraft/internal/infrastructure/storage"
	"apkraft/internal/interfaces/httpserver"
	"apkraft/internal/interfaces/httpserver/handlers"
)

var infrastructureSet = wire.NewSet(
	newDatabaseConfig,
	newGormDB,
	transaction.NewDatabase,
	wire.Bind(new(query.Transactor), new(*transaction.Database)),
	repository.RepositoryProvider,
	storage.NewStorage,
)

var domainSet = wire.NewSet(
	platform.NewService,
	file.NewService,
	app.NewService,
	app.NewVersionService,
	wire.Bind(new(app.PlatformLookup), new(*platform.Service)),
	wire.Bind(new(app.FileResolver), new(*file.Service)),
)

// BuildApplication assembles the apkraft API with Wire.
func BuildApplication(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Application, error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		handlers.NewProvider,
		newReadiness,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

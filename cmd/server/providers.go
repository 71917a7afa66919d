package main

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"apkraft/internal/config"
	"apkraft/internal/domain/file"
	"apkraft/internal/infrastructure/database"
	"apkraft/internal/infrastructure/database/transaction"
	"apkraft/internal/interfaces/httpserver"
)

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.GetDatabaseWriteDSN(),
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg *config.Config, dbCfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(dbCfg)
	if err != nil {
		return nil, err
	}
	if !cfg.DBAutoMigrate {
		return db, nil
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newReadiness(db *transaction.Database, files *file.Service) httpserver.Readiness {
	return httpserver.Readiness{
		"database": db,
		"storage":  httpserver.HealthCheckFunc(files.Health),
	}
}

package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"apkraft/internal/infrastructure/database/migrations"
)

// AutoMigrate applies the embedded SQL migrations.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	sqlDB, err := db.WithContext(ctx).DB()
	if err != nil {
		return fmt.Errorf("retrieve sql db: %w", err)
	}
	if err := migrations.MigrateUp(sqlDB); err != nil {
		return err
	}
	version, _, err := migrations.Version(sqlDB)
	if err != nil {
		return err
	}
	log.Info().Uint("schema_version", version).Msg("applied catalog migrations")
	return nil
}

package apprepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"apkraft/internal/domain/app"
	"apkraft/internal/infrastructure/database/entities"
	"apkraft/internal/infrastructure/database/transaction"
	"apkraft/internal/utils/functional"
	"apkraft/internal/utils/platformerrors"
	"apkraft/internal/utils/stringutils"
)

// AppGormRepository implements app.Repository using GORM
type AppGormRepository struct {
	db *transaction.Database
}

var _ app.Repository = (*AppGormRepository)(nil)

func NewAppGormRepository(db *transaction.Database) *AppGormRepository {
	return &AppGormRepository{db: db}
}

func (repo *AppGormRepository) Create(ctx context.Context, a *app.App) error {
	row := entities.App{
		Name:             a.Name,
		BundleID:         a.BundleID,
		IconFileID:       a.IconFileID,
		CurrentVersionID: a.CurrentVersionID,
		Description:      a.Description,
		PlatformID:       a.PlatformID,
	}
	if err := repo.db.GetTx(ctx).Create(&row).Error; err != nil {
		return platformerrors.FromGorm(ctx, err, "failed to create app", "app-repo-create-001")
	}
	a.ID = row.ID
	a.CreatedAt = row.CreatedAt
	a.UpdatedAt = row.UpdatedAt
	return nil
}

func (repo *AppGormRepository) FindByID(ctx context.Context, id int64) (*app.App, error) {
	var row entities.App
	if err := repo.db.GetTx(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, platformerrors.FromGorm(ctx, err, "app not found", "app-repo-find-001")
	}
	return appToDomain(row), nil
}

func (repo *AppGormRepository) FindByBundleID(ctx context.Context, bundleID string) (*app.App, error) {
	var rows []entities.App
	if err := repo.db.GetTx(ctx).Where("bundle_id = ?", bundleID).Limit(1).Find(&rows).Error; err != nil {
		return nil, platformerrors.FromGorm(ctx, err, "failed to find app by bundle id", "app-repo-bundle-001")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return appToDomain(rows[0]), nil
}

func (repo *AppGormRepository) Update(ctx context.Context, id int64, patch app.Patch) (*app.App, error) {
	updates := map[string]any{
		"updated_at": patch.UpdatedAt.OrElse(time.Now().UTC()),
	}
	if v, ok := patch.Name.Get(); ok {
		updates["name"] = v
	}
	if v, ok := patch.BundleID.Get(); ok {
		updates["bundle_id"] = v
	}
	if v, ok := patch.IconFileID.Get(); ok {
		updates["icon_file_id"] = v
	}
	if v, ok := patch.CurrentVersionID.Get(); ok {
		updates["current_version_id"] = v
	}
	if v, ok := patch.Description.Get(); ok {
		updates["description"] = v
	}
	if v, ok := patch.PlatformID.Get(); ok {
		updates["platform_id"] = v
	}

	result := repo.db.GetTx(ctx).Model(&entities.App{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, platformerrors.FromGorm(ctx, result.Error, "failed to update app", "app-repo-update-001")
	}
	if result.RowsAffected == 0 {
		return nil, platformerrors.FromGorm(ctx, gorm.ErrRecordNotFound, "app not found", "app-repo-update-002")
	}
	return repo.FindByID(ctx, id)
}

func (repo *AppGormRepository) ClearCurrentVersion(ctx context.Context, appID int64) error {
	err := repo.db.GetTx(ctx).
		Model(&entities.App{}).
		Where("id = ?", appID).
		Updates(map[string]any{
			"current_version_id": nil,
			"updated_at":         time.Now().UTC(),
		}).Error
	if err != nil {
		return platformerrors.FromGorm(ctx, err, "failed to clear current version", "app-repo-clear-001")
	}
	return nil
}

func (repo *AppGormRepository) Delete(ctx context.Context, id int64) error {
	if err := repo.db.GetTx(ctx).Delete(&entities.App{}, id).Error; err != nil {
		return platformerrors.FromGorm(ctx, err, "failed to delete app", "app-repo-delete-001")
	}
	return nil
}

func (repo *AppGormRepository) List(ctx context.Context, filter app.Filter) ([]*app.App, int64, error) {
	var total int64
	if err := repo.applyFilter(repo.db.GetTx(ctx).Model(&entities.App{}), filter).Count(&total).Error; err != nil {
		return nil, 0, platformerrors.FromGorm(ctx, err, "failed to count apps", "app-repo-count-001")
	}
	if total == 0 {
		return []*app.App{}, 0, nil
	}

	var rows []entities.App
	err := repo.applyFilter(repo.db.GetTx(ctx), filter).
		Order("id DESC").
		Offset(filter.Pagination.Offset()).
		Limit(filter.Pagination.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, platformerrors.FromGorm(ctx, err, "failed to list apps", "app-repo-list-001")
	}
	return functional.Map(rows, appToDomain), total, nil
}

func (repo *AppGormRepository) applyFilter(db *gorm.DB, filter app.Filter) *gorm.DB {
	if filter.Name != "" {
		db = db.Where("name ILIKE ?", stringutils.ContainsPattern(filter.Name))
	}
	if filter.BundleID != "" {
		db = db.Where("bundle_id ILIKE ?", stringutils.ContainsPattern(filter.BundleID))
	}
	if filter.Description != "" {
		db = db.Where("description ILIKE ?", stringutils.ContainsPattern(filter.Description))
	}
	if filter.PlatformID != nil {
		db = db.Where("platform_id = ?", *filter.PlatformID)
	}
	return db
}

func appToDomain(row entities.App) *app.App {
	return &app.App{
		ID:               row.ID,
		Name:             row.Name,
		BundleID:         row.BundleID,
		IconFileID:       row.IconFileID,
		CurrentVersionID: row.CurrentVersionID,
		Description:      row.Description,
		PlatformID:       row.PlatformID,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

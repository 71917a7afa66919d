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

// AppVersionGormRepository implements app.VersionRepository using GORM
type AppVersionGormRepository struct {
	db *transaction.Database
}

var _ app.VersionRepository = (*AppVersionGormRepository)(nil)

func NewAppVersionGormRepository(db *transaction.Database) *AppVersionGormRepository {
	return &AppVersionGormRepository{db: db}
}

func (repo *AppVersionGormRepository) Create(ctx context.Context, v *app.Version) error {
	row := entities.AppVersion{
		AppID:        v.AppID,
		VersionCode:  v.VersionCode,
		VersionName:  v.VersionName,
		ReleaseNotes: v.ReleaseNotes,
		APKFileID:    v.APKFileID,
		PublishedAt:  v.PublishedAt,
	}
	if err := repo.db.GetTx(ctx).Create(&row).Error; err != nil {
		return platformerrors.FromGorm(ctx, err, "failed to create app version", "version-repo-create-001")
	}
	v.ID = row.ID
	v.CreatedAt = row.CreatedAt
	v.UpdatedAt = row.UpdatedAt
	return nil
}

func (repo *AppVersionGormRepository) FindByID(ctx context.Context, id int64) (*app.Version, error) {
	var row entities.AppVersion
	if err := repo.db.GetTx(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, platformerrors.FromGorm(ctx, err, "app version not found", "version-repo-find-001")
	}
	return versionToDomain(row), nil
}

func (repo *AppVersionGormRepository) FindByTriple(ctx context.Context, appID int64, versionName, versionCode string) (*app.Version, error) {
	var rows []entities.AppVersion
	err := repo.db.GetTx(ctx).
		Where("app_id = ? AND version_name = ? AND version_code = ?", appID, versionName, versionCode).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.FromGorm(ctx, err, "failed to find app version", "version-repo-triple-001")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return versionToDomain(rows[0]), nil
}

func (repo *AppVersionGormRepository) Update(ctx context.Context, id int64, patch app.VersionPatch) (*app.Version, error) {
	updates := map[string]any{
		"updated_at": patch.UpdatedAt.OrElse(time.Now().UTC()),
	}
	if v, ok := patch.VersionCode.Get(); ok {
		updates["version_code"] = v
	}
	if v, ok := patch.VersionName.Get(); ok {
		updates["version_name"] = v
	}
	if v, ok := patch.ReleaseNotes.Get(); ok {
		updates["release_notes"] = v
	}
	if v, ok := patch.PublishedAt.Get(); ok {
		updates["published_at"] = v
	}

	result := repo.db.GetTx(ctx).Model(&entities.AppVersion{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, platformerrors.FromGorm(ctx, result.Error, "failed to update app version", "version-repo-update-001")
	}
	if result.RowsAffected == 0 {
		return nil, platformerrors.FromGorm(ctx, gorm.ErrRecordNotFound, "app version not found", "version-repo-update-002")
	}
	return repo.FindByID(ctx, id)
}

func (repo *AppVersionGormRepository) Delete(ctx context.Context, id int64) error {
	if err := repo.db.GetTx(ctx).Delete(&entities.AppVersion{}, id).Error; err != nil {
		return platformerrors.FromGorm(ctx, err, "failed to delete app version", "version-repo-delete-001")
	}
	return nil
}

func (repo *AppVersionGormRepository) List(ctx context.Context, filter app.VersionFilter) ([]*app.Version, int64, error) {
	var total int64
	if err := repo.applyFilter(repo.db.GetTx(ctx).Model(&entities.AppVersion{}), filter).Count(&total).Error; err != nil {
		return nil, 0, platformerrors.FromGorm(ctx, err, "failed to count app versions", "version-repo-count-001")
	}
	if total == 0 {
		return []*app.Version{}, 0, nil
	}

	var rows []entities.AppVersion
	err := repo.applyFilter(repo.db.GetTx(ctx), filter).
		Order("id DESC").
		Offset(filter.Pagination.Offset()).
		Limit(filter.Pagination.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, platformerrors.FromGorm(ctx, err, "failed to list app versions", "version-repo-list-001")
	}
	return functional.Map(rows, versionToDomain), total, nil
}

// applyFilter matches each text filter against its own column.
func (repo *AppVersionGormRepository) applyFilter(db *gorm.DB, filter app.VersionFilter) *gorm.DB {
	if filter.VersionName != "" {
		db = db.Where("version_name ILIKE ?", stringutils.ContainsPattern(filter.VersionName))
	}
	if filter.VersionCode != "" {
		db = db.Where("version_code ILIKE ?", stringutils.ContainsPattern(filter.VersionCode))
	}
	if filter.AppID != nil {
		db = db.Where("app_id = ?", *filter.AppID)
	}
	return db
}

func versionToDomain(row entities.AppVersion) *app.Version {
	return &app.Version{
		ID:           row.ID,
		AppID:        row.AppID,
		VersionCode:  row.VersionCode,
		VersionName:  row.VersionName,
		ReleaseNotes: row.ReleaseNotes,
		APKFileID:    row.APKFileID,
		PublishedAt:  row.PublishedAt,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

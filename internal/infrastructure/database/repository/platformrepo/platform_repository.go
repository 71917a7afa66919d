package platformrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"apkraft/internal/domain/platform"
	"apkraft/internal/infrastructure/database/entities"
	"apkraft/internal/infrastructure/database/transaction"
	"apkraft/internal/utils/functional"
	"apkraft/internal/utils/platformerrors"
)

// PlatformGormRepository implements platform.Repository using GORM
type PlatformGormRepository struct {
	db *transaction.Database
}

var _ platform.Repository = (*PlatformGormRepository)(nil)

func NewPlatformGormRepository(db *transaction.Database) *PlatformGormRepository {
	return &PlatformGormRepository{db: db}
}

func (repo *PlatformGormRepository) List(ctx context.Context) ([]*platform.Platform, error) {
	var rows []entities.Platform
	if err := repo.db.GetTx(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, platformerrors.FromGorm(ctx, err, "failed to list platforms", "platform-repo-list-001")
	}
	return functional.Map(rows, toDomain), nil
}

func (repo *PlatformGormRepository) FindByID(ctx context.Context, id int64) (*platform.Platform, error) {
	var row entities.Platform
	if err := repo.db.GetTx(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, platformerrors.FromGorm(ctx, err, "platform not found", "platform-repo-find-001")
	}
	return toDomain(row), nil
}

func (repo *PlatformGormRepository) FindByCode(ctx context.Context, code int) (*platform.Platform, error) {
	var rows []entities.Platform
	if err := repo.db.GetTx(ctx).Where("code = ?", code).Limit(1).Find(&rows).Error; err != nil {
		return nil, platformerrors.FromGorm(ctx, err, "failed to find platform by code", "platform-repo-code-001")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toDomain(rows[0]), nil
}

func (repo *PlatformGormRepository) Create(ctx context.Context, p *platform.Platform) error {
	row := entities.Platform{
		Name:    p.Name,
		Code:    p.Code,
		IconURL: p.IconURL,
	}
	if err := repo.db.GetTx(ctx).Create(&row).Error; err != nil {
		return platformerrors.FromGorm(ctx, err, "failed to create platform", "platform-repo-create-001")
	}
	p.ID = row.ID
	p.CreatedAt = row.CreatedAt
	p.UpdatedAt = row.UpdatedAt
	return nil
}

func (repo *PlatformGormRepository) Update(ctx context.Context, id int64, patch platform.Patch) (*platform.Platform, error) {
	updates := map[string]any{}
	if v, ok := patch.Name.Get(); ok {
		updates["name"] = v
	}
	if v, ok := patch.Code.Get(); ok {
		updates["code"] = v
	}
	if v, ok := patch.IconURL.Get(); ok {
		updates["icon_url"] = v
	}
	updates["updated_at"] = patch.UpdatedAt.OrElse(time.Now().UTC())

	err := repo.db.GetTx(ctx).Model(&entities.Platform{}).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		return nil, platformerrors.FromGorm(ctx, err, "failed to update platform", "platform-repo-update-001")
	}
	return repo.FindByID(ctx, id)
}

func (repo *PlatformGormRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.GetTx(ctx).Delete(&entities.Platform{}, id)
	if result.Error != nil {
		return platformerrors.FromGorm(ctx, result.Error, "failed to delete platform", "platform-repo-delete-001")
	}
	if result.RowsAffected == 0 {
		return platformerrors.FromGorm(ctx, gorm.ErrRecordNotFound, "platform not found", "platform-repo-delete-002")
	}
	return nil
}

func toDomain(row entities.Platform) *platform.Platform {
	return &platform.Platform{
		ID:        row.ID,
		Name:      row.Name,
		Code:      row.Code,
		IconURL:   row.IconURL,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

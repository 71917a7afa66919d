package filerepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"apkraft/internal/domain/file"
	"apkraft/internal/infrastructure/database/entities"
	"apkraft/internal/infrastructure/database/transaction"
	"apkraft/internal/utils/functional"
	"apkraft/internal/utils/platformerrors"
	"apkraft/internal/utils/stringutils"
)

// FileGormRepository implements file.Repository using GORM
type FileGormRepository struct {
	db *transaction.Database
}

var _ file.Repository = (*FileGormRepository)(nil)

func NewFileGormRepository(db *transaction.Database) *FileGormRepository {
	return &FileGormRepository{db: db}
}

func (repo *FileGormRepository) Create(ctx context.Context, f *file.File) error {
	row := entities.File{
		Name:           f.Name,
		Mime:           f.Mime,
		SizeBytes:      f.SizeBytes,
		Path:           f.Path,
		ChecksumSHA256: f.ChecksumSHA256,
		Description:    f.Description,
	}
	if err := repo.db.GetTx(ctx).Create(&row).Error; err != nil {
		return platformerrors.FromGorm(ctx, err, "failed to create file", "file-repo-create-001")
	}
	f.ID = row.ID
	f.CreatedAt = row.CreatedAt
	f.UpdatedAt = row.UpdatedAt
	return nil
}

func (repo *FileGormRepository) FindByID(ctx context.Context, id int64) (*file.File, error) {
	var row entities.File
	if err := repo.db.GetTx(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, platformerrors.FromGorm(ctx, err, "file not found", "file-repo-find-001")
	}
	return toDomain(row), nil
}

func (repo *FileGormRepository) FindByPath(ctx context.Context, path string) (*file.File, error) {
	var row entities.File
	if err := repo.db.GetTx(ctx).Where("path = ?", path).First(&row).Error; err != nil {
		return nil, platformerrors.FromGorm(ctx, err, "file not found", "file-repo-path-001")
	}
	return toDomain(row), nil
}

func (repo *FileGormRepository) Update(ctx context.Context, id int64, patch file.Patch) (*file.File, error) {
	updates := map[string]any{
		"updated_at": patch.UpdatedAt.OrElse(time.Now().UTC()),
	}
	if v, ok := patch.Description.Get(); ok {
		updates["description"] = v
	}
	err := repo.db.GetTx(ctx).Model(&entities.File{}).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		return nil, platformerrors.FromGorm(ctx, err, "failed to update file", "file-repo-update-001")
	}
	return repo.FindByID(ctx, id)
}

func (repo *FileGormRepository) Delete(ctx context.Context, id int64) error {
	if err := repo.db.GetTx(ctx).Delete(&entities.File{}, id).Error; err != nil {
		return platformerrors.FromGorm(ctx, err, "failed to delete file", "file-repo-delete-001")
	}
	return nil
}

func (repo *FileGormRepository) List(ctx context.Context, filter file.Filter) ([]*file.File, int64, error) {
	var total int64
	if err := repo.applyFilter(repo.db.GetTx(ctx).Model(&entities.File{}), filter).Count(&total).Error; err != nil {
		return nil, 0, platformerrors.FromGorm(ctx, err, "failed to count files", "file-repo-count-001")
	}
	if total == 0 {
		return []*file.File{}, 0, nil
	}

	var rows []entities.File
	err := repo.applyFilter(repo.db.GetTx(ctx), filter).
		Order("id DESC").
		Offset(filter.Pagination.Offset()).
		Limit(filter.Pagination.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, platformerrors.FromGorm(ctx, err, "failed to list files", "file-repo-list-001")
	}
	return functional.Map(rows, toDomain), total, nil
}

func (repo *FileGormRepository) applyFilter(db *gorm.DB, filter file.Filter) *gorm.DB {
	if filter.Name != "" {
		db = db.Where("name ILIKE ?", stringutils.ContainsPattern(filter.Name))
	}
	if filter.Mime != "" {
		db = db.Where("mime ILIKE ?", stringutils.ContainsPattern(filter.Mime))
	}
	return db
}

func toDomain(row entities.File) *file.File {
	return &file.File{
		ID:             row.ID,
		Name:           row.Name,
		Mime:           row.Mime,
		SizeBytes:      row.SizeBytes,
		Path:           row.Path,
		ChecksumSHA256: row.ChecksumSHA256,
		Description:    row.Description,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

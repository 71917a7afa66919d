package platformrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apkraft/internal/domain/platform"
	"apkraft/internal/domain/query"
	"apkraft/internal/infrastructure/database"
	"apkraft/internal/infrastructure/database/repository/platformrepo"
	"apkraft/internal/infrastructure/database/transaction"
	"apkraft/internal/utils/platformerrors"
)

// pgError mimics the shape of a postgres driver error so gorm's translator can read its code.
type pgError struct {
	Code    string
	Message string
}

func (e *pgError) Error() string { return e.Message }

func newRepository(t *testing.T) (*platformrepo.PlatformGormRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := database.OpenWithConn(conn)
	require.NoError(t, err)
	return platformrepo.NewPlatformGormRepository(transaction.NewDatabase(db)), mock
}

func TestPlatformRepository_FindByIDNotFound(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectQuery(`SELECT \* FROM "platforms" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code"}))

	_, err := repo.FindByID(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlatformRepository_FindByCodeAbsent(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectQuery(`SELECT \* FROM "platforms" WHERE code = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code"}))

	p, err := repo.FindByCode(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlatformRepository_Create(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "platforms"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	p := &platform.Platform{Name: "Android", Code: 1}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(3), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlatformRepository_CreateDuplicateCode(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "platforms"`).
		WillReturnError(&pgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &platform.Platform{Name: "Android", Code: 1})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlatformRepository_UpdateUsesExplicitTimestamp(t *testing.T) {
	repo, mock := newRepository(t)
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "platforms" SET`).
		WithArgs("iOS", stamp, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "platforms" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "updated_at"}).AddRow(2, "iOS", 2, stamp))

	p, err := repo.Update(context.Background(), 2, platform.Patch{
		Name:      query.Some("iOS"),
		UpdatedAt: query.Some(stamp),
	})
	require.NoError(t, err)
	assert.Equal(t, "iOS", p.Name)
	assert.Equal(t, stamp, p.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

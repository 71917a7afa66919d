package platformerrors

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgStringDataRightTruncation is the SQLSTATE for a value longer than its column. gorm does not translate it.
const pgStringDataRightTruncation = "22001"

// FromGorm classifies a gorm error: missing rows become NOT_FOUND, unique, foreign key, check and
// length violations VALIDATION, anything else DATABASE_ERROR. It requires gorm's TranslateError option.
func FromGorm(ctx context.Context, err error, message, code string) *PlatformError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NewError(ctx, LayerRepository, ErrorTypeNotFound, message, err, code)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return NewError(ctx, LayerRepository, ErrorTypeValidation, message, err, code)
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return NewError(ctx, LayerRepository, ErrorTypeValidation, message, err, code)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		fields := map[string]any{"sql_state": pgErr.Code}
		if pgErr.ColumnName != "" {
			fields["column"] = pgErr.ColumnName
		}
		if pgErr.Code == pgStringDataRightTruncation {
			return NewErrorWithContext(ctx, LayerRepository, ErrorTypeValidation, message, err, code, fields)
		}
		return NewErrorWithContext(ctx, LayerRepository, ErrorTypeDatabaseError, message, err, code, fields)
	}
	return NewError(ctx, LayerRepository, ErrorTypeDatabaseError, message, err, code)
}

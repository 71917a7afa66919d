package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFromGorm(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")

	tests := []struct {
		name     string
		err      error
		wantType ErrorType
	}{
		{name: "missing row", err: gorm.ErrRecordNotFound, wantType: ErrorTypeNotFound},
		{name: "duplicate", err: gorm.ErrDuplicatedKey, wantType: ErrorTypeValidation},
		{name: "foreign key", err: gorm.ErrForeignKeyViolated, wantType: ErrorTypeValidation},
		{name: "value too long", err: &pgconn.PgError{Code: "22001", ColumnName: "version_name"}, wantType: ErrorTypeValidation},
		{name: "wrapped value too long", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "22001"}), wantType: ErrorTypeValidation},
		{name: "other postgres error", err: &pgconn.PgError{Code: "53300"}, wantType: ErrorTypeDatabaseError},
		{name: "connection error", err: errors.New("connection refused"), wantType: ErrorTypeDatabaseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := FromGorm(ctx, tt.err, "failed", "repo-001")
			require.NotNil(t, perr)
			assert.Equal(t, tt.wantType, perr.Type)
			assert.Equal(t, LayerRepository, perr.Layer)
			assert.Equal(t, "req-1", perr.RequestID)
			assert.ErrorIs(t, perr, tt.err)
		})
	}
}

func TestFromGorm_ValueTooLongIsClientError(t *testing.T) {
	perr := FromGorm(context.Background(), &pgconn.PgError{Code: "22001", ColumnName: "bundle_id"}, "failed to create app", "app-repo-create-001")

	assert.Equal(t, http.StatusBadRequest, ErrorTypeToHTTPStatus(perr.Type))
	assert.Equal(t, "22001", perr.Context["sql_state"])
	assert.Equal(t, "bundle_id", perr.Context["column"])
}

func TestFromGorm_Nil(t *testing.T) {
	assert.Nil(t, FromGorm(context.Background(), nil, "failed", "repo-001"))
}

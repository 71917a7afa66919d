package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "postgres://apkraft@localhost:5432/apkraft?sslmode=disable")
	t.Setenv("APKRAFT_API_URL", " https://apk.example.com/ ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5150", cfg.Addr())
	assert.True(t, cfg.IsLocalStorage())
	assert.Equal(t, "https://apk.example.com", cfg.APIURL)
	assert.Equal(t, int64(200*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, time.Hour, cfg.S3PresignTTL)
	assert.True(t, cfg.DBAutoMigrate)
}

func TestLoad_RequiresDSN(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_StorageBackend(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "postgres://localhost/apkraft")

	t.Run("s3 needs a bucket", func(t *testing.T) {
		t.Setenv("APKRAFT_STORAGE_BACKEND", "s3")
		t.Setenv("APKRAFT_S3_BUCKET", "  ")
		_, err := Load()
		assert.ErrorContains(t, err, "APKRAFT_S3_BUCKET")
	})

	t.Run("s3 with bucket", func(t *testing.T) {
		t.Setenv("APKRAFT_STORAGE_BACKEND", "S3")
		t.Setenv("APKRAFT_S3_BUCKET", "apks")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsS3Storage())
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("APKRAFT_STORAGE_BACKEND", "ftp")
		_, err := Load()
		assert.Error(t, err)
	})
}

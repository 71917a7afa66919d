package file_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apkraft/internal/config"
	"apkraft/internal/domain/file"
	"apkraft/internal/utils/platformerrors"
)

type memoryFileRepository struct {
	rows      map[int64]*file.File
	nextID    int64
	createErr error
}

func newMemoryFileRepository() *memoryFileRepository {
	return &memoryFileRepository{rows: make(map[int64]*file.File)}
}

func (m *memoryFileRepository) Create(ctx context.Context, f *file.File) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	f.ID = m.nextID
	cp := *f
	m.rows[f.ID] = &cp
	return nil
}

func (m *memoryFileRepository) FindByID(ctx context.Context, id int64) (*file.File, error) {
	f, ok := m.rows[id]
	if !ok {
		return nil, platformerrors.NotFound(ctx, platformerrors.LayerRepository, "file not found", "test")
	}
	cp := *f
	return &cp, nil
}

func (m *memoryFileRepository) FindByPath(ctx context.Context, path string) (*file.File, error) {
	for _, f := range m.rows {
		if f.Path == path {
			cp := *f
			return &cp, nil
		}
	}
	return nil, platformerrors.NotFound(ctx, platformerrors.LayerRepository, "file not found", "test")
}

func (m *memoryFileRepository) Update(ctx context.Context, id int64, patch file.Patch) (*file.File, error) {
	f := m.rows[id]
	if v, ok := patch.Description.Get(); ok {
		f.Description = v
	}
	cp := *f
	return &cp, nil
}

func (m *memoryFileRepository) Delete(ctx context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func (m *memoryFileRepository) List(ctx context.Context, filter file.Filter) ([]*file.File, int64, error) {
	var out []*file.File
	for _, f := range m.rows {
		out = append(out, f)
	}
	return out, int64(len(out)), nil
}

type memoryStorage struct {
	blobs     map[string][]byte
	uploadErr error
	deleted   []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{blobs: make(map[string][]byte)}
}

func (m *memoryStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.blobs[key] = data
	return nil
}

func (m *memoryStorage) Download(ctx context.Context, key string) (*file.Object, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, file.ErrObjectNotFound
	}
	return &file.Object{Body: io.NopCloser(bytes.NewReader(data)), Size: int64(len(data))}, nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.blobs, key)
	return nil
}

func (m *memoryStorage) Health(ctx context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		APIURL:         "https://apk.example.com",
		MaxUploadBytes: 1024,
	}
}

func newFileService() (*file.Service, *memoryFileRepository, *memoryStorage) {
	repo := newMemoryFileRepository()
	storage := newMemoryStorage()
	return file.NewService(testConfig(), repo, storage, zerolog.Nop()), repo, storage
}

func TestService_UploadRecordsChecksumAndSize(t *testing.T) {
	svc, repo, storage := newFileService()
	payload := []byte("apk payload bytes")
	desc := "release build"

	f, err := svc.Upload(context.Background(), file.UploadInput{
		Filename:    "app-release.apk",
		ContentType: "application/vnd.android.package-archive",
		Body:        bytes.NewReader(payload),
		Description: &desc,
	})
	require.NoError(t, err)

	sum := sha256.Sum256(payload)
	assert.Equal(t, hex.EncodeToString(sum[:]), f.ChecksumSHA256)
	assert.Equal(t, int64(len(payload)), f.SizeBytes)
	assert.Equal(t, "app-release.apk", f.Name)
	assert.NotEqual(t, "app-release.apk", f.Path)
	assert.Equal(t, payload, storage.blobs[f.Path])
	assert.Len(t, repo.rows, 1)
	require.NotNil(t, f.Description)
	assert.Equal(t, desc, *f.Description)
}

func TestService_UploadSniffsGenericContentType(t *testing.T) {
	svc, _, _ := newFileService()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	f, err := svc.Upload(context.Background(), file.UploadInput{
		Filename:    "icon.png",
		ContentType: "application/octet-stream",
		Body:        bytes.NewReader(png),
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.Mime)
}

func TestService_UploadValidation(t *testing.T) {
	svc, repo, storage := newFileService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input file.UploadInput
	}{
		{name: "missing filename", input: file.UploadInput{ContentType: "text/plain", Body: strings.NewReader("x")}},
		{name: "missing content type", input: file.UploadInput{Filename: "a.txt", Body: strings.NewReader("x")}},
		{name: "too large", input: file.UploadInput{Filename: "a.bin", ContentType: "text/plain", Body: bytes.NewReader(make([]byte, 1025))}},
		{name: "filename too long", input: file.UploadInput{Filename: strings.Repeat("é", 252) + ".apk", ContentType: "text/plain", Body: strings.NewReader("x")}},
		{name: "content type too long", input: file.UploadInput{Filename: "a.txt", ContentType: "text/" + strings.Repeat("x", 251), Body: strings.NewReader("x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, tt.input)
			require.Error(t, err)
			assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
		})
	}
	assert.Empty(t, repo.rows)
	assert.Empty(t, storage.blobs)
	assert.Empty(t, storage.deleted)
}

func TestService_UploadAcceptsNameAtColumnLimit(t *testing.T) {
	svc, repo, _ := newFileService()
	name := strings.Repeat("é", 251) + ".apk"

	f, err := svc.Upload(context.Background(), file.UploadInput{Filename: name, ContentType: "text/plain", Body: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, name, f.Name)
	assert.Len(t, repo.rows, 1)
}

func TestService_UploadStorageFailureCreatesNoRow(t *testing.T) {
	svc, repo, storage := newFileService()
	storage.uploadErr = errors.New("bucket unavailable")

	_, err := svc.Upload(context.Background(), file.UploadInput{
		Filename:    "a.apk",
		ContentType: "application/vnd.android.package-archive",
		Body:        strings.NewReader("bytes"),
	})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
	assert.Empty(t, repo.rows)
}

func TestService_UploadInsertFailureRemovesBlob(t *testing.T) {
	svc, repo, storage := newFileService()
	repo.createErr = platformerrors.NewError(context.Background(), platformerrors.LayerRepository,
		platformerrors.ErrorTypeDatabaseError, "insert failed", errors.New("connection reset"), "test")

	_, err := svc.Upload(context.Background(), file.UploadInput{
		Filename:    "a.apk",
		ContentType: "application/vnd.android.package-archive",
		Body:        strings.NewReader("bytes"),
	})
	require.Error(t, err)
	assert.Empty(t, storage.blobs)
	assert.Len(t, storage.deleted, 1)
}

func TestService_OpenReturnsStoredBytes(t *testing.T) {
	svc, _, _ := newFileService()
	ctx := context.Background()
	payload := []byte("exact bytes")

	uploaded, err := svc.Upload(ctx, file.UploadInput{Filename: "a.bin", ContentType: "text/plain", Body: bytes.NewReader(payload)})
	require.NoError(t, err)

	f, obj, err := svc.Open(ctx, uploaded.Path)
	require.NoError(t, err)
	defer obj.Body.Close()

	got, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, int64(len(payload)), obj.Size)
	assert.Equal(t, "a.bin", f.Name)
}

func TestService_OpenUnknownKey(t *testing.T) {
	svc, _, _ := newFileService()

	_, _, err := svc.Open(context.Background(), "does-not-exist")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestService_DownloadURLUsesStaticRoute(t *testing.T) {
	svc, _, _ := newFileService()

	url, err := svc.DownloadURL(context.Background(), &file.File{Path: "0b7c0c8e-5a1b-4c44-9a55-2f1b7f0f0f0f"})
	require.NoError(t, err)
	assert.Equal(t, "https://apk.example.com/api/files/static/0b7c0c8e-5a1b-4c44-9a55-2f1b7f0f0f0f", url)
}

func TestService_DeleteRemovesRowAndBlob(t *testing.T) {
	svc, repo, storage := newFileService()
	ctx := context.Background()

	f, err := svc.Upload(ctx, file.UploadInput{Filename: "a.bin", ContentType: "text/plain", Body: strings.NewReader("x")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, f.ID))
	assert.Empty(t, repo.rows)
	assert.Empty(t, storage.blobs)
}

func TestService_UpdateDescriptionKeepsChecksum(t *testing.T) {
	svc, _, _ := newFileService()
	ctx := context.Background()

	f, err := svc.Upload(ctx, file.UploadInput{Filename: "a.bin", ContentType: "text/plain", Body: strings.NewReader("x")})
	require.NoError(t, err)

	desc := "icon"
	updated, err := svc.UpdateDescription(ctx, f.ID, &desc)
	require.NoError(t, err)
	assert.Equal(t, "icon", *updated.Description)
	assert.Equal(t, f.ChecksumSHA256, updated.ChecksumSHA256)
}

package file

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"apkraft/internal/config"
	"apkraft/internal/domain/query"
	"apkraft/internal/utils/platformerrors"
)

const genericContentType = "application/octet-stream"

// MaxNameLength bounds the stored file name and mime columns.
const MaxNameLength = 255

// StaticRoutePrefix is where stored binaries are served by key.
const StaticRoutePrefix = "/api/files/static/"

// Repository defines persistence operations for file metadata.
type Repository interface {
	Create(ctx context.Context, f *File) error
	FindByID(ctx context.Context, id int64) (*File, error)
	FindByPath(ctx context.Context, path string) (*File, error)
	Update(ctx context.Context, id int64, patch Patch) (*File, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter) ([]*File, int64, error)
}

// Storage defines blob storage operations.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
	Health(ctx context.Context) error
}

// Presigner is implemented by backends that can hand out temporary direct download URLs.
type Presigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Service orchestrates uploads, downloads and file metadata.
type Service struct {
	cfg     *config.Config
	repo    Repository
	storage Storage
	log     zerolog.Logger
	newKey  func() string
}

func NewService(cfg *config.Config, repo Repository, storage Storage, log zerolog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		repo:    repo,
		storage: storage,
		log:     log.With().Str("component", "file-service").Logger(),
		newKey:  uuid.NewString,
	}
}

// Upload stores the bytes under a fresh key and then records the metadata row.
// A failed storage write leaves no row behind; a failed insert triggers a best-effort blob delete.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*File, error) {
	name := strings.TrimSpace(in.Filename)
	if name == "" {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain, "empty file name", "file-upload-name-001")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain,
			fmt.Sprintf("file name exceeds %d characters", MaxNameLength), "file-upload-name-002")
	}
	if strings.TrimSpace(in.ContentType) == "" {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain, "content type is null", "file-upload-mime-001")
	}
	if in.Body == nil {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain, "file is required", "file-upload-body-001")
	}

	data, err := io.ReadAll(io.LimitReader(in.Body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"failed to read uploaded file", err, "file-upload-read-001")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain,
			fmt.Sprintf("file exceeds max size of %d bytes", s.cfg.MaxUploadBytes), "file-upload-size-001")
	}

	contentType := resolveContentType(in.ContentType, data)
	if utf8.RuneCountInString(contentType) > MaxNameLength {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain,
			fmt.Sprintf("content type exceeds %d characters", MaxNameLength), "file-upload-mime-002")
	}
	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])
	key := s.newKey()

	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"failed to store file", err, "file-upload-storage-001")
	}

	f := &File{
		Name:           name,
		Mime:           contentType,
		SizeBytes:      int64(len(data)),
		Path:           key,
		ChecksumSHA256: checksum,
		Description:    in.Description,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.log.Warn().Err(delErr).Str("key", key).Msg("failed to remove blob after insert failure")
		}
		return nil, err
	}

	s.log.Info().
		Int64("file_id", f.ID).
		Str("key", key).
		Int64("bytes", f.SizeBytes).
		Str("mime", f.Mime).
		Msg("file uploaded")
	return f, nil
}

// Open resolves a storage key to its metadata row and the stored bytes.
// The caller must close the returned object's body.
func (s *Service) Open(ctx context.Context, key string) (*File, *Object, error) {
	f, err := s.repo.FindByPath(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	obj, err := s.storage.Download(ctx, f.Path)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"file content not found", err, "file-open-blob-001")
		}
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"failed to read file from storage", err, "file-open-storage-001")
	}
	if obj.Size < 0 {
		obj.Size = f.SizeBytes
	}
	return f, obj, nil
}

// DownloadURL returns where clients can fetch the file: a presigned storage URL when enabled
// and supported, otherwise the static route of this API.
func (s *Service) DownloadURL(ctx context.Context, f *File) (string, error) {
	if presigner, ok := s.storage.(Presigner); ok && s.cfg.PresignFiles {
		u, err := presigner.PresignGet(ctx, f.Path, s.cfg.S3PresignTTL)
		if err != nil {
			return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
				"failed to presign file url", err, "file-url-presign-001")
		}
		return u, nil
	}
	return s.cfg.APIURL + StaticRoutePrefix + url.PathEscape(f.Path), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*File, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter Filter) (query.Page[*File], error) {
	filter.Pagination = filter.Pagination.Normalize()
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return query.Page[*File]{}, err
	}
	return query.NewPage(items, filter.Pagination, total), nil
}

// UpdateDescription changes the only mutable metadata field. Bytes and checksum never change.
func (s *Service) UpdateDescription(ctx context.Context, id int64, description *string) (*File, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, Patch{Description: query.Some(description)})
}

// Delete removes the row; the blob is removed afterwards on a best-effort basis.
func (s *Service) Delete(ctx context.Context, id int64) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, f.Path); err != nil && !errors.Is(err, ErrObjectNotFound) {
		s.log.Warn().Err(err).Str("key", f.Path).Msg("failed to remove blob of deleted file")
	}
	return nil
}

// Health reports whether the storage backend is reachable.
func (s *Service) Health(ctx context.Context) error {
	return s.storage.Health(ctx)
}

// resolveContentType keeps the declared type unless it is the generic binary type,
// in which case the content is sniffed (APKs resolve to application/vnd.android.package-archive).
func resolveContentType(declared string, data []byte) string {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return declared
	}
	if mediaType != genericContentType || len(data) == 0 {
		return declared
	}
	return mimetype.Detect(data).String()
}

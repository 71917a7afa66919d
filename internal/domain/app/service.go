package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"apkraft/internal/domain/file"
	"apkraft/internal/domain/platform"
	"apkraft/internal/domain/query"
	"apkraft/internal/utils/platformerrors"
)

// Repository defines persistence operations for apps.
type Repository interface {
	Create(ctx context.Context, a *App) error
	FindByID(ctx context.Context, id int64) (*App, error)
	// FindByBundleID returns nil, nil when no app uses the bundle id.
	FindByBundleID(ctx context.Context, bundleID string) (*App, error)
	Update(ctx context.Context, id int64, patch Patch) (*App, error)
	// ClearCurrentVersion sets the app's current version to none.
	ClearCurrentVersion(ctx context.Context, appID int64) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter) ([]*App, int64, error)
}

// PlatformLookup resolves platform references.
type PlatformLookup interface {
	Get(ctx context.Context, id int64) (*platform.Platform, error)
}

// FileResolver resolves file references and their public download location.
type FileResolver interface {
	Get(ctx context.Context, id int64) (*file.File, error)
	DownloadURL(ctx context.Context, f *file.File) (string, error)
}

// Service implements the app catalog and the update check.
type Service struct {
	repo      Repository
	versions  VersionRepository
	platforms PlatformLookup
	files     FileResolver
	log       zerolog.Logger
}

func NewService(repo Repository, versions VersionRepository, platforms PlatformLookup, files FileResolver, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		versions:  versions,
		platforms: platforms,
		files:     files,
		log:       log.With().Str("component", "app-service").Logger(),
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*App, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter Filter) (query.Page[*App], error) {
	filter.Pagination = filter.Pagination.Normalize()
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return query.Page[*App]{}, err
	}
	return query.NewPage(items, filter.Pagination, total), nil
}

// Create registers a new app. A freshly created app has no versions, so naming a current version is rejected.
func (s *Service) Create(ctx context.Context, in CreateApp) (*App, error) {
	if in.CurrentVersionID != nil {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain,
			"a new app cannot reference a current version", "app-create-version-001")
	}
	if err := s.ensureBundleFree(ctx, in.BundleID, 0); err != nil {
		return nil, err
	}
	if err := s.ensurePlatform(ctx, in.PlatformID); err != nil {
		return nil, err
	}
	if err := s.ensureIconFile(ctx, in.IconFileID); err != nil {
		return nil, err
	}

	a := &App{
		Name:        in.Name,
		BundleID:    in.BundleID,
		IconFileID:  in.IconFileID,
		Description: in.Description,
		PlatformID:  in.PlatformID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info().Int64("app_id", a.ID).Str("bundle_id", a.BundleID).Msg("app created")
	return a, nil
}

// Replace overwrites every mutable column.
func (s *Service) Replace(ctx context.Context, id int64, in CreateApp) (*App, error) {
	return s.Patch(ctx, id, Patch{
		Name:             query.Some(in.Name),
		BundleID:         query.Some(in.BundleID),
		IconFileID:       query.Some(in.IconFileID),
		CurrentVersionID: query.Some(in.CurrentVersionID),
		Description:      query.Some(in.Description),
		PlatformID:       query.Some(in.PlatformID),
	})
}

func (s *Service) Patch(ctx context.Context, id int64, patch Patch) (*App, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if bundleID, ok := patch.BundleID.Get(); ok {
		if err := s.ensureBundleFree(ctx, bundleID, id); err != nil {
			return nil, err
		}
	}
	if platformID, ok := patch.PlatformID.Get(); ok {
		if err := s.ensurePlatform(ctx, platformID); err != nil {
			return nil, err
		}
	}
	if iconID, ok := patch.IconFileID.Get(); ok {
		if err := s.ensureIconFile(ctx, iconID); err != nil {
			return nil, err
		}
	}
	if versionID, ok := patch.CurrentVersionID.Get(); ok && versionID != nil {
		if err := s.ensureOwnVersion(ctx, id, *versionID); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// CheckUpdate compares the client revision with the app's current version by exact string equality.
// Apps without a current version never report an update.
func (s *Service) CheckUpdate(ctx context.Context, appID int64, rev Revision) (*UpdateInfo, error) {
	a, err := s.repo.FindByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if a.CurrentVersionID == nil {
		return &UpdateInfo{}, nil
	}

	current, err := s.versions.FindByID(ctx, *a.CurrentVersionID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return &UpdateInfo{}, nil
		}
		return nil, err
	}

	if rev.VersionName == current.VersionName && strconv.FormatUint(rev.BuildNumber, 10) == current.VersionCode {
		return &UpdateInfo{}, nil
	}

	apk, err := s.files.Get(ctx, current.APKFileID)
	if err != nil {
		return nil, err
	}
	fileURL, err := s.files.DownloadURL(ctx, apk)
	if err != nil {
		return nil, err
	}

	return &UpdateInfo{
		UpdateAvailable: true,
		LatestVersion: &LatestVersionInfo{
			ID:          current.ID,
			Name:        current.VersionName,
			BuildNumber: current.VersionCode,
			FileURL:     fileURL,
		},
	}, nil
}

func (s *Service) ensureBundleFree(ctx context.Context, bundleID string, selfID int64) error {
	existing, err := s.repo.FindByBundleID(ctx, bundleID)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return platformerrors.Validation(ctx, platformerrors.LayerDomain,
			fmt.Sprintf("app with bundle_id %q already exists", bundleID), "app-bundle-duplicate-001")
	}
	return nil
}

func (s *Service) ensurePlatform(ctx context.Context, platformID int64) error {
	if _, err := s.platforms.Get(ctx, platformID); err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return platformerrors.Validation(ctx, platformerrors.LayerDomain,
				fmt.Sprintf("platform %d does not exist", platformID), "app-platform-missing-001")
		}
		return err
	}
	return nil
}

func (s *Service) ensureIconFile(ctx context.Context, fileID *int64) error {
	if fileID == nil {
		return nil
	}
	if _, err := s.files.Get(ctx, *fileID); err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return platformerrors.Validation(ctx, platformerrors.LayerDomain,
				fmt.Sprintf("icon file %d does not exist", *fileID), "app-icon-missing-001")
		}
		return err
	}
	return nil
}

func (s *Service) ensureOwnVersion(ctx context.Context, appID, versionID int64) error {
	v, err := s.versions.FindByID(ctx, versionID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return platformerrors.Validation(ctx, platformerrors.LayerDomain,
				fmt.Sprintf("version %d does not exist", versionID), "app-version-missing-001")
		}
		return err
	}
	if v.AppID != appID {
		return platformerrors.Validation(ctx, platformerrors.LayerDomain,
			fmt.Sprintf("version %d belongs to another app", versionID), "app-version-foreign-001")
	}
	return nil
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"apkraft/internal/domain/query"
	"apkraft/internal/utils/platformerrors"
)

// VersionRepository defines persistence operations for app versions.
type VersionRepository interface {
	Create(ctx context.Context, v *Version) error
	FindByID(ctx context.Context, id int64) (*Version, error)
	// FindByTriple returns nil, nil when the (app, name, code) combination is free.
	FindByTriple(ctx context.Context, appID int64, versionName, versionCode string) (*Version, error)
	Update(ctx context.Context, id int64, patch VersionPatch) (*Version, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter VersionFilter) ([]*Version, int64, error)
}

// VersionService manages releases and keeps the app's current version pointer in step with publication.
type VersionService struct {
	tx    query.Transactor
	repo  VersionRepository
	apps  Repository
	files FileResolver
	log   zerolog.Logger
	now   func() time.Time
}

func NewVersionService(tx query.Transactor, repo VersionRepository, apps Repository, files FileResolver, log zerolog.Logger) *VersionService {
	return &VersionService{
		tx:    tx,
		repo:  repo,
		apps:  apps,
		files: files,
		log:   log.With().Str("component", "version-service").Logger(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *VersionService) Get(ctx context.Context, id int64) (*Version, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *VersionService) List(ctx context.Context, filter VersionFilter) (query.Page[*Version], error) {
	filter.Pagination = filter.Pagination.Normalize()
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return query.Page[*Version]{}, err
	}
	return query.NewPage(items, filter.Pagination, total), nil
}

// Create inserts the version and, when asked to publish immediately, points the app at it.
// Both writes share one transaction.
func (s *VersionService) Create(ctx context.Context, in CreateVersion) (*Version, error) {
	if _, err := s.apps.FindByID(ctx, in.AppID); err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain,
				fmt.Sprintf("app %d does not exist", in.AppID), "version-app-missing-001")
		}
		return nil, err
	}
	if _, err := s.files.Get(ctx, in.APKFileID); err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain,
				fmt.Sprintf("apk file %d does not exist", in.APKFileID), "version-apk-missing-001")
		}
		return nil, err
	}

	v := &Version{
		AppID:        in.AppID,
		VersionCode:  in.VersionCode,
		VersionName:  in.VersionName,
		ReleaseNotes: in.ReleaseNotes,
		APKFileID:    in.APKFileID,
	}
	if in.PublishImmediately {
		now := s.now()
		v.PublishedAt = &now
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureTripleFree(ctx, in.AppID, in.VersionName, in.VersionCode, 0); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, v); err != nil {
			return err
		}
		if !in.PublishImmediately {
			return nil
		}
		versionID := v.ID
		_, err := s.apps.Update(ctx, in.AppID, Patch{CurrentVersionID: query.Some(&versionID)})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("version_id", v.ID).
		Int64("app_id", v.AppID).
		Str("version_name", v.VersionName).
		Str("version_code", v.VersionCode).
		Bool("published", in.PublishImmediately).
		Msg("app version created")
	return v, nil
}

// Publish toggles publication. Publishing makes the version current; unpublishing clears the
// app's pointer only if it still references this version, with no fallback to an older release.
func (s *VersionService) Publish(ctx context.Context, id int64, publish bool) (*Version, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated *Version
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if publish {
			now := s.now()
			updated, err = s.repo.Update(ctx, id, VersionPatch{PublishedAt: query.Some(&now)})
			if err != nil {
				return err
			}
			versionID := id
			_, err = s.apps.Update(ctx, v.AppID, Patch{CurrentVersionID: query.Some(&versionID)})
			return err
		}

		updated, err = s.repo.Update(ctx, id, VersionPatch{PublishedAt: query.Some[*time.Time](nil)})
		if err != nil {
			return err
		}
		return s.apps.ClearCurrentVersion(ctx, v.AppID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("version_id", id).Int64("app_id", v.AppID).Bool("publish", publish).Msg("app version publication changed")
	return updated, nil
}

// Patch edits version metadata. It never touches publication or the app's pointer.
func (s *VersionService) Patch(ctx context.Context, id int64, patch VersionPatch) (*Version, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.PublishedAt = query.Optional[*time.Time]{}

	name, nameSet := patch.VersionName.Get()
	code, codeSet := patch.VersionCode.Get()
	if nameSet || codeSet {
		if !nameSet {
			name = v.VersionName
		}
		if !codeSet {
			code = v.VersionCode
		}
		if err := s.ensureTripleFree(ctx, v.AppID, name, code, id); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *VersionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *VersionService) ensureTripleFree(ctx context.Context, appID int64, name, code string, selfID int64) error {
	existing, err := s.repo.FindByTriple(ctx, appID, name, code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return platformerrors.Validation(ctx, platformerrors.LayerDomain,
			fmt.Sprintf("version %s (%s) already exists for app %d", name, code, appID), "version-triple-duplicate-001")
	}
	return nil
}

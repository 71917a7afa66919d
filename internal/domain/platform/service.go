package platform

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"apkraft/internal/domain/query"
	"apkraft/internal/utils/platformerrors"
)

// Repository defines persistence operations for platforms.
type Repository interface {
	List(ctx context.Context) ([]*Platform, error)
	FindByID(ctx context.Context, id int64) (*Platform, error)
	// FindByCode returns nil, nil when no platform uses the code.
	FindByCode(ctx context.Context, code int) (*Platform, error)
	Create(ctx context.Context, p *Platform) error
	Update(ctx context.Context, id int64, patch Patch) (*Platform, error)
	Delete(ctx context.Context, id int64) error
}

// Service implements the platform catalog.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "platform-service").Logger(),
	}
}

func (s *Service) List(ctx context.Context) ([]*Platform, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Platform, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreatePlatform) (*Platform, error) {
	if err := s.ensureCodeFree(ctx, in.Code, 0); err != nil {
		return nil, err
	}
	p := &Platform{
		Name:    in.Name,
		Code:    in.Code,
		IconURL: in.IconURL,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info().Int64("platform_id", p.ID).Int("code", p.Code).Msg("platform created")
	return p, nil
}

// Replace overwrites every mutable column.
func (s *Service) Replace(ctx context.Context, id int64, in CreatePlatform) (*Platform, error) {
	return s.Patch(ctx, id, Patch{
		Name:    query.Some(in.Name),
		Code:    query.Some(in.Code),
		IconURL: query.Some(in.IconURL),
	})
}

func (s *Service) Patch(ctx context.Context, id int64, patch Patch) (*Platform, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if code, ok := patch.Code.Get(); ok {
		if err := s.ensureCodeFree(ctx, code, id); err != nil {
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

// EnsureSeeded inserts each platform whose code is not yet present.
func (s *Service) EnsureSeeded(ctx context.Context, seeds []CreatePlatform) error {
	for _, seed := range seeds {
		existing, err := s.repo.FindByCode(ctx, seed.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := s.Create(ctx, seed); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) ensureCodeFree(ctx context.Context, code int, selfID int64) error {
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return platformerrors.Validation(ctx, platformerrors.LayerDomain,
			fmt.Sprintf("platform with code %d already exists", code), "platform-code-duplicate-001")
	}
	return nil
}

package app

import (
	"context"
	"errors"
	"fmt"

	"apkraft/internal/domain/file"
	"apkraft/internal/domain/platform"
	"apkraft/internal/utils/platformerrors"
)

// memoryStore backs both fake repositories so a transaction can snapshot and restore them together.
type memoryStore struct {
	apps          map[int64]App
	versions      map[int64]Version
	nextAppID     int64
	nextVersionID int64

	failAppUpdate error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		apps:     make(map[int64]App),
		versions: make(map[int64]Version),
	}
}

func (s *memoryStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	apps := make(map[int64]App, len(s.apps))
	for k, v := range s.apps {
		apps[k] = v
	}
	versions := make(map[int64]Version, len(s.versions))
	for k, v := range s.versions {
		versions[k] = v
	}
	nextApp, nextVersion := s.nextAppID, s.nextVersionID

	if err := fn(ctx); err != nil {
		s.apps, s.versions = apps, versions
		s.nextAppID, s.nextVersionID = nextApp, nextVersion
		return err
	}
	return nil
}

type memoryAppRepository struct{ store *memoryStore }

func (r memoryAppRepository) Create(ctx context.Context, a *App) error {
	for _, existing := range r.store.apps {
		if existing.BundleID == a.BundleID {
			return platformerrors.Validation(ctx, platformerrors.LayerRepository, "duplicate bundle id", "test")
		}
	}
	r.store.nextAppID++
	a.ID = r.store.nextAppID
	r.store.apps[a.ID] = *a
	return nil
}

func (r memoryAppRepository) FindByID(ctx context.Context, id int64) (*App, error) {
	a, ok := r.store.apps[id]
	if !ok {
		return nil, platformerrors.NotFound(ctx, platformerrors.LayerRepository, "app not found", "test")
	}
	return &a, nil
}

func (r memoryAppRepository) FindByBundleID(ctx context.Context, bundleID string) (*App, error) {
	for _, a := range r.store.apps {
		if a.BundleID == bundleID {
			return &a, nil
		}
	}
	return nil, nil
}

func (r memoryAppRepository) Update(ctx context.Context, id int64, patch Patch) (*App, error) {
	if r.store.failAppUpdate != nil {
		return nil, r.store.failAppUpdate
	}
	a, ok := r.store.apps[id]
	if !ok {
		return nil, platformerrors.NotFound(ctx, platformerrors.LayerRepository, "app not found", "test")
	}
	if v, ok := patch.Name.Get(); ok {
		a.Name = v
	}
	if v, ok := patch.BundleID.Get(); ok {
		a.BundleID = v
	}
	if v, ok := patch.IconFileID.Get(); ok {
		a.IconFileID = v
	}
	if v, ok := patch.CurrentVersionID.Get(); ok {
		a.CurrentVersionID = v
	}
	if v, ok := patch.Description.Get(); ok {
		a.Description = v
	}
	if v, ok := patch.PlatformID.Get(); ok {
		a.PlatformID = v
	}
	r.store.apps[id] = a
	return &a, nil
}

func (r memoryAppRepository) ClearCurrentVersion(ctx context.Context, appID int64) error {
	a, ok := r.store.apps[appID]
	if !ok {
		return nil
	}
	a.CurrentVersionID = nil
	r.store.apps[appID] = a
	return nil
}

func (r memoryAppRepository) Delete(ctx context.Context, id int64) error {
	delete(r.store.apps, id)
	for vid, v := range r.store.versions {
		if v.AppID == id {
			delete(r.store.versions, vid)
		}
	}
	return nil
}

func (r memoryAppRepository) List(ctx context.Context, filter Filter) ([]*App, int64, error) {
	var out []*App
	for _, a := range r.store.apps {
		a := a
		out = append(out, &a)
	}
	return out, int64(len(out)), nil
}

type memoryVersionRepository struct{ store *memoryStore }

func (r memoryVersionRepository) Create(ctx context.Context, v *Version) error {
	r.store.nextVersionID++
	v.ID = r.store.nextVersionID
	r.store.versions[v.ID] = *v
	return nil
}

func (r memoryVersionRepository) FindByID(ctx context.Context, id int64) (*Version, error) {
	v, ok := r.store.versions[id]
	if !ok {
		return nil, platformerrors.NotFound(ctx, platformerrors.LayerRepository, "version not found", "test")
	}
	return &v, nil
}

func (r memoryVersionRepository) FindByTriple(ctx context.Context, appID int64, name, code string) (*Version, error) {
	for _, v := range r.store.versions {
		if v.AppID == appID && v.VersionName == name && v.VersionCode == code {
			return &v, nil
		}
	}
	return nil, nil
}

func (r memoryVersionRepository) Update(ctx context.Context, id int64, patch VersionPatch) (*Version, error) {
	v, ok := r.store.versions[id]
	if !ok {
		return nil, platformerrors.NotFound(ctx, platformerrors.LayerRepository, "version not found", "test")
	}
	if val, ok := patch.VersionCode.Get(); ok {
		v.VersionCode = val
	}
	if val, ok := patch.VersionName.Get(); ok {
		v.VersionName = val
	}
	if val, ok := patch.ReleaseNotes.Get(); ok {
		v.ReleaseNotes = val
	}
	if val, ok := patch.PublishedAt.Get(); ok {
		v.PublishedAt = val
	}
	r.store.versions[id] = v
	return &v, nil
}

func (r memoryVersionRepository) Delete(ctx context.Context, id int64) error {
	delete(r.store.versions, id)
	for aid, a := range r.store.apps {
		if a.CurrentVersionID != nil && *a.CurrentVersionID == id {
			a.CurrentVersionID = nil
			r.store.apps[aid] = a
		}
	}
	return nil
}

func (r memoryVersionRepository) List(ctx context.Context, filter VersionFilter) ([]*Version, int64, error) {
	var out []*Version
	for _, v := range r.store.versions {
		v := v
		out = append(out, &v)
	}
	return out, int64(len(out)), nil
}

type stubPlatforms map[int64]bool

func (p stubPlatforms) Get(ctx context.Context, id int64) (*platform.Platform, error) {
	if !p[id] {
		return nil, platformerrors.NotFound(ctx, platformerrors.LayerRepository, "platform not found", "test")
	}
	return &platform.Platform{ID: id, Name: "Android", Code: int(id)}, nil
}

type stubFiles map[int64]*file.File

func (f stubFiles) Get(ctx context.Context, id int64) (*file.File, error) {
	v, ok := f[id]
	if !ok {
		return nil, platformerrors.NotFound(ctx, platformerrors.LayerRepository, "file not found", "test")
	}
	return v, nil
}

func (f stubFiles) DownloadURL(ctx context.Context, fl *file.File) (string, error) {
	if fl.Path == "" {
		return "", errors.New("no path")
	}
	return fmt.Sprintf("https://apk.example.com/api/files/static/%s", fl.Path), nil
}

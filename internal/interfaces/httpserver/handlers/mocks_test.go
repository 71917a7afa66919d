package handlers_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"apkraft/internal/domain/app"
	"apkraft/internal/domain/file"
	"apkraft/internal/domain/platform"
	"apkraft/internal/domain/query"
	"apkraft/internal/interfaces/httpserver/handlers"
	"apkraft/internal/interfaces/httpserver/middlewares"
	"apkraft/internal/interfaces/httpserver/requests"
	v1 "apkraft/internal/interfaces/httpserver/routes/v1"
)

type MockPlatformService struct {
	ListFunc    func(ctx context.Context) ([]*platform.Platform, error)
	GetFunc     func(ctx context.Context, id int64) (*platform.Platform, error)
	CreateFunc  func(ctx context.Context, in platform.CreatePlatform) (*platform.Platform, error)
	ReplaceFunc func(ctx context.Context, id int64, in platform.CreatePlatform) (*platform.Platform, error)
	PatchFunc   func(ctx context.Context, id int64, patch platform.Patch) (*platform.Platform, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *MockPlatformService) List(ctx context.Context) ([]*platform.Platform, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockPlatformService) Get(ctx context.Context, id int64) (*platform.Platform, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPlatformService) Create(ctx context.Context, in platform.CreatePlatform) (*platform.Platform, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return nil, nil
}

func (m *MockPlatformService) Replace(ctx context.Context, id int64, in platform.CreatePlatform) (*platform.Platform, error) {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, id, in)
	}
	return nil, nil
}

func (m *MockPlatformService) Patch(ctx context.Context, id int64, patch platform.Patch) (*platform.Platform, error) {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockPlatformService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type MockFileService struct {
	UploadFunc            func(ctx context.Context, in file.UploadInput) (*file.File, error)
	OpenFunc              func(ctx context.Context, key string) (*file.File, *file.Object, error)
	GetFunc               func(ctx context.Context, id int64) (*file.File, error)
	ListFunc              func(ctx context.Context, filter file.Filter) (query.Page[*file.File], error)
	UpdateDescriptionFunc func(ctx context.Context, id int64, description *string) (*file.File, error)
	DeleteFunc            func(ctx context.Context, id int64) error
}

func (m *MockFileService) Upload(ctx context.Context, in file.UploadInput) (*file.File, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, in)
	}
	return nil, nil
}

func (m *MockFileService) Open(ctx context.Context, key string) (*file.File, *file.Object, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, key)
	}
	return nil, nil, nil
}

func (m *MockFileService) Get(ctx context.Context, id int64) (*file.File, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockFileService) List(ctx context.Context, filter file.Filter) (query.Page[*file.File], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return query.NewPage[*file.File](nil, filter.Pagination, 0), nil
}

func (m *MockFileService) UpdateDescription(ctx context.Context, id int64, description *string) (*file.File, error) {
	if m.UpdateDescriptionFunc != nil {
		return m.UpdateDescriptionFunc(ctx, id, description)
	}
	return nil, nil
}

func (m *MockFileService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type MockAppService struct {
	GetFunc         func(ctx context.Context, id int64) (*app.App, error)
	ListFunc        func(ctx context.Context, filter app.Filter) (query.Page[*app.App], error)
	CreateFunc      func(ctx context.Context, in app.CreateApp) (*app.App, error)
	ReplaceFunc     func(ctx context.Context, id int64, in app.CreateApp) (*app.App, error)
	PatchFunc       func(ctx context.Context, id int64, patch app.Patch) (*app.App, error)
	DeleteFunc      func(ctx context.Context, id int64) error
	CheckUpdateFunc func(ctx context.Context, appID int64, rev app.Revision) (*app.UpdateInfo, error)
}

func (m *MockAppService) Get(ctx context.Context, id int64) (*app.App, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAppService) List(ctx context.Context, filter app.Filter) (query.Page[*app.App], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return query.NewPage[*app.App](nil, filter.Pagination, 0), nil
}

func (m *MockAppService) Create(ctx context.Context, in app.CreateApp) (*app.App, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return nil, nil
}

func (m *MockAppService) Replace(ctx context.Context, id int64, in app.CreateApp) (*app.App, error) {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, id, in)
	}
	return nil, nil
}

func (m *MockAppService) Patch(ctx context.Context, id int64, patch app.Patch) (*app.App, error) {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockAppService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAppService) CheckUpdate(ctx context.Context, appID int64, rev app.Revision) (*app.UpdateInfo, error) {
	if m.CheckUpdateFunc != nil {
		return m.CheckUpdateFunc(ctx, appID, rev)
	}
	return &app.UpdateInfo{}, nil
}

type MockVersionService struct {
	GetFunc     func(ctx context.Context, id int64) (*app.Version, error)
	ListFunc    func(ctx context.Context, filter app.VersionFilter) (query.Page[*app.Version], error)
	CreateFunc  func(ctx context.Context, in app.CreateVersion) (*app.Version, error)
	PublishFunc func(ctx context.Context, id int64, publish bool) (*app.Version, error)
	PatchFunc   func(ctx context.Context, id int64, patch app.VersionPatch) (*app.Version, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *MockVersionService) Get(ctx context.Context, id int64) (*app.Version, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockVersionService) List(ctx context.Context, filter app.VersionFilter) (query.Page[*app.Version], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return query.NewPage[*app.Version](nil, filter.Pagination, 0), nil
}

func (m *MockVersionService) Create(ctx context.Context, in app.CreateVersion) (*app.Version, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return nil, nil
}

func (m *MockVersionService) Publish(ctx context.Context, id int64, publish bool) (*app.Version, error) {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, id, publish)
	}
	return &app.Version{ID: id}, nil
}

func (m *MockVersionService) Patch(ctx context.Context, id int64, patch app.VersionPatch) (*app.Version, error) {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockVersionService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type testServices struct {
	platforms *MockPlatformService
	files     *MockFileService
	apps      *MockAppService
	versions  *MockVersionService
}

func newTestServices() testServices {
	return testServices{
		platforms: &MockPlatformService{},
		files:     &MockFileService{},
		apps:      &MockAppService{},
		versions:  &MockVersionService{},
	}
}

// setupTestRouter mounts the resource routes on top of the mocks.
func setupTestRouter(s testServices) *gin.Engine {
	gin.SetMode(gin.TestMode)
	requests.RegisterValidation()

	log := zerolog.Nop()
	provider := &handlers.Provider{
		Platform: handlers.NewPlatformHandler(s.platforms, log),
		File:     handlers.NewFileHandler(s.files, log),
		App:      handlers.NewAppHandler(s.apps, log),
		Version:  handlers.NewVersionHandler(s.versions, log),
	}

	router := gin.New()
	router.Use(middlewares.RequestID())
	v1.NewRoutes(provider).Register(router)
	return router
}

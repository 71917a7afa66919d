package requests

import (
	"apkraft/internal/domain/app"
	"apkraft/internal/domain/query"
)

// AppRequest is the body of POST and PUT /api/apps.
type AppRequest struct {
	Name             string  `json:"name" binding:"required,max=255"`
	BundleID         string  `json:"bundle_id" binding:"required,max=255"`
	IconFileID       *int64  `json:"icon_file_id" binding:"omitempty,min=1"`
	CurrentVersionID *int64  `json:"current_version_id" binding:"omitempty,min=1"`
	Description      *string `json:"description"`
	PlatformID       int64   `json:"platform_id" binding:"required,min=1"`
}

func (r AppRequest) ToDomain() app.CreateApp {
	return app.CreateApp{
		Name:             r.Name,
		BundleID:         r.BundleID,
		IconFileID:       r.IconFileID,
		CurrentVersionID: r.CurrentVersionID,
		Description:      r.Description,
		PlatformID:       r.PlatformID,
	}
}

// PatchAppRequest is the body of PATCH /api/apps/{id}.
type PatchAppRequest struct {
	Name             *string          `json:"name" binding:"omitempty,min=1,max=255"`
	BundleID         *string          `json:"bundle_id" binding:"omitempty,min=1,max=255"`
	IconFileID       Nullable[int64]  `json:"icon_file_id"`
	CurrentVersionID Nullable[int64]  `json:"current_version_id"`
	Description      Nullable[string] `json:"description"`
	PlatformID       *int64           `json:"platform_id" binding:"omitempty,min=1"`
}

func (r PatchAppRequest) ToDomain() app.Patch {
	return app.Patch{
		Name:             query.FromPtr(r.Name),
		BundleID:         query.FromPtr(r.BundleID),
		IconFileID:       r.IconFileID.Optional(),
		CurrentVersionID: r.CurrentVersionID.Optional(),
		Description:      r.Description.Optional(),
		PlatformID:       query.FromPtr(r.PlatformID),
	}
}

// AppListQuery holds the filters of GET /api/apps.
type AppListQuery struct {
	PageQuery
	Name        string `form:"name"`
	BundleID    string `form:"bundle_id"`
	Description string `form:"description"`
	PlatformID  *int64 `form:"platform_id"`
}

func (q AppListQuery) ToDomain(p query.Pagination) app.Filter {
	return app.Filter{
		Name:        q.Name,
		BundleID:    q.BundleID,
		Description: q.Description,
		PlatformID:  q.PlatformID,
		Pagination:  p,
	}
}

// CheckUpdateQuery is the client revision reported to GET /api/apps/{id}/check-update.
type CheckUpdateQuery struct {
	VersionName string  `form:"version_name" binding:"required"`
	BuildNumber *uint64 `form:"build_number" binding:"required"`
}

func (q CheckUpdateQuery) ToDomain() app.Revision {
	return app.Revision{VersionName: q.VersionName, BuildNumber: *q.BuildNumber}
}

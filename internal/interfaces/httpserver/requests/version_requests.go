package requests

import (
	"apkraft/internal/domain/app"
	"apkraft/internal/domain/query"
)

// CreateVersionRequest is the body of POST /api/app-versions.
type CreateVersionRequest struct {
	AppID              int64   `json:"app_id" binding:"required,min=1"`
	VersionCode        string  `json:"version_code" binding:"required,max=64"`
	VersionName        string  `json:"version_name" binding:"required,max=64"`
	ReleaseNotes       *string `json:"release_notes"`
	APKFileID          int64   `json:"apk_file_id" binding:"required,min=1"`
	PublishImmediately bool    `json:"publish_immediately"`
}

func (r CreateVersionRequest) ToDomain() app.CreateVersion {
	return app.CreateVersion{
		AppID:              r.AppID,
		VersionCode:        r.VersionCode,
		VersionName:        r.VersionName,
		ReleaseNotes:       r.ReleaseNotes,
		APKFileID:          r.APKFileID,
		PublishImmediately: r.PublishImmediately,
	}
}

// PatchVersionRequest is the body of PUT and PATCH /api/app-versions/{id}.
// Publication is changed only through the publish endpoint.
type PatchVersionRequest struct {
	VersionCode  *string          `json:"version_code" binding:"omitempty,min=1,max=64"`
	VersionName  *string          `json:"version_name" binding:"omitempty,min=1,max=64"`
	ReleaseNotes Nullable[string] `json:"release_notes"`
}

func (r PatchVersionRequest) ToDomain() app.VersionPatch {
	return app.VersionPatch{
		VersionCode:  query.FromPtr(r.VersionCode),
		VersionName:  query.FromPtr(r.VersionName),
		ReleaseNotes: r.ReleaseNotes.Optional(),
	}
}

// PublishRequest is the body of POST /api/app-versions/{id}/publish.
type PublishRequest struct {
	Publish *bool `json:"publish" binding:"required"`
}

// VersionListQuery holds the filters of GET /api/app-versions.
type VersionListQuery struct {
	PageQuery
	VersionName string `form:"version_name"`
	VersionCode string `form:"version_code"`
	AppID       *int64 `form:"app_id"`
}

func (q VersionListQuery) ToDomain(p query.Pagination) app.VersionFilter {
	return app.VersionFilter{
		VersionName: q.VersionName,
		VersionCode: q.VersionCode,
		AppID:       q.AppID,
		Pagination:  p,
	}
}

package requests

import (
	"apkraft/internal/domain/platform"
	"apkraft/internal/domain/query"
)

// PlatformRequest is the body of POST and PUT /api/platforms.
type PlatformRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	Code    *int    `json:"code" binding:"required,min=0,max=65535"`
	IconURL *string `json:"icon_url" binding:"omitempty,url"`
}

func (r PlatformRequest) ToDomain() platform.CreatePlatform {
	return platform.CreatePlatform{
		Name:    r.Name,
		Code:    *r.Code,
		IconURL: r.IconURL,
	}
}

// PatchPlatformRequest is the body of PATCH /api/platforms/{id}. Absent fields are left untouched.
type PatchPlatformRequest struct {
	Name    *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Code    *int             `json:"code" binding:"omitempty,min=0,max=65535"`
	IconURL Nullable[string] `json:"icon_url"`
}

func (r PatchPlatformRequest) ToDomain() platform.Patch {
	var patch platform.Patch
	patch.Name = query.FromPtr(r.Name)
	patch.Code = query.FromPtr(r.Code)
	patch.IconURL = r.IconURL.Optional()
	return patch
}

package app

import (
	"time"

	"apkraft/internal/domain/query"
)

// App is a catalog entry for one mobile application.
type App struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	BundleID         string    `json:"bundle_id"`
	IconFileID       *int64    `json:"icon_file_id"`
	CurrentVersionID *int64    `json:"current_version_id"`
	Description      *string   `json:"description"`
	PlatformID       int64     `json:"platform_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateApp is the validated input for creating or replacing an app.
type CreateApp struct {
	Name             string
	BundleID         string
	IconFileID       *int64
	CurrentVersionID *int64
	Description      *string
	PlatformID       int64
}

// Patch lists the columns to change on an app.
type Patch struct {
	Name             query.Optional[string]
	BundleID         query.Optional[string]
	IconFileID       query.Optional[*int64]
	CurrentVersionID query.Optional[*int64]
	Description      query.Optional[*string]
	PlatformID       query.Optional[int64]
	UpdatedAt        query.Optional[time.Time]
}

// Filter narrows app listings. Text filters are case-insensitive substrings; PlatformID is exact.
type Filter struct {
	Name        string
	BundleID    string
	Description string
	PlatformID  *int64
	Pagination  query.Pagination
}

// Version is one release of an app.
type Version struct {
	ID           int64      `json:"id"`
	AppID        int64      `json:"app_id"`
	VersionCode  string     `json:"version_code"`
	VersionName  string     `json:"version_name"`
	ReleaseNotes *string    `json:"release_notes"`
	APKFileID    int64      `json:"apk_file_id"`
	PublishedAt  *time.Time `json:"published_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateVersion is the validated input for a new release.
type CreateVersion struct {
	AppID              int64
	VersionCode        string
	VersionName        string
	ReleaseNotes       *string
	APKFileID          int64
	PublishImmediately bool
}

// VersionPatch lists the columns to change on a version.
type VersionPatch struct {
	VersionCode  query.Optional[string]
	VersionName  query.Optional[string]
	ReleaseNotes query.Optional[*string]
	PublishedAt  query.Optional[*time.Time]
	UpdatedAt    query.Optional[time.Time]
}

// VersionFilter narrows version listings.
type VersionFilter struct {
	VersionName string
	VersionCode string
	AppID       *int64
	Pagination  query.Pagination
}

// Revision is what a client reports about its installed build.
type Revision struct {
	VersionName string
	BuildNumber uint64
}

// UpdateInfo is the check-update answer.
type UpdateInfo struct {
	UpdateAvailable bool               `json:"update_available"`
	LatestVersion   *LatestVersionInfo `json:"latest_version"`
}

// LatestVersionInfo describes the release a client should move to.
type LatestVersionInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	BuildNumber string `json:"build_number"`
	FileURL     string `json:"file_url"`
}

package entities

import "time"

// App is the persisted row of the apps table.
type App struct {
	ID               int64   `gorm:"primaryKey"`
	Name             string  `gorm:"type:varchar(255);not null"`
	BundleID         string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	IconFileID       *int64
	CurrentVersionID *int64
	Description      *string `gorm:"type:text"`
	PlatformID       int64   `gorm:"not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (App) TableName() string {
	return "apps"
}

// AppVersion is the persisted row of the app_versions table.
type AppVersion struct {
	ID           int64   `gorm:"primaryKey"`
	AppID        int64   `gorm:"not null"`
	VersionCode  string  `gorm:"type:varchar(64);not null"`
	VersionName  string  `gorm:"type:varchar(64);not null"`
	ReleaseNotes *string `gorm:"type:text"`
	APKFileID    int64   `gorm:"column:apk_file_id;not null"`
	PublishedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AppVersion) TableName() string {
	return "app_versions"
}

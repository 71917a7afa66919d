package entities

import "time"

// File is the persisted metadata of a stored blob.
type File struct {
	ID             int64   `gorm:"primaryKey"`
	Name           string  `gorm:"type:varchar(255);not null"`
	Mime           string  `gorm:"type:varchar(255);not null"`
	SizeBytes      int64   `gorm:"not null"`
	Path           string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	ChecksumSHA256 string  `gorm:"column:checksum_sha256;type:char(64);not null"`
	Description    *string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (File) TableName() string {
	return "files"
}

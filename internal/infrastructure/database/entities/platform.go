package entities

import "time"

// Platform is the persisted row of the platforms table.
type Platform struct {
	ID        int64   `gorm:"primaryKey"`
	Name      string  `gorm:"type:varchar(255);not null"`
	Code      int     `gorm:"not null;uniqueIndex"`
	IconURL   *string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Platform) TableName() string {
	return "platforms"
}

package platform

import (
	"time"

	"apkraft/internal/domain/query"
)

// Platform is a distribution target such as Android or iOS.
type Platform struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      int       `json:"code"`
	IconURL   *string   `json:"icon_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePlatform is the validated input for creating or replacing a platform.
type CreatePlatform struct {
	Name    string
	Code    int
	IconURL *string
}

// Patch lists the columns to change on an existing platform.
type Patch struct {
	Name      query.Optional[string]
	Code      query.Optional[int]
	IconURL   query.Optional[*string]
	UpdatedAt query.Optional[time.Time]
}

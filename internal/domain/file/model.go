package file

import (
	"errors"
	"io"
	"time"

	"apkraft/internal/domain/query"
)

// ErrObjectNotFound is returned by storage backends when no blob exists for a key.
var ErrObjectNotFound = errors.New("object not found in storage")

// File is the metadata of an uploaded binary. Path is the storage key.
type File struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Mime           string    `json:"mime"`
	SizeBytes      int64     `json:"size_bytes"`
	Path           string    `json:"path"`
	ChecksumSHA256 string    `json:"checksum_sha256"`
	Description    *string   `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UploadInput is a single uploaded part as received from the client.
type UploadInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
	Description *string
}

// Object is a blob read back from storage. Size is -1 when the backend does not know it.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// Filter narrows file listings. Empty strings are ignored.
type Filter struct {
	Name       string
	Mime       string
	Pagination query.Pagination
}

// Patch lists the columns to change on a file row. Only metadata is mutable.
type Patch struct {
	Description query.Optional[*string]
	UpdatedAt   query.Optional[time.Time]
}

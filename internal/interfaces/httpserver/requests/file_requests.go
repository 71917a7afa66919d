package requests

import (
	"apkraft/internal/domain/file"
	"apkraft/internal/domain/query"
)

// UpdateFileRequest is the body of PUT and PATCH /api/files/{id}. Only the description can change.
type UpdateFileRequest struct {
	Description *string `json:"description"`
}

// FileListQuery holds the filters of GET /api/files.
type FileListQuery struct {
	PageQuery
	Name string `form:"name"`
	Mime string `form:"mime"`
}

func (q FileListQuery) ToDomain(p query.Pagination) file.Filter {
	return file.Filter{Name: q.Name, Mime: q.Mime, Pagination: p}
}

// UploadQuery holds the optional description of POST /api/files.
type UploadQuery struct {
	Description *string `form:"description"`
}

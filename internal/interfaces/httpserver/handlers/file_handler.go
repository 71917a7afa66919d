package handlers

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"apkraft/internal/domain/file"
	"apkraft/internal/domain/query"
	"apkraft/internal/infrastructure/metrics"
	"apkraft/internal/infrastructure/observability"
	"apkraft/internal/interfaces/httpserver/requests"
	"apkraft/internal/interfaces/httpserver/responses"
	"apkraft/internal/utils/platformerrors"
)

// FileService is what the file endpoints need from the domain.
type FileService interface {
	Upload(ctx context.Context, in file.UploadInput) (*file.File, error)
	Open(ctx context.Context, key string) (*file.File, *file.Object, error)
	Get(ctx context.Context, id int64) (*file.File, error)
	List(ctx context.Context, filter file.Filter) (query.Page[*file.File], error)
	UpdateDescription(ctx context.Context, id int64, description *string) (*file.File, error)
	Delete(ctx context.Context, id int64) error
}

// FileHandler exposes uploads, file metadata and the static download route.
type FileHandler struct {
	service FileService
	log     zerolog.Logger
}

func NewFileHandler(service FileService, log zerolog.Logger) *FileHandler {
	return &FileHandler{
		service: service,
		log:     log.With().Str("component", "file-handler").Logger(),
	}
}

// Upload godoc
// @Summary      Upload a file
// @Description  Stores the first part of the multipart body. Later parts are ignored.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file         formData  file    true   "File to upload"
// @Param        description  query     string  false  "Free text description"
// @Success      201          {object}  responses.Envelope{data=file.File}
// @Failure      400          {object}  responses.ErrorResponse
// @Failure      502          {object}  responses.ErrorResponse
// @Router       /api/files/ [post]
func (h *FileHandler) Upload(reqCtx *gin.Context) {
	var q requests.UploadQuery
	if err := reqCtx.ShouldBindQuery(&q); err != nil {
		responses.HandleBindError(reqCtx, err)
		return
	}

	reader, err := reqCtx.Request.MultipartReader()
	if err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "expected a multipart body", "file-upload-multipart-001")
		return
	}
	part, err := reader.NextPart()
	if err != nil {
		if errors.Is(err, io.EOF) {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "multipart body has no parts", "file-upload-multipart-002")
			return
		}
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "malformed multipart body", "file-upload-multipart-003")
		return
	}
	defer part.Close()

	contentType := part.Header.Get("Content-Type")
	ctx, span := observability.StartUploadSpan(reqCtx.Request.Context(), part.FileName(), contentType)
	defer span.End()

	f, err := h.service.Upload(ctx, file.UploadInput{
		Filename:    part.FileName(),
		ContentType: contentType,
		Body:        part,
		Description: q.Description,
	})
	if err != nil {
		observability.RecordError(span, err)
		metrics.RecordUpload(contentType, "error", 0)
		handleError(reqCtx, h.log, err, "failed to upload file")
		return
	}
	metrics.RecordUpload(f.Mime, "success", f.SizeBytes)
	responses.Created(reqCtx, f)
}

// List godoc
// @Summary      List files
// @Tags         files
// @Produce      json
// @Param        name       query     string  false  "Name contains (case-insensitive)"
// @Param        mime       query     string  false  "MIME type contains (case-insensitive)"
// @Param        page       query     int     false  "Page, from 1"
// @Param        page_size  query     int     false  "Page size, at most 100"
// @Success      200        {object}  responses.Envelope{data=[]file.File,info=responses.PageInfo}
// @Failure      400        {object}  responses.ErrorResponse
// @Router       /api/files/ [get]
func (h *FileHandler) List(reqCtx *gin.Context) {
	var q requests.FileListQuery
	if err := reqCtx.ShouldBindQuery(&q); err != nil {
		responses.HandleBindError(reqCtx, err)
		return
	}
	ctx := reqCtx.Request.Context()
	p, err := q.Pagination(ctx)
	if err != nil {
		handleError(reqCtx, h.log, err, "invalid pagination")
		return
	}
	page, err := h.service.List(ctx, q.ToDomain(p))
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to list files")
		return
	}
	responses.Paged(reqCtx, page)
}

// Get godoc
// @Summary      Get file metadata
// @Tags         files
// @Produce      json
// @Param        id   path      int  true  "File ID"
// @Success      200  {object}  responses.Envelope{data=file.File}
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/files/{id} [get]
func (h *FileHandler) Get(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	f, err := h.service.Get(reqCtx.Request.Context(), id)
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to get file")
		return
	}
	responses.OK(reqCtx, f)
}

// Update godoc
// @Summary      Update a file description
// @Tags         files
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "File ID"
// @Param        request  body      requests.UpdateFileRequest  true  "Description"
// @Success      200      {object}  responses.Envelope{data=file.File}
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /api/files/{id} [put]
// @Router       /api/files/{id} [patch]
func (h *FileHandler) Update(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	var req requests.UpdateFileRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(reqCtx, err)
		return
	}
	f, err := h.service.UpdateDescription(reqCtx.Request.Context(), id, req.Description)
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to update file")
		return
	}
	responses.OK(reqCtx, f)
}

// Delete godoc
// @Summary      Delete a file
// @Description  Versions whose APK is this file are deleted with it; app icons referencing it are cleared.
// @Tags         files
// @Produce      json
// @Param        id   path      int  true  "File ID"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/files/{id} [delete]
func (h *FileHandler) Delete(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	if err := h.service.Delete(reqCtx.Request.Context(), id); err != nil {
		handleError(reqCtx, h.log, err, "failed to delete file")
		return
	}
	responses.Empty(reqCtx)
}

// Serve godoc
// @Summary      Download a stored file
// @Description  Streams the bytes stored under the given key as an attachment.
// @Tags         files
// @Produce      application/octet-stream
// @Param        key  path      string  true  "Storage key"
// @Success      200  {file}    binary
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      502  {object}  responses.ErrorResponse
// @Router       /api/files/static/{key} [get]
func (h *FileHandler) Serve(reqCtx *gin.Context) {
	f, obj, err := h.service.Open(reqCtx.Request.Context(), reqCtx.Param("key"))
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			metrics.RecordDownload("not_found")
		} else {
			metrics.RecordDownload("error")
		}
		handleError(reqCtx, h.log, err, "failed to read file")
		return
	}
	defer obj.Body.Close()

	metrics.RecordDownload("success")
	reqCtx.DataFromReader(http.StatusOK, obj.Size, f.Mime, obj.Body, map[string]string{
		"Content-Disposition": attachmentDisposition(f.Name),
	})
}

// attachmentDisposition quotes the name per RFC 6266, switching to the RFC 2231 form for non-ASCII names.
func attachmentDisposition(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}

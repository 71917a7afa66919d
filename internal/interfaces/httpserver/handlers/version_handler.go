package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"apkraft/internal/domain/app"
	"apkraft/internal/domain/query"
	"apkraft/internal/interfaces/httpserver/requests"
	"apkraft/internal/interfaces/httpserver/responses"
)

// VersionService is what the app-version endpoints need from the domain.
type VersionService interface {
	Get(ctx context.Context, id int64) (*app.Version, error)
	List(ctx context.Context, filter app.VersionFilter) (query.Page[*app.Version], error)
	Create(ctx context.Context, in app.CreateVersion) (*app.Version, error)
	Publish(ctx context.Context, id int64, publish bool) (*app.Version, error)
	Patch(ctx context.Context, id int64, patch app.VersionPatch) (*app.Version, error)
	Delete(ctx context.Context, id int64) error
}

// VersionHandler exposes app releases.
type VersionHandler struct {
	service VersionService
	log     zerolog.Logger
}

func NewVersionHandler(service VersionService, log zerolog.Logger) *VersionHandler {
	return &VersionHandler{
		service: service,
		log:     log.With().Str("component", "version-handler").Logger(),
	}
}

// List godoc
// @Summary      List app versions
// @Tags         app-versions
// @Produce      json
// @Param        version_name  query     string  false  "Version name contains (case-insensitive)"
// @Param        version_code  query     string  false  "Version code contains (case-insensitive)"
// @Param        app_id        query     int     false  "App ID"
// @Param        page          query     int     false  "Page, from 1"
// @Param        page_size     query     int     false  "Page size, at most 100"
// @Success      200           {object}  responses.Envelope{data=[]app.Version,info=responses.PageInfo}
// @Failure      400           {object}  responses.ErrorResponse
// @Router       /api/app-versions/ [get]
func (h *VersionHandler) List(reqCtx *gin.Context) {
	var q requests.VersionListQuery
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
		handleError(reqCtx, h.log, err, "failed to list app versions")
		return
	}
	responses.Paged(reqCtx, page)
}

// Get godoc
// @Summary      Get an app version
// @Tags         app-versions
// @Produce      json
// @Param        id   path      int  true  "Version ID"
// @Success      200  {object}  responses.Envelope{data=app.Version}
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/app-versions/{id} [get]
func (h *VersionHandler) Get(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	v, err := h.service.Get(reqCtx.Request.Context(), id)
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to get app version")
		return
	}
	responses.OK(reqCtx, v)
}

// Create godoc
// @Summary      Create an app version
// @Description  With publish_immediately the version is published and becomes the app's current version in the same transaction.
// @Tags         app-versions
// @Accept       json
// @Produce      json
// @Param        request  body      requests.CreateVersionRequest  true  "Version"
// @Success      201      {object}  responses.Envelope{data=app.Version}
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /api/app-versions/ [post]
func (h *VersionHandler) Create(reqCtx *gin.Context) {
	var req requests.CreateVersionRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(reqCtx, err)
		return
	}
	v, err := h.service.Create(reqCtx.Request.Context(), req.ToDomain())
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to create app version")
		return
	}
	responses.Created(reqCtx, v)
}

// Patch godoc
// @Summary      Update an app version
// @Tags         app-versions
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Version ID"
// @Param        request  body      requests.PatchVersionRequest  true  "Fields to change"
// @Success      200      {object}  responses.Envelope{data=app.Version}
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /api/app-versions/{id} [put]
// @Router       /api/app-versions/{id} [patch]
func (h *VersionHandler) Patch(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	var req requests.PatchVersionRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(reqCtx, err)
		return
	}
	v, err := h.service.Patch(reqCtx.Request.Context(), id, req.ToDomain())
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to update app version")
		return
	}
	responses.OK(reqCtx, v)
}

// Publish godoc
// @Summary      Publish or unpublish an app version
// @Description  Publishing makes the version the app's current version. Unpublishing sets the app's current version to none.
// @Tags         app-versions
// @Accept       json
// @Produce      json
// @Param        id       path      int                      true  "Version ID"
// @Param        request  body      requests.PublishRequest  true  "Publish flag"
// @Success      200      {object}  responses.Envelope
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /api/app-versions/{id}/publish [post]
func (h *VersionHandler) Publish(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	var req requests.PublishRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(reqCtx, err)
		return
	}
	if _, err := h.service.Publish(reqCtx.Request.Context(), id, *req.Publish); err != nil {
		handleError(reqCtx, h.log, err, "failed to change publication")
		return
	}
	responses.Empty(reqCtx)
}

// Delete godoc
// @Summary      Delete an app version
// @Description  An app whose current version is deleted is left without one.
// @Tags         app-versions
// @Produce      json
// @Param        id   path      int  true  "Version ID"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/app-versions/{id} [delete]
func (h *VersionHandler) Delete(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	if err := h.service.Delete(reqCtx.Request.Context(), id); err != nil {
		handleError(reqCtx, h.log, err, "failed to delete app version")
		return
	}
	responses.Empty(reqCtx)
}

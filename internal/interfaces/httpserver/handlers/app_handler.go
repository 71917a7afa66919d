package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"apkraft/internal/domain/app"
	"apkraft/internal/domain/query"
	"apkraft/internal/infrastructure/metrics"
	"apkraft/internal/infrastructure/observability"
	"apkraft/internal/interfaces/httpserver/requests"
	"apkraft/internal/interfaces/httpserver/responses"
)

// AppService is what the app endpoints need from the domain.
type AppService interface {
	Get(ctx context.Context, id int64) (*app.App, error)
	List(ctx context.Context, filter app.Filter) (query.Page[*app.App], error)
	Create(ctx context.Context, in app.CreateApp) (*app.App, error)
	Replace(ctx context.Context, id int64, in app.CreateApp) (*app.App, error)
	Patch(ctx context.Context, id int64, patch app.Patch) (*app.App, error)
	Delete(ctx context.Context, id int64) error
	CheckUpdate(ctx context.Context, appID int64, rev app.Revision) (*app.UpdateInfo, error)
}

// AppHandler exposes the app catalog and the update check.
type AppHandler struct {
	service AppService
	log     zerolog.Logger
}

func NewAppHandler(service AppService, log zerolog.Logger) *AppHandler {
	return &AppHandler{
		service: service,
		log:     log.With().Str("component", "app-handler").Logger(),
	}
}

// List godoc
// @Summary      List apps
// @Tags         apps
// @Produce      json
// @Param        name         query     string  false  "Name contains (case-insensitive)"
// @Param        bundle_id    query     string  false  "Bundle id contains (case-insensitive)"
// @Param        description  query     string  false  "Description contains (case-insensitive)"
// @Param        platform_id  query     int     false  "Platform ID"
// @Param        page         query     int     false  "Page, from 1"
// @Param        page_size    query     int     false  "Page size, at most 100"
// @Success      200          {object}  responses.Envelope{data=[]app.App,info=responses.PageInfo}
// @Failure      400          {object}  responses.ErrorResponse
// @Router       /api/apps/ [get]
func (h *AppHandler) List(reqCtx *gin.Context) {
	var q requests.AppListQuery
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
		handleError(reqCtx, h.log, err, "failed to list apps")
		return
	}
	responses.Paged(reqCtx, page)
}

// Get godoc
// @Summary      Get an app
// @Tags         apps
// @Produce      json
// @Param        id   path      int  true  "App ID"
// @Success      200  {object}  responses.Envelope{data=app.App}
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/apps/{id} [get]
func (h *AppHandler) Get(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	a, err := h.service.Get(reqCtx.Request.Context(), id)
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to get app")
		return
	}
	responses.OK(reqCtx, a)
}

// Create godoc
// @Summary      Create an app
// @Tags         apps
// @Accept       json
// @Produce      json
// @Param        request  body      requests.AppRequest  true  "App"
// @Success      201      {object}  responses.Envelope{data=app.App}
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /api/apps/ [post]
func (h *AppHandler) Create(reqCtx *gin.Context) {
	var req requests.AppRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(reqCtx, err)
		return
	}
	a, err := h.service.Create(reqCtx.Request.Context(), req.ToDomain())
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to create app")
		return
	}
	responses.Created(reqCtx, a)
}

// Replace godoc
// @Summary      Replace an app
// @Tags         apps
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "App ID"
// @Param        request  body      requests.AppRequest  true  "App"
// @Success      200      {object}  responses.Envelope{data=app.App}
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /api/apps/{id} [put]
func (h *AppHandler) Replace(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	var req requests.AppRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(reqCtx, err)
		return
	}
	a, err := h.service.Replace(reqCtx.Request.Context(), id, req.ToDomain())
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to update app")
		return
	}
	responses.OK(reqCtx, a)
}

// Patch godoc
// @Summary      Patch an app
// @Tags         apps
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "App ID"
// @Param        request  body      requests.PatchAppRequest  true  "Fields to change"
// @Success      200      {object}  responses.Envelope{data=app.App}
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /api/apps/{id} [patch]
func (h *AppHandler) Patch(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	var req requests.PatchAppRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(reqCtx, err)
		return
	}
	a, err := h.service.Patch(reqCtx.Request.Context(), id, req.ToDomain())
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to update app")
		return
	}
	responses.OK(reqCtx, a)
}

// Delete godoc
// @Summary      Delete an app
// @Description  The app's versions are deleted with it.
// @Tags         apps
// @Produce      json
// @Param        id   path      int  true  "App ID"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/apps/{id} [delete]
func (h *AppHandler) Delete(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	if err := h.service.Delete(reqCtx.Request.Context(), id); err != nil {
		handleError(reqCtx, h.log, err, "failed to delete app")
		return
	}
	responses.Empty(reqCtx)
}

// CheckUpdate godoc
// @Summary      Check for a newer version
// @Description  Compares the client revision with the app's current version. Any difference in version name or build number reports an update.
// @Tags         apps
// @Produce      json
// @Param        id            path      int     true  "App ID"
// @Param        version_name  query     string  true  "Installed version name"
// @Param        build_number  query     int     true  "Installed build number"
// @Success      200           {object}  responses.Envelope{data=app.UpdateInfo}
// @Failure      400           {object}  responses.ErrorResponse
// @Failure      404           {object}  responses.ErrorResponse
// @Router       /api/apps/{id}/check-update [get]
func (h *AppHandler) CheckUpdate(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	var q requests.CheckUpdateQuery
	if err := reqCtx.ShouldBindQuery(&q); err != nil {
		responses.HandleBindError(reqCtx, err)
		return
	}
	rev := q.ToDomain()

	ctx, span := observability.StartCheckUpdateSpan(reqCtx.Request.Context(), id, rev.VersionName, rev.BuildNumber)
	defer span.End()

	info, err := h.service.CheckUpdate(ctx, id, rev)
	if err != nil {
		observability.RecordError(span, err)
		metrics.RecordUpdateCheck("error")
		handleError(reqCtx, h.log, err, "failed to check for update")
		return
	}
	if info.UpdateAvailable {
		metrics.RecordUpdateCheck("available")
	} else {
		metrics.RecordUpdateCheck("current")
	}
	responses.OK(reqCtx, info)
}

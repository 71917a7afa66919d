package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"apkraft/internal/domain/platform"
	"apkraft/internal/interfaces/httpserver/requests"
	"apkraft/internal/interfaces/httpserver/responses"
)

// PlatformService is what the platform endpoints need from the domain.
type PlatformService interface {
	List(ctx context.Context) ([]*platform.Platform, error)
	Get(ctx context.Context, id int64) (*platform.Platform, error)
	Create(ctx context.Context, in platform.CreatePlatform) (*platform.Platform, error)
	Replace(ctx context.Context, id int64, in platform.CreatePlatform) (*platform.Platform, error)
	Patch(ctx context.Context, id int64, patch platform.Patch) (*platform.Platform, error)
	Delete(ctx context.Context, id int64) error
}

// PlatformHandler exposes the platform catalog.
type PlatformHandler struct {
	service PlatformService
	log     zerolog.Logger
}

func NewPlatformHandler(service PlatformService, log zerolog.Logger) *PlatformHandler {
	return &PlatformHandler{
		service: service,
		log:     log.With().Str("component", "platform-handler").Logger(),
	}
}

// List godoc
// @Summary      List platforms
// @Tags         platforms
// @Produce      json
// @Success      200  {object}  responses.Envelope{data=[]platform.Platform}
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /api/platforms/ [get]
func (h *PlatformHandler) List(reqCtx *gin.Context) {
	items, err := h.service.List(reqCtx.Request.Context())
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to list platforms")
		return
	}
	if items == nil {
		items = []*platform.Platform{}
	}
	responses.OK(reqCtx, items)
}

// Get godoc
// @Summary      Get a platform
// @Tags         platforms
// @Produce      json
// @Param        id   path      int  true  "Platform ID"
// @Success      200  {object}  responses.Envelope{data=platform.Platform}
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/platforms/{id} [get]
func (h *PlatformHandler) Get(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	p, err := h.service.Get(reqCtx.Request.Context(), id)
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to get platform")
		return
	}
	responses.OK(reqCtx, p)
}

// Create godoc
// @Summary      Create a platform
// @Tags         platforms
// @Accept       json
// @Produce      json
// @Param        request  body      requests.PlatformRequest  true  "Platform"
// @Success      201      {object}  responses.Envelope{data=platform.Platform}
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /api/platforms/ [post]
func (h *PlatformHandler) Create(reqCtx *gin.Context) {
	var req requests.PlatformRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(reqCtx, err)
		return
	}
	p, err := h.service.Create(reqCtx.Request.Context(), req.ToDomain())
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to create platform")
		return
	}
	responses.Created(reqCtx, p)
}

// Replace godoc
// @Summary      Replace a platform
// @Tags         platforms
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Platform ID"
// @Param        request  body      requests.PlatformRequest  true  "Platform"
// @Success      200      {object}  responses.Envelope{data=platform.Platform}
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /api/platforms/{id} [put]
func (h *PlatformHandler) Replace(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	var req requests.PlatformRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(reqCtx, err)
		return
	}
	p, err := h.service.Replace(reqCtx.Request.Context(), id, req.ToDomain())
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to update platform")
		return
	}
	responses.OK(reqCtx, p)
}

// Patch godoc
// @Summary      Patch a platform
// @Tags         platforms
// @Accept       json
// @Produce      json
// @Param        id       path      int                            true  "Platform ID"
// @Param        request  body      requests.PatchPlatformRequest  true  "Fields to change"
// @Success      200      {object}  responses.Envelope{data=platform.Platform}
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /api/platforms/{id} [patch]
func (h *PlatformHandler) Patch(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	var req requests.PatchPlatformRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(reqCtx, err)
		return
	}
	p, err := h.service.Patch(reqCtx.Request.Context(), id, req.ToDomain())
	if err != nil {
		handleError(reqCtx, h.log, err, "failed to update platform")
		return
	}
	responses.OK(reqCtx, p)
}

// Delete godoc
// @Summary      Delete a platform
// @Description  Apps on the platform are deleted with it.
// @Tags         platforms
// @Produce      json
// @Param        id   path      int  true  "Platform ID"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/platforms/{id} [delete]
func (h *PlatformHandler) Delete(reqCtx *gin.Context) {
	id, ok := pathID(reqCtx)
	if !ok {
		return
	}
	if err := h.service.Delete(reqCtx.Request.Context(), id); err != nil {
		handleError(reqCtx, h.log, err, "failed to delete platform")
		return
	}
	responses.Empty(reqCtx)
}

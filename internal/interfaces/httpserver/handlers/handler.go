package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"apkraft/internal/interfaces/httpserver/responses"
	"apkraft/internal/utils/platformerrors"
)

// handleError logs err and writes the error envelope.
func handleError(reqCtx *gin.Context, log zerolog.Logger, err error, message string) {
	if pe := platformerrors.GetPlatformError(err); pe != nil {
		platformerrors.LogError(log, pe)
	} else {
		log.Error().Err(err).Msg(message)
	}
	_ = reqCtx.Error(err)
	responses.HandleError(reqCtx, err, message)
}

// pathID parses the :id route parameter.
func pathID(reqCtx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(reqCtx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "id must be a positive integer", "path-id-invalid-001")
		return 0, false
	}
	return id, true
}

package responses

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"apkraft/internal/utils/platformerrors"
)

const (
	errBadRequest       = "bad request"
	errValidationFailed = "validation failed"
)

// ErrorResponse is the envelope as written for failures.
type ErrorResponse = Envelope

// HandleError maps err to its HTTP status and writes the error envelope.
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.Type)

		errorMessage := domainErr.Message
		if errorMessage == "" {
			errorMessage = message
		}
		description := domainErr.Detail()
		if statusCode >= http.StatusInternalServerError {
			// driver and storage errors stay in the logs
			errorMessage = message
			description = ""
		}

		reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
			Code:        statusCode,
			Error:       errorMessage,
			Description: description,
		})
		return
	}

	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Code:  http.StatusInternalServerError,
		Error: message,
	})
}

// HandleNewError creates a new typed error at the handler layer and handles it
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, code string) {
	err := platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, errorType, message, nil, code)
	HandleError(reqCtx, err, message)
}

// HandleBindError answers a request whose body or query could not be bound.
// Failed binding rules give "validation failed"; anything else, such as malformed JSON, gives "bad request".
func HandleBindError(reqCtx *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Code:        http.StatusBadRequest,
			Error:       errValidationFailed,
			Description: describeValidation(validationErrs),
		})
		return
	}
	reqCtx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Code:        http.StatusBadRequest,
		Error:       errBadRequest,
		Description: err.Error(),
	})
}

func describeValidation(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

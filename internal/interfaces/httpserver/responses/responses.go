package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"apkraft/internal/domain/query"
)

// Envelope is the body of every JSON response. Code is 0 on success and the HTTP status otherwise.
type Envelope struct {
	Code        int       `json:"code"`
	Data        any       `json:"data,omitempty"`
	Info        *PageInfo `json:"info,omitempty"`
	Error       string    `json:"error,omitempty"`
	Description string    `json:"description,omitempty"`
}

// PageInfo accompanies paginated lists.
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int64 `json:"total_pages"`
}

func OK(reqCtx *gin.Context, data any) {
	reqCtx.JSON(http.StatusOK, Envelope{Data: data})
}

func Created(reqCtx *gin.Context, data any) {
	reqCtx.JSON(http.StatusCreated, Envelope{Data: data})
}

// Empty replies {"code":0}; used by deletes and publish toggles.
func Empty(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, Envelope{})
}

// Paged writes one page of items with its page info.
func Paged[T any](reqCtx *gin.Context, page query.Page[T]) {
	reqCtx.JSON(http.StatusOK, Envelope{
		Data: page.Items,
		Info: &PageInfo{
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalItems: page.TotalItems,
			TotalPages: page.TotalPages,
		},
	})
}

package requests

import (
	"context"

	"apkraft/internal/domain/query"
	"apkraft/internal/utils/platformerrors"
)

// PageQuery carries the page and page_size query parameters. Absent values take the defaults.
type PageQuery struct {
	Page     *int `form:"page"`
	PageSize *int `form:"page_size"`
}

// Pagination validates the parameters. page_size above the maximum is capped.
func (q PageQuery) Pagination(ctx context.Context) (query.Pagination, error) {
	p := query.NewPagination()
	if q.Page != nil {
		if *q.Page < 1 {
			return p, platformerrors.Validation(ctx, platformerrors.LayerHandler, "page must be at least 1", "pagination-page-001")
		}
		p.Page = *q.Page
	}
	if q.PageSize != nil {
		if *q.PageSize < 1 {
			return p, platformerrors.Validation(ctx, platformerrors.LayerHandler, "page_size must be at least 1", "pagination-page-size-001")
		}
		p.PageSize = *q.PageSize
	}
	return p.Normalize(), nil
}

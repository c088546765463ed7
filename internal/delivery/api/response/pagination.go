package response

import "net/http"

// Pagination defaults and bounds for list endpoints
const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// PageParams are the skip/limit query parameters of list endpoints.
type PageParams struct {
	Skip  int `query:"skip" validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=1,lte=100"`
}

// DefaultPageParams returns skip=0, limit=DefaultLimit
func DefaultPageParams() PageParams {
	return PageParams{Limit: DefaultLimit}
}

// CalculatePageInfo derives page metadata from total, skip and limit.
// A non-positive limit yields page 1 of 0 pages.
func CalculatePageInfo(total, skip, limit int) PageInfo {
	total = max(total, 0)
	skip = max(skip, 0)
	limit = max(limit, 0)

	info := PageInfo{
		Page:     1,
		PageSize: limit,
		Total:    total,
	}

	if limit > 0 {
		info.Page = skip/limit + 1
		info.TotalPages = (total + limit - 1) / limit
	}

	info.HasNext = info.Page < info.TotalPages
	info.HasPrev = info.Page > 1

	return info
}

// Page wraps an already sliced page of items. It never re-slices.
func Page[T any](items []T, total, skip, limit int, message string, metadata map[string]any) Reply {
	if message == "" {
		message = MessageSuccess
	}
	if items == nil {
		items = []T{}
	}

	return Reply{
		Status: http.StatusOK,
		Body: PaginatedEnvelope[T]{
			Success:    true,
			Message:    message,
			Items:      items,
			Pagination: CalculatePageInfo(total, skip, limit),
			Metadata:   metadata,
		},
	}
}

// PageFromParams is Page reading skip and limit from params
func PageFromParams[T any](items []T, total int, params PageParams, message string, metadata map[string]any) Reply {
	return Page(items, total, params.Skip, params.Limit, message, metadata)
}

package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePageInfo(t *testing.T) {
	tests := []struct {
		name               string
		total, skip, limit int
		want               PageInfo
	}{
		{
			name: "empty result",
			total: 0, skip: 0, limit: 10,
			want: PageInfo{Page: 1, PageSize: 10, TotalPages: 0, HasNext: false, HasPrev: false, Total: 0},
		},
		{
			name: "last partial page",
			total: 25, skip: 20, limit: 10,
			want: PageInfo{Page: 3, PageSize: 10, TotalPages: 3, HasNext: false, HasPrev: true, Total: 25},
		},
		{
			name: "first page of many",
			total: 25, skip: 0, limit: 10,
			want: PageInfo{Page: 1, PageSize: 10, TotalPages: 3, HasNext: true, HasPrev: false, Total: 25},
		},
		{
			name: "middle page",
			total: 25, skip: 10, limit: 10,
			want: PageInfo{Page: 2, PageSize: 10, TotalPages: 3, HasNext: true, HasPrev: true, Total: 25},
		},
		{
			name: "skip not aligned to limit",
			total: 8, skip: 3, limit: 2,
			want: PageInfo{Page: 2, PageSize: 2, TotalPages: 4, HasNext: true, HasPrev: true, Total: 8},
		},
		{
			name: "exact multiple",
			total: 30, skip: 20, limit: 10,
			want: PageInfo{Page: 3, PageSize: 10, TotalPages: 3, HasNext: false, HasPrev: true, Total: 30},
		},
		{
			name: "zero limit does not divide",
			total: 25, skip: 5, limit: 0,
			want: PageInfo{Page: 1, PageSize: 0, TotalPages: 0, HasNext: false, HasPrev: false, Total: 25},
		},
		{
			name: "skip beyond total",
			total: 5, skip: 50, limit: 10,
			want: PageInfo{Page: 6, PageSize: 10, TotalPages: 1, HasNext: false, HasPrev: true, Total: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculatePageInfo(tt.total, tt.skip, tt.limit))
		})
	}
}

func TestCalculatePageInfo_DerivedFieldsHoldForAllInputs(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for limit := 1; limit <= 12; limit++ {
			for skip := 0; skip <= 45; skip += 3 {
				info := CalculatePageInfo(total, skip, limit)

				require.Equal(t, (total+limit-1)/limit, info.TotalPages)
				require.Equal(t, info.Page < info.TotalPages, info.HasNext)
				require.Equal(t, info.Page > 1, info.HasPrev)
			}
		}
	}
}

func TestPage_DoesNotReslice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	reply := Page(items, 25, 20, 10, "", nil)

	envelope, ok := reply.Body.(PaginatedEnvelope[int])
	require.True(t, ok)
	assert.Equal(t, items, envelope.Items)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Success", envelope.Message)
	assert.Equal(t, 3, envelope.Pagination.Page)
	assert.False(t, envelope.Pagination.HasNext)
	assert.True(t, envelope.Pagination.HasPrev)
}

func TestPage_EmptyItemsSerializeAsArray(t *testing.T) {
	body := decodeBody(t, Page[string](nil, 0, 0, 10, "", nil).Body)

	assert.Equal(t, []any{}, body["items"])
	assert.NotContains(t, body, "metadata")

	pagination, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(0), pagination["total_pages"])
	assert.Equal(t, false, pagination["has_next"])
	assert.Equal(t, false, pagination["has_prev"])
}

func TestPageFromParams(t *testing.T) {
	reply := PageFromParams([]string{"a"}, 3, PageParams{Skip: 2, Limit: 1}, "Found", map[string]any{"q": "a"})

	body := decodeBody(t, reply.Body)
	assert.Equal(t, "Found", body["message"])
	assert.Equal(t, map[string]any{"q": "a"}, body["metadata"])

	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(3), pagination["page"])
	assert.Equal(t, float64(1), pagination["page_size"])
	assert.Equal(t, float64(3), pagination["total"])
}

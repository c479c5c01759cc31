package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/issue-tracker/internal/pagination"
)

func TestPaginateWindows(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	page1 := pagination.Paginate(items, 1, 10)
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, 0, page1.Items[0])
	assert.Equal(t, 3, page1.Meta.TotalPages)
	assert.Equal(t, int64(25), page1.Meta.TotalItems)
	assert.False(t, page1.Meta.HasPrevPage)
	assert.True(t, page1.Meta.HasNextPage)

	page2 := pagination.Paginate(items, 2, 10)
	assert.Len(t, page2.Items, 10)
	assert.Equal(t, 10, page2.Items[0])
	assert.True(t, page2.Meta.HasPrevPage)
	assert.True(t, page2.Meta.HasNextPage)

	page3 := pagination.Paginate(items, 3, 10)
	assert.Len(t, page3.Items, 5)
	assert.Equal(t, 20, page3.Items[0])
	assert.True(t, page3.Meta.HasPrevPage)
	assert.False(t, page3.Meta.HasNextPage)
}

func TestPaginateEmptyCollection(t *testing.T) {
	result := pagination.Paginate([]string{}, 1, 10)
	assert.Empty(t, result.Items)
	assert.Equal(t, 1, result.Meta.TotalPages)
	assert.Equal(t, int64(0), result.Meta.TotalItems)
	assert.False(t, result.Meta.HasPrevPage)
	assert.False(t, result.Meta.HasNextPage)
}

func TestPaginatePastLastPage(t *testing.T) {
	items := []int{1, 2, 3}
	result := pagination.Paginate(items, 5, 10)
	assert.Empty(t, result.Items)
	assert.Equal(t, 1, result.Meta.TotalPages)
	assert.True(t, result.Meta.HasPrevPage)
	assert.False(t, result.Meta.HasNextPage)
}

func TestComputeNormalizesInputs(t *testing.T) {
	meta := pagination.Compute(10, 0, 0)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 1, meta.PerPage)
	assert.Equal(t, 10, meta.TotalPages)
	assert.Equal(t, 0, meta.Offset())
}

func TestComputeCeilDivision(t *testing.T) {
	assert.Equal(t, 3, pagination.Compute(21, 1, 10).TotalPages)
	assert.Equal(t, 2, pagination.Compute(20, 1, 10).TotalPages)
	assert.Equal(t, 1, pagination.Compute(1, 1, 10).TotalPages)
}

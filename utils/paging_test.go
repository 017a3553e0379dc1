package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"valid values pass through", 3, 20, 3, 20},
		{"zero page defaults", 0, 20, 1, 20},
		{"negative page defaults", -5, 20, 1, 20},
		{"zero page size defaults", 1, 0, 1, 5},
		{"oversized page size clamps", 1, 1000, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := NormalizePaging(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestNewPagedResult(t *testing.T) {
	result := NewPagedResult([]string{"a", "b"}, 2, 5, 12)

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 5, result.PageSize)
	assert.EqualValues(t, 12, result.TotalCount)
	assert.Equal(t, 3, result.TotalPages, "12 rows at page size 5 should span 3 pages")
	assert.Len(t, result.Items, 2)
}

func TestNewPagedResultEmpty(t *testing.T) {
	result := NewPagedResult([]int{}, 1, 5, 0)

	assert.Equal(t, 0, result.TotalPages)
	assert.Empty(t, result.Items)
}

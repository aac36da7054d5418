package queryfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderEmpty(t *testing.T) {
	b := New()
	assert.Equal(t, "", b.WhereClause())
	assert.Empty(t, b.Args())
}

func TestBuilderSkipsEmptyValues(t *testing.T) {
	b := New().
		Equal("wl.status", "").
		Substring("", "wl.location_code").
		DateBetween("wl.created_at", "2025-01-01", "")

	assert.Equal(t, "", b.WhereClause())
	assert.Empty(t, b.Args())
}

func TestBuilderComposesConditions(t *testing.T) {
	b := New().
		Equal("wl.user_id", "user-1").
		Substring("greenhouse", "wl.location_code", "wl.position_name").
		Equal("wl.status", "pending").
		DateBetween("wl.created_at", "2025-03-01", "2025-03-31")

	expected := " WHERE wl.user_id = $1" +
		" AND (wl.location_code ILIKE $2 OR wl.position_name ILIKE $2)" +
		" AND wl.status = $3" +
		" AND DATE(wl.created_at) BETWEEN $4 AND $5"
	assert.Equal(t, expected, b.WhereClause())
	assert.Equal(t, []interface{}{"user-1", "%greenhouse%", "pending", "2025-03-01", "2025-03-31"}, b.Args())
}

func TestBuilderLimitOffsetContinuesNumbering(t *testing.T) {
	b := New().Equal("status", "approved")
	page := NormalizePage(3, 20, 100)

	fragment := b.LimitOffset(page)

	assert.Equal(t, " LIMIT $2 OFFSET $3", fragment)
	assert.Equal(t, []interface{}{"approved", 20, 40}, b.Args())
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Limit: 20}, NormalizePage(0, 20, 100))
	assert.Equal(t, Page{Number: 1, Limit: 1}, NormalizePage(-5, 0, 100))
	assert.Equal(t, Page{Number: 2, Limit: 100}, NormalizePage(2, 500, 100))
	assert.Equal(t, Page{Number: 4, Limit: 20}, NormalizePage(4, 20, 100))
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       Page
		totalPages int64
	}{
		{"exact multiple", 40, Page{Number: 1, Limit: 20}, 2},
		{"partial last page", 45, Page{Number: 1, Limit: 20}, 3},
		{"single row", 1, Page{Number: 1, Limit: 20}, 1},
		{"no rows", 0, Page{Number: 1, Limit: 20}, 0},
		{"page past the end keeps the same block", 45, Page{Number: 4, Limit: 20}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.page)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.page.Number, p.Page)
			assert.Equal(t, tt.page.Limit, p.Limit)
			assert.Equal(t, tt.totalPages, p.TotalPages)
		})
	}
}

// Package queryfilter turns declarative search filters into parameterized SQL
// fragments plus a matching pagination block. Both the work-log and inventory
// repositories build their list queries through it so that the data query,
// the count query, and the pagination metadata always agree.
package queryfilter

import (
	"strconv"
	"strings"
)

// Builder accumulates parameterized WHERE conditions. The zero value is ready
// to use; methods are no-ops for empty filter values so callers can chain
// every optional filter unconditionally.
type Builder struct {
	conds []string
	args  []interface{}
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// bind registers an argument and returns its positional placeholder ($1, $2, ...).
func (b *Builder) bind(v interface{}) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// Equal adds `column = $n` when value is non-empty.
func (b *Builder) Equal(column, value string) *Builder {
	if value == "" {
		return b
	}
	b.conds = append(b.conds, column+" = "+b.bind(value))
	return b
}

// Substring adds a case-insensitive substring match against one or more
// columns, OR-ed together and sharing a single bound pattern.
func (b *Builder) Substring(value string, columns ...string) *Builder {
	if value == "" || len(columns) == 0 {
		return b
	}
	placeholder := b.bind("%" + value + "%")
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col + " ILIKE " + placeholder
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
	return b
}

// DateBetween adds an inclusive `DATE(column) BETWEEN $n AND $m` range.
// Both bounds must be present; a half-open range is ignored, matching the
// search contract where startDate and endDate travel together.
func (b *Builder) DateBetween(column, startDate, endDate string) *Builder {
	if startDate == "" || endDate == "" {
		return b
	}
	from := b.bind(startDate)
	to := b.bind(endDate)
	b.conds = append(b.conds, "DATE("+column+") BETWEEN "+from+" AND "+to)
	return b
}

// WhereClause renders the accumulated conditions, leading with " WHERE ".
// Returns the empty string when no condition was added.
func (b *Builder) WhereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Args returns the bound arguments in placeholder order.
func (b *Builder) Args() []interface{} {
	return b.args
}

// LimitOffset appends LIMIT/OFFSET placeholders for the given page and
// returns the rendered fragment. Must be called after all filters so the
// placeholder numbering stays in sync with Args.
func (b *Builder) LimitOffset(p Page) string {
	limit := b.bind(p.Limit)
	offset := b.bind(p.Offset())
	return " LIMIT " + limit + " OFFSET " + offset
}

// Page is normalized pagination input.
type Page struct {
	Number int
	Limit  int
}

// NormalizePage clamps raw page/limit input: page floors at 1, limit floors
// at 1 and caps at maxLimit.
func NormalizePage(page, limit, maxLimit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Page{Number: page, Limit: limit}
}

// Offset converts the page number into a row offset.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Pagination is the response metadata block. Total is the count of matching
// rows before LIMIT/OFFSET; TotalPages is ceil(Total/Limit). Requesting a
// page past TotalPages is not an error, it simply yields no rows alongside
// the same block.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination computes the pagination block for a result set.
func NewPagination(total int64, p Page) Pagination {
	totalPages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		totalPages++
	}
	return Pagination{
		Total:      total,
		Page:       p.Number,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}
}

package pagination

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params describes one page of a listing.
type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination block returned alongside list results.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Normalize clamps page and limit into their allowed ranges,
// applying defaults for missing values.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Skip returns the number of documents to skip for this page.
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// NewMeta computes the meta block for a total row count.
func NewMeta(p Params, total int64) Meta {
	totalPages := int(math.Ceil(float64(total) / float64(p.Limit)))
	return Meta{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}

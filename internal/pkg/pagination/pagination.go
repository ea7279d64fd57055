// Package pagination turns page/limit query values into SQL offsets and
// builds the meta block that list endpoints return.
package pagination

import "github.com/gofiber/fiber/v2"

const (
	// DefaultLimit applies when the client sends no usable limit
	DefaultLimit = 20
	// MaxLimit caps the page size a client may ask for
	MaxLimit = 100
)

// Params is a normalized page request
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// Meta describes where a page sits in the full result set
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Response wraps one page of items with its meta
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta"`
}

// GetParams reads ?page= and ?limit=. Non-numeric values fall back to the defaults.
func GetParams(c *fiber.Ctx) *Params {
	return New(c.QueryInt("page", 1), c.QueryInt("limit", DefaultLimit))
}

// New clamps page to >= 1 and limit to 1..MaxLimit, substituting
// DefaultLimit for a non-positive limit.
func New(page, limit int) *Params {
	page = max(page, 1)
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	return &Params{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// GetMeta computes page counts for total rows
func GetMeta(params *Params, total int64) *Meta {
	pages := pageCount(total, params.Limit)
	return &Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    params.Page < pages,
		HasPrev:    params.Page > 1,
	}
}

// NewResponse pairs data with the meta for params and total
func NewResponse(data any, params *Params, total int64) *Response {
	return &Response{Data: data, Meta: GetMeta(params, total)}
}

func pageCount(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

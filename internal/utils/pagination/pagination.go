// Package pagination holds the one page shape every listing endpoint and
// service shares: the requested window plus the totals filled in after the
// query ran.
package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Page struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// New clamps page and limit to usable values.
func New(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return Page{Page: page, Limit: limit}
}

// ParseFromRequest reads page and limit query parameters.
func ParseFromRequest(c *fiber.Ctx) Page {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	return New(page, limit)
}

// Offset returns the row offset of the page window.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// SetTotal records the total row count and derives the page count.
func (p *Page) SetTotal(total int64) {
	p.Total = total
	p.TotalPages = total / int64(p.Limit)
	if total%int64(p.Limit) > 0 {
		p.TotalPages++
	}
}

// Response wraps list data with its pagination metadata.
func Response(p Page, data interface{}) fiber.Map {
	return fiber.Map{
		"data": data,
		"meta": p,
	}
}

package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Options struct {
	DefaultPerPage int
	MaxPerPage     int
}

// ===== Preset =====
var (
	FeedOpts    = Options{DefaultPerPage: 50, MaxPerPage: 50}
	DefaultOpts = Options{DefaultPerPage: 20, MaxPerPage: 100}
)

type Paging struct {
	Page    int
	PerPage int
}

func (p Paging) Limit() int  { return p.PerPage }
func (p Paging) Offset() int { return (p.Page - 1) * p.PerPage }

// ResolvePaging reads ?page= and ?per_page= (alias ?limit=) and clamps them to opt.
func ResolvePaging(c *fiber.Ctx, opt Options) Paging {
	page := atoiDefault(strings.TrimSpace(c.Query("page")), 1)
	if page < 1 {
		page = 1
	}

	perRaw := strings.TrimSpace(c.Query("per_page"))
	if perRaw == "" {
		perRaw = strings.TrimSpace(c.Query("limit"))
	}
	per := atoiDefault(perRaw, opt.DefaultPerPage)
	if per < 1 {
		per = opt.DefaultPerPage
	}
	if opt.MaxPerPage > 0 && per > opt.MaxPerPage {
		per = opt.MaxPerPage
	}
	return Paging{Page: page, PerPage: per}
}

// BuildPagination describes a page whose total is known.
func BuildPagination(total int64, p Paging, count int) Pagination {
	totalPages := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	return Pagination{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
		Count:      count,
	}
}

// BuildWindowPagination is used by feeds where counting the whole table is not worth it;
// the query fetches PerPage+1 rows and hasMore tells whether the extra row existed.
func BuildWindowPagination(p Paging, count int, hasMore bool) Pagination {
	return Pagination{
		Page:    p.Page,
		PerPage: p.PerPage,
		HasNext: hasMore,
		HasPrev: p.Page > 1,
		Count:   count,
	}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

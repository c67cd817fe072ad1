// file: internals/helpers/pagination.go
package helper

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

/* ===============================
   Params (POST body of list endpoints)
=================================*/

type Params struct {
	Page       int
	PageSize   int // as sent by the client (before clamping)
	SortBy     string
	SortOrder  string // asc|desc
	SearchText string
}

// listDecoder keeps numbers as json.Number so page values are read exactly.
var listDecoder = sonic.Config{UseNumber: true}.Froze()

// ParseListBody reads {page, pageSize, order_by_field, order_by_value, search_text}.
// Malformed or missing numbers fall back to page=1 / pageSize=10.
func ParseListBody(body []byte) Params {
	raw := map[string]any{}
	if len(strings.TrimSpace(string(body))) > 0 {
		_ = listDecoder.Unmarshal(body, &raw)
	}

	p := Params{
		Page:       anyToInt(raw["page"], DefaultPage),
		PageSize:   anyToInt(raw["pageSize"], DefaultPageSize),
		SortBy:     strings.TrimSpace(anyToString(raw["order_by_field"])),
		SortOrder:  "desc",
		SearchText: strings.TrimSpace(anyToString(raw["search_text"])),
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 0 {
		p.PageSize = DefaultPageSize
	}
	if p.SortBy == "" {
		p.SortBy = "id"
	}
	if strings.EqualFold(strings.TrimSpace(anyToString(raw["order_by_value"])), "asc") {
		p.SortOrder = "asc"
	}
	return p
}

// EffectivePageSize clamps to MaxPageSize. Zero means "no paging".
func (p Params) EffectivePageSize() int {
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

func (p Params) Limit() int { return p.EffectivePageSize() }

func (p Params) Offset() int {
	size := p.EffectivePageSize()
	if size <= 0 {
		return 0
	}
	return (p.Page - 1) * size
}

// SafeOrderClause resolves SortBy against a whitelist, falling back to defaultKey.
func (p Params) SafeOrderClause(allowed map[string]string, defaultKey string) string {
	col, ok := allowed[p.SortBy]
	if !ok {
		if col, ok = allowed[defaultKey]; !ok {
			col = defaultKey
		}
	}
	dir := "DESC"
	if strings.ToLower(p.SortOrder) == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}

/* ===============================
   Meta
=================================*/

type Meta struct {
	Count     int64
	Page      int
	PageSize  int
	NoOfPages int
}

func BuildMeta(total int64, p Params) Meta {
	size := p.EffectivePageSize()
	pages := 1
	if size > 0 {
		pages = int(math.Ceil(float64(total) / float64(size)))
	}
	if total == 0 {
		pages = 0
	}
	return Meta{Count: total, Page: p.Page, PageSize: size, NoOfPages: pages}
}

func (m Meta) Map() fiber.Map {
	return fiber.Map{
		"count":       m.Count,
		"page":        m.Page,
		"pageSize":    m.PageSize,
		"no_of_pages": m.NoOfPages,
	}
}

/* ===============================
   Search + sort + paginate
=================================*/

type ListOptions struct {
	Search   []string          // SQL expressions matched with OR
	Sortable map[string]string // api field → SQL column
	Preload  []string
}

// Paginate filters q by p.SearchText, orders it and loads one page into dest.
// An empty filtered set returns without running the page query.
func Paginate(q *gorm.DB, p Params, o ListOptions, dest any) (Meta, error) {
	if p.SearchText != "" && len(o.Search) > 0 {
		like := "%" + EscapeLike(strings.ToLower(p.SearchText)) + "%"
		conds := make([]string, 0, len(o.Search))
		args := make([]any, 0, len(o.Search))
		for _, expr := range o.Search {
			conds = append(conds, "LOWER("+expr+") LIKE ? ESCAPE '\\'")
			args = append(args, like)
		}
		q = q.Where("("+strings.Join(conds, " OR ")+")", args...)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Meta{}, err
	}
	meta := BuildMeta(total, p)
	if total == 0 {
		return meta, nil
	}

	page := q.Session(&gorm.Session{}).Order(p.SafeOrderClause(o.Sortable, "id"))
	for _, rel := range o.Preload {
		page = page.Preload(rel)
	}
	if size := p.Limit(); size > 0 {
		page = page.Limit(size).Offset(p.Offset())
	}
	if err := page.Find(dest).Error; err != nil {
		return Meta{}, err
	}
	return meta, nil
}

// EscapeLike escapes LIKE wildcards so they match literally (escape char '\').
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

/* ===============================
   Internal helpers
=================================*/

func anyToInt(v any, def int) int {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil {
			return int(f)
		}
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return def
}

func anyToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	}
	return ""
}

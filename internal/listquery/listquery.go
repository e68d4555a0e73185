// Package listquery parses the generic list parameters every resource
// list endpoint accepts (limit, offset, sort, order) and pins the sort
// column to a per-resource whitelist so user input never reaches SQL
// identifiers.
package listquery

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	defaultLimit = 25
	maxLimit     = 200
)

// Params is the normalized list window. Sort is a whitelisted column
// name; Order is "ASC" or "DESC".
type Params struct {
	Limit  int
	Offset int
	Sort   string
	Order  string
}

// Parse reads limit/offset/sort/order from the request. Unknown sort
// columns fall back to defaultSort, out-of-range limits are clamped,
// and anything other than desc becomes ASC.
func Parse(c echo.Context, allowedSort map[string]bool, defaultSort string) Params {
	p := Params{Limit: defaultLimit, Sort: defaultSort, Order: "ASC"}

	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = n
		}
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.Offset = n
		}
	}
	if v := strings.TrimSpace(c.QueryParam("sort")); v != "" && allowedSort[v] {
		p.Sort = v
	}
	if strings.EqualFold(c.QueryParam("order"), "desc") {
		p.Order = "DESC"
	}
	return p
}

package handler // handler defines the HTTP handlers for the admin API

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every database call issued from a handler.
const dbTimeoutSeconds = 5

// currentUserID extracts the authenticated user ID stored in the
// context by the JWT middleware. JWT numeric claims decode as float64;
// some issuers encode numbers as strings, handle both.
func currentUserID(c echo.Context) uint64 {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v)
	case string:
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			return parsed
		}
	}
	return 0
}

// pathID parses the :id path parameter. Zero means absent or invalid;
// callers answer 400.
func pathID(c echo.Context) uint64 {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// pathParamID parses a named path parameter as an ID.
func pathParamID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// listResponse is the generic list envelope: a page of items plus the
// unpaged total.
type listResponse struct {
	Data  any `json:"data"`
	Total int `json:"total"`
}

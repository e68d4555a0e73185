package listquery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

var allowed = map[string]bool{"id": true, "starts_at": true}

func ctxWithQuery(t *testing.T, query string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParseDefaults(t *testing.T) {
	p := Parse(ctxWithQuery(t, ""), allowed, "id")
	if p.Limit != 25 || p.Offset != 0 || p.Sort != "id" || p.Order != "ASC" {
		t.Fatalf("defaults = %+v", p)
	}
}

func TestParseClampsLimit(t *testing.T) {
	p := Parse(ctxWithQuery(t, "limit=5000"), allowed, "id")
	if p.Limit != 200 {
		t.Fatalf("limit = %d, want 200", p.Limit)
	}
	p = Parse(ctxWithQuery(t, "limit=-3"), allowed, "id")
	if p.Limit != 25 {
		t.Fatalf("negative limit must fall back to default, got %d", p.Limit)
	}
}

func TestParseSortWhitelist(t *testing.T) {
	p := Parse(ctxWithQuery(t, "sort=starts_at&order=desc"), allowed, "id")
	if p.Sort != "starts_at" || p.Order != "DESC" {
		t.Fatalf("parsed = %+v", p)
	}

	// Anything off the whitelist falls back to the default; this is
	// what keeps user input out of the ORDER BY clause.
	p = Parse(ctxWithQuery(t, "sort=password"), allowed, "id")
	if p.Sort != "id" {
		t.Fatalf("sort = %q, want default", p.Sort)
	}
}

func TestParseOrderOnlyDesc(t *testing.T) {
	p := Parse(ctxWithQuery(t, "order=sideways"), allowed, "id")
	if p.Order != "ASC" {
		t.Fatalf("order = %q, want ASC", p.Order)
	}
	p = Parse(ctxWithQuery(t, "order=DESC"), allowed, "id")
	if p.Order != "DESC" {
		t.Fatalf("order is case-insensitive, got %q", p.Order)
	}
}

func TestParseOffset(t *testing.T) {
	p := Parse(ctxWithQuery(t, "offset=50"), allowed, "id")
	if p.Offset != 50 {
		t.Fatalf("offset = %d, want 50", p.Offset)
	}
	p = Parse(ctxWithQuery(t, "offset=-1"), allowed, "id")
	if p.Offset != 0 {
		t.Fatalf("negative offset must stay 0, got %d", p.Offset)
	}
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/cache"
	"github.com/turfbook/match-admin/internal/recurrence"
	"github.com/turfbook/match-admin/internal/repository"
)

// AccountingHandler serves the finance reports. The by-city and
// by-football-chief breakdowns sit behind a no-eviction cache keyed on
// (report, from, to): the ranges finance queries are historical and
// immutable, and a process restart is the accepted invalidation. The
// summary and cancelled-matches views are always fresh because the
// current day mutates under them.
type AccountingHandler struct {
	Accounting *repository.AccountingRepo
	cityCache  *cache.Cache[[]repository.CityRevenue]
	chiefCache *cache.Cache[[]repository.ChiefRevenue]
	now        func() time.Time
}

func NewAccountingHandler(accounting *repository.AccountingRepo) *AccountingHandler {
	return &AccountingHandler{
		Accounting: accounting,
		cityCache:  cache.New[[]repository.CityRevenue](0),
		chiefCache: cache.New[[]repository.ChiefRevenue](0),
		now:        time.Now,
	}
}

// dateRange reads ?from= and ?to= (YYYY-MM-DD, inclusive). Missing
// values default to the last 30 days.
func (h *AccountingHandler) dateRange(c echo.Context) (string, string, string) {
	from := c.QueryParam("from")
	to := c.QueryParam("to")
	if from == "" || to == "" {
		now := h.now().UTC()
		to = now.Format(recurrence.DateLayout)
		from = now.AddDate(0, 0, -30).Format(recurrence.DateLayout)
		return from, to, ""
	}
	f, err := time.Parse(recurrence.DateLayout, from)
	if err != nil {
		return "", "", "from must be YYYY-MM-DD"
	}
	t, err := time.Parse(recurrence.DateLayout, to)
	if err != nil {
		return "", "", "to must be YYYY-MM-DD"
	}
	if t.Before(f) {
		return "", "", "to must not precede from"
	}
	return from, to, ""
}

// Summary answers the platform-wide money view for the range.
func (h *AccountingHandler) Summary(c echo.Context) error {
	from, to, msg := h.dateRange(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	s, err := h.Accounting.Summary(ctx, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// ByCity answers the per-city revenue breakdown, cached per range.
func (h *AccountingHandler) ByCity(c echo.Context) error {
	from, to, msg := h.dateRange(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	key := cache.Key{Report: "by_city", From: from, To: to}
	if rows, ok := h.cityCache.Get(key); ok {
		return c.JSON(http.StatusOK, echo.Map{"from": from, "to": to, "cities": rows, "cached": true})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	rows, err := h.Accounting.ByCity(ctx, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	h.cityCache.Set(key, rows)
	return c.JSON(http.StatusOK, echo.Map{"from": from, "to": to, "cities": rows, "cached": false})
}

// ByFootballChief answers the per-chief revenue breakdown, cached per
// range.
func (h *AccountingHandler) ByFootballChief(c echo.Context) error {
	from, to, msg := h.dateRange(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	key := cache.Key{Report: "by_football_chief", From: from, To: to}
	if rows, ok := h.chiefCache.Get(key); ok {
		return c.JSON(http.StatusOK, echo.Map{"from": from, "to": to, "chiefs": rows, "cached": true})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	rows, err := h.Accounting.ByFootballChief(ctx, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	h.chiefCache.Set(key, rows)
	return c.JSON(http.StatusOK, echo.Map{"from": from, "to": to, "chiefs": rows, "cached": false})
}

// CancelledMatches lists cancelled matches in the range with refund
// totals.
func (h *AccountingHandler) CancelledMatches(c echo.Context) error {
	from, to, msg := h.dateRange(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	rows, err := h.Accounting.CancelledMatches(ctx, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"from": from, "to": to, "matches": rows})
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/model"
	"github.com/turfbook/match-admin/internal/recurrence"
	"github.com/turfbook/match-admin/internal/repository"
)

// SeasonHandler manages leaderboard seasons.
type SeasonHandler struct {
	Seasons *repository.SeasonRepo
}

func NewSeasonHandler(seasons *repository.SeasonRepo) *SeasonHandler {
	return &SeasonHandler{Seasons: seasons}
}

type seasonResp struct {
	ID       uint64 `json:"seasonId"`
	Name     string `json:"name"`
	StartsOn string `json:"startsOn"`
	EndsOn   string `json:"endsOn"`
	IsActive bool   `json:"isActive"`
}

func toSeasonResp(s model.Season) seasonResp {
	return seasonResp{ID: s.ID, Name: s.Name, StartsOn: s.StartsOn, EndsOn: s.EndsOn, IsActive: s.IsActive}
}

// List returns every season, newest first.
func (h *SeasonHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	seasons, err := h.Seasons.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]seasonResp, 0, len(seasons))
	for _, s := range seasons {
		out = append(out, toSeasonResp(s))
	}
	return c.JSON(http.StatusOK, listResponse{Data: out, Total: len(out)})
}

type seasonReq struct {
	Name     string `json:"name"`
	StartsOn string `json:"startsOn"`
	EndsOn   string `json:"endsOn"`
}

// Create registers a new season. It starts inactive; activation is a
// separate explicit action.
func (h *SeasonHandler) Create(c echo.Context) error {
	var req seasonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	starts, err := time.Parse(recurrence.DateLayout, req.StartsOn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "startsOn must be YYYY-MM-DD"})
	}
	ends, err := time.Parse(recurrence.DateLayout, req.EndsOn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "endsOn must be YYYY-MM-DD"})
	}
	if ends.Before(starts) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "endsOn must not precede startsOn"})
	}

	s := model.Season{Name: req.Name, StartsOn: req.StartsOn, EndsOn: req.EndsOn}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	if err := h.Seasons.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create season failed"})
	}
	return c.JSON(http.StatusCreated, toSeasonResp(s))
}

// Activate makes the season the single active one.
func (h *SeasonHandler) Activate(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	if err := h.Seasons.Activate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSeasonNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "season not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "activate season failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"seasonId": id, "isActive": true})
}

// Recalculate rewrites the points column for every stat line inside
// the season from the current weighting.
func (h *SeasonHandler) Recalculate(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	s, err := h.Seasons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSeasonNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "season not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	updated, err := h.Seasons.RecalculatePoints(ctx, s)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "recalculate failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"seasonId": id, "updatedRows": updated})
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/listquery"
	"github.com/turfbook/match-admin/internal/model"
	"github.com/turfbook/match-admin/internal/repository"
)

// VenueHandler manages venue records.
type VenueHandler struct {
	Venues *repository.VenueRepo
}

func NewVenueHandler(venues *repository.VenueRepo) *VenueHandler {
	return &VenueHandler{Venues: venues}
}

var venueSortCols = map[string]bool{
	"id": true, "name": true, "city": true, "created_at": true,
}

type venueReq struct {
	Name      string `json:"name"`
	City      string `json:"city"`
	Address   string `json:"address"`
	PitchType string `json:"pitchType"`
	IsActive  *bool  `json:"isActive"`
}

type venueResp struct {
	ID        uint64 `json:"venueId"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Address   string `json:"address"`
	PitchType string `json:"pitchType"`
	IsActive  bool   `json:"isActive"`
}

func toVenueResp(v model.Venue) venueResp {
	return venueResp{ID: v.ID, Name: v.Name, City: v.City, Address: v.Address, PitchType: v.PitchType, IsActive: v.IsActive}
}

// List returns a page of venues, optionally filtered by ?city=.
func (h *VenueHandler) List(c echo.Context) error {
	p := listquery.Parse(c, venueSortCols, "name")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	venues, total, err := h.Venues.List(ctx, c.QueryParam("city"), p.Limit, p.Offset, p.Sort, p.Order)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]venueResp, 0, len(venues))
	for _, v := range venues {
		out = append(out, toVenueResp(v))
	}
	return c.JSON(http.StatusOK, listResponse{Data: out, Total: total})
}

// Get returns one venue.
func (h *VenueHandler) Get(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toVenueResp(*v))
}

// Create registers a venue.
func (h *VenueHandler) Create(c echo.Context) error {
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.City == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and city are required"})
	}

	v := model.Venue{Name: req.Name, City: req.City, Address: req.Address, PitchType: req.PitchType, IsActive: true}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	if err := h.Venues.Create(ctx, &v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create venue failed"})
	}
	return c.JSON(http.StatusCreated, toVenueResp(v))
}

// Update rewrites a venue's fields.
func (h *VenueHandler) Update(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.City == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and city are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	v.Name = req.Name
	v.City = req.City
	v.Address = req.Address
	v.PitchType = req.PitchType
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}

	if err := h.Venues.Update(ctx, v); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update venue failed"})
	}
	return c.JSON(http.StatusOK, toVenueResp(*v))
}

// Delete removes a venue that has no matches scheduled.
func (h *VenueHandler) Delete(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	if err := h.Venues.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrVenueNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "venue has matches scheduled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete venue failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

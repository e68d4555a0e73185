package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/bucket"
	"github.com/turfbook/match-admin/internal/listquery"
	"github.com/turfbook/match-admin/internal/model"
	"github.com/turfbook/match-admin/internal/repository"
)

// MatchHandler bundles dependencies for the match resource.
type MatchHandler struct {
	Matches *repository.MatchRepo
	now     func() time.Time
}

// NewMatchHandler constructs a MatchHandler.
func NewMatchHandler(matches *repository.MatchRepo) *MatchHandler {
	return &MatchHandler{Matches: matches, now: time.Now}
}

var matchSortCols = map[string]bool{
	"id": true, "starts_at": true, "ends_at": true, "status": true, "venue_id": true,
}

type matchResp struct {
	ID              uint64    `json:"matchId"`
	VenueID         uint64    `json:"venueId"`
	FootballChiefID uint64    `json:"footballChiefId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	MatchType       string    `json:"matchType"`
	PlayerCapacity  uint32    `json:"playerCapacity"`
	SlotPrice       uint32    `json:"slotPrice"`
	OfferPrice      uint32    `json:"offerPrice"`
	Status          string    `json:"status"`
}

func toMatchResp(m model.Match) matchResp {
	return matchResp{
		ID:              m.ID,
		VenueID:         m.VenueID,
		FootballChiefID: m.FootballChiefID,
		StartTime:       m.StartsAt,
		EndTime:         m.EndsAt,
		MatchType:       m.MatchType,
		PlayerCapacity:  m.PlayerCapacity,
		SlotPrice:       m.SlotPriceCents,
		OfferPrice:      m.OfferPriceCents,
		Status:          m.Status,
	}
}

// List serves the match list for one bucket tab. The tab fully
// determines the time window and status predicate; every request
// re-derives them from the current clock, so switching tabs is always
// a fresh query and nothing is cached across tabs.
func (h *MatchHandler) List(c echo.Context) error {
	tab := bucket.Tab(c.QueryParam("tab"))
	if tab == "" {
		tab = bucket.TabUpcoming
	}
	w, err := bucket.For(h.now(), tab)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown tab"})
	}

	p := listquery.Parse(c, matchSortCols, "starts_at")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	matches, total, err := h.Matches.ListByWindow(ctx, w, p.Limit, p.Offset, p.Sort, p.Order)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]matchResp, 0, len(matches))
	for _, m := range matches {
		out = append(out, toMatchResp(m))
	}
	return c.JSON(http.StatusOK, listResponse{Data: out, Total: total})
}

// Get returns one match.
func (h *MatchHandler) Get(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	m, err := h.Matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toMatchResp(*m))
}

type matchReq struct {
	VenueID         uint64    `json:"venueId"`
	FootballChiefID uint64    `json:"footballChiefId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	MatchType       string    `json:"matchType"`
	PlayerCapacity  uint32    `json:"playerCapacity"`
	SlotPrice       uint32    `json:"slotPrice"`
	OfferPrice      uint32    `json:"offerPrice"`
}

func (r *matchReq) validate() string {
	switch {
	case r.VenueID == 0:
		return "venueId required"
	case r.FootballChiefID == 0:
		return "footballChiefId required"
	case r.StartTime.IsZero() || r.EndTime.IsZero():
		return "startTime and endTime required"
	case !r.EndTime.After(r.StartTime):
		return "endTime must be after startTime"
	case r.MatchType != model.MatchTypeRecorded && r.MatchType != model.MatchTypeNonRecorded:
		return "matchType must be recorded or non_recorded"
	case r.PlayerCapacity == 0:
		return "playerCapacity must be positive"
	case r.OfferPrice > r.SlotPrice:
		return "offerPrice cannot exceed slotPrice"
	}
	return ""
}

// Create inserts a single match.
func (h *MatchHandler) Create(c echo.Context) error {
	var req matchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	m := model.Match{
		VenueID:         req.VenueID,
		FootballChiefID: req.FootballChiefID,
		StartsAt:        req.StartTime.UTC(),
		EndsAt:          req.EndTime.UTC(),
		MatchType:       req.MatchType,
		PlayerCapacity:  req.PlayerCapacity,
		SlotPriceCents:  req.SlotPrice,
		OfferPriceCents: req.OfferPrice,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	if err := h.Matches.Create(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create match failed"})
	}
	return c.JSON(http.StatusCreated, toMatchResp(m))
}

// Update rewrites a match's schedulable fields. Lifecycle status is
// owned by the cancel and stats flows and cannot be set here.
func (h *MatchHandler) Update(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req matchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	m, err := h.Matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if m.Status == model.MatchStatusCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cancelled matches cannot be edited"})
	}

	m.VenueID = req.VenueID
	m.FootballChiefID = req.FootballChiefID
	m.StartsAt = req.StartTime.UTC()
	m.EndsAt = req.EndTime.UTC()
	m.MatchType = req.MatchType
	m.PlayerCapacity = req.PlayerCapacity
	m.SlotPriceCents = req.SlotPrice
	m.OfferPriceCents = req.OfferPrice

	if err := h.Matches.Update(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update match failed"})
	}
	return c.JSON(http.StatusOK, toMatchResp(*m))
}

// Delete removes a match that never had bookings.
func (h *MatchHandler) Delete(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	if err := h.Matches.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrMatchNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "match has bookings; cancel it instead"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete match failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

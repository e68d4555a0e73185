package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/model"
	"github.com/turfbook/match-admin/internal/recurrence"
	"github.com/turfbook/match-admin/internal/repository"
)

// RecurringHandler expands recurrence specs into concrete matches.
type RecurringHandler struct {
	Matches *repository.MatchRepo
}

func NewRecurringHandler(matches *repository.MatchRepo) *RecurringHandler {
	return &RecurringHandler{Matches: matches}
}

type recurringReq struct {
	recurrence.Spec
	VenueID         uint64 `json:"venueId"`
	FootballChiefID uint64 `json:"footballChiefId"`
	MatchType       string `json:"matchType"`
	PlayerCapacity  uint32 `json:"playerCapacity"`
	SlotPrice       uint32 `json:"slotPrice"`
	OfferPrice      uint32 `json:"offerPrice"`
}

func (r *recurringReq) validateDetails() string {
	switch {
	case r.VenueID == 0:
		return "venueId required"
	case r.FootballChiefID == 0:
		return "footballChiefId required"
	case r.MatchType != model.MatchTypeRecorded && r.MatchType != model.MatchTypeNonRecorded:
		return "matchType must be recorded or non_recorded"
	case r.PlayerCapacity == 0:
		return "playerCapacity must be positive"
	case r.OfferPrice > r.SlotPrice:
		return "offerPrice cannot exceed slotPrice"
	}
	return ""
}

// Preview expands the spec without writing anything, so the operator
// sees exactly which matches submission would create. The guard checks
// run in the same order submission runs them.
func (h *RecurringHandler) Preview(c echo.Context) error {
	var req recurringReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := recurrence.Validate(req.Spec); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	previews := recurrence.Enumerate(req.Spec)
	return c.JSON(http.StatusOK, echo.Map{"count": len(previews), "matches": previews})
}

// rowError reports one skipped expansion row by its position in the
// preview order.
type rowError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// expandRows turns the enumerated previews into insertable matches,
// collecting a rowError for every row whose timestamps do not form a
// valid range. Pure; the transaction work stays in Create.
func expandRows(req recurringReq, previews []recurrence.Preview) ([]model.Match, []rowError) {
	var matches []model.Match
	rowErrors := []rowError{}
	for i, p := range previews {
		starts, err := time.Parse(recurrence.DateLayout+" 15:04", p.Date+" "+p.Start)
		if err != nil {
			rowErrors = append(rowErrors, rowError{Index: i, Message: fmt.Sprintf("%s %s: bad start time", p.Date, p.Start)})
			continue
		}
		ends, err := time.Parse(recurrence.DateLayout+" 15:04", p.Date+" "+p.End)
		if err != nil {
			rowErrors = append(rowErrors, rowError{Index: i, Message: fmt.Sprintf("%s %s: bad end time", p.Date, p.End)})
			continue
		}
		if !ends.After(starts) {
			rowErrors = append(rowErrors, rowError{Index: i, Message: fmt.Sprintf("%s %s-%s: end not after start", p.Date, p.Start, p.End)})
			continue
		}
		matches = append(matches, model.Match{
			VenueID:         req.VenueID,
			FootballChiefID: req.FootballChiefID,
			StartsAt:        starts.UTC(),
			EndsAt:          ends.UTC(),
			MatchType:       req.MatchType,
			PlayerCapacity:  req.PlayerCapacity,
			SlotPriceCents:  req.SlotPrice,
			OfferPriceCents: req.OfferPrice,
		})
	}
	return matches, rowErrors
}

// Create bulk-inserts one match per expanded instance inside a single
// transaction. A row that fails to parse its timestamps is reported and
// skipped; a database failure rolls the whole batch back.
func (h *RecurringHandler) Create(c echo.Context) error {
	var req recurringReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validateDetails(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := recurrence.Validate(req.Spec); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	previews := recurrence.Enumerate(req.Spec)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	tx, err := h.Matches.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin transaction failed"})
	}

	matches, rowErrors := expandRows(req, previews)

	var created []uint64
	for i := range matches {
		if err := h.Matches.CreateTx(ctx, tx, &matches[i]); err != nil {
			_ = tx.Rollback()
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "bulk create failed"})
		}
		created = append(created, matches[i].ID)
	}
	if len(created) == 0 {
		_ = tx.Rollback()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "the selection produces no matches", "errors": rowErrors})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"created": len(created),
		"ids":     created,
		"errors":  rowErrors,
	})
}

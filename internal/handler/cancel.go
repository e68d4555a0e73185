package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/model"
	"github.com/turfbook/match-admin/internal/queue"
	"github.com/turfbook/match-admin/internal/repository"
)

// CancelHandler owns the two-step cancellation flow: a read-only
// refund preview, then the destructive cancel that marks the match
// CANCELLED and refunds every booked participant in one transaction.
type CancelHandler struct {
	Matches      *repository.MatchRepo
	Participants *repository.ParticipantRepo
	Events       *queue.Publisher
	now          func() time.Time
}

func NewCancelHandler(matches *repository.MatchRepo, participants *repository.ParticipantRepo, events *queue.Publisher) *CancelHandler {
	return &CancelHandler{Matches: matches, Participants: participants, Events: events, now: time.Now}
}

type refundLine struct {
	ParticipantID uint64 `json:"participantId"`
	UserID        uint64 `json:"userId"`
	PaidAmount    uint32 `json:"paidAmount"`
	RefundAmount  uint32 `json:"refundAmount"`
}

type cancelPreviewResp struct {
	MatchID          uint64       `json:"matchId"`
	ParticipantCount int          `json:"participantCount"`
	TotalRefund      uint64       `json:"totalRefund"`
	Refunds          []refundLine `json:"refunds"`
}

// refundPlan computes the per-booking refunds: each BOOKED participant
// gets back exactly what they paid. Participants already REMOVED or
// REFUNDED are excluded.
func refundPlan(matchID uint64, participants []model.Participant) cancelPreviewResp {
	resp := cancelPreviewResp{MatchID: matchID, Refunds: []refundLine{}}
	for _, p := range participants {
		if p.Status != model.ParticipantStatusBooked {
			continue
		}
		resp.Refunds = append(resp.Refunds, refundLine{
			ParticipantID: p.ID,
			UserID:        p.UserID,
			PaidAmount:    p.PaidCents,
			RefundAmount:  p.PaidCents,
		})
		resp.TotalRefund += uint64(p.PaidCents)
	}
	resp.ParticipantCount = len(resp.Refunds)
	return resp
}

// Preview returns the refund breakdown cancellation would apply,
// without changing anything.
func (h *CancelHandler) Preview(c echo.Context) error {
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
	if m.Status == model.MatchStatusCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "match already cancelled"})
	}

	participants, err := h.Participants.ListByMatch(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, refundPlan(id, participants))
}

// Cancel marks the match CANCELLED and refunds every booked
// participant atomically, then publishes a cancellation event. The
// event is best-effort: a broker outage never rolls back the refund.
func (h *CancelHandler) Cancel(c echo.Context) error {
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
	if m.Status == model.MatchStatusCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "match already cancelled"})
	}

	participants, err := h.Participants.ListByMatch(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	plan := refundPlan(id, participants)

	tx, err := h.Matches.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin transaction failed"})
	}

	refunds := make(map[uint64]uint32, len(plan.Refunds))
	for _, r := range plan.Refunds {
		refunds[r.ParticipantID] = r.RefundAmount
	}
	if err := h.Participants.RefundAllForMatchTx(ctx, tx, id, refunds); err != nil {
		_ = tx.Rollback()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "refund failed"})
	}
	const q = `UPDATE matches SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status <> ?`
	if _, err := tx.ExecContext(ctx, q, model.MatchStatusCancelled, id, model.MatchStatusCancelled); err != nil {
		_ = tx.Rollback()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	if h.Events != nil {
		_ = h.Events.PublishMatchCancelled(ctx, queue.MatchCancelledEvent{
			MatchID:            id,
			VenueID:            m.VenueID,
			StartsAt:           m.StartsAt.UTC().Format(time.RFC3339),
			Participants:       uint32(plan.ParticipantCount),
			RefundedTotalCents: plan.TotalRefund,
			CancelledBy:        currentUserID(c),
			CancelledAt:        h.now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"matchId":     id,
		"status":      model.MatchStatusCancelled,
		"refunded":    plan.ParticipantCount,
		"totalRefund": plan.TotalRefund,
	})
}

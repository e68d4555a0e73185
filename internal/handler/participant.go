package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/model"
	"github.com/turfbook/match-admin/internal/repository"
)

// ParticipantHandler manages bookings on a match.
type ParticipantHandler struct {
	Matches      *repository.MatchRepo
	Participants *repository.ParticipantRepo
}

func NewParticipantHandler(matches *repository.MatchRepo, participants *repository.ParticipantRepo) *ParticipantHandler {
	return &ParticipantHandler{Matches: matches, Participants: participants}
}

type participantResp struct {
	ID          uint64  `json:"participantId"`
	MatchID     uint64  `json:"matchId"`
	UserID      uint64  `json:"userId"`
	PromoCodeID *uint64 `json:"promoCodeId"`
	PaidAmount  uint32  `json:"paidAmount"`
	RefundAmt   uint32  `json:"refundAmount"`
	Status      string  `json:"status"`
}

func toParticipantResp(p model.Participant) participantResp {
	var promoID *uint64
	if p.PromoCodeID != 0 {
		v := p.PromoCodeID
		promoID = &v
	}
	return participantResp{
		ID:          p.ID,
		MatchID:     p.MatchID,
		UserID:      p.UserID,
		PromoCodeID: promoID,
		PaidAmount:  p.PaidCents,
		RefundAmt:   p.RefundCents,
		Status:      p.Status,
	}
}

// List returns every booking on the match, oldest first.
func (h *ParticipantHandler) List(c echo.Context) error {
	matchID := pathID(c)
	if matchID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if _, err := h.Matches.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	participants, err := h.Participants.ListByMatch(ctx, matchID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]participantResp, 0, len(participants))
	for _, p := range participants {
		out = append(out, toParticipantResp(p))
	}
	return c.JSON(http.StatusOK, listResponse{Data: out, Total: len(out)})
}

type addParticipantReq struct {
	UserID      uint64  `json:"userId"`
	PromoCodeID *uint64 `json:"promoCodeId"`
	PaidAmount  uint32  `json:"paidAmount"`
}

// Add books a user onto the match. Cancelled matches and full matches
// reject the booking.
func (h *ParticipantHandler) Add(c echo.Context) error {
	matchID := pathID(c)
	if matchID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req addParticipantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	m, err := h.Matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if m.Status == model.MatchStatusCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "match is cancelled"})
	}

	existing, err := h.Participants.ListByMatch(ctx, matchID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	booked := 0
	for _, p := range existing {
		if p.Status == model.ParticipantStatusBooked {
			if p.UserID == req.UserID {
				return c.JSON(http.StatusConflict, echo.Map{"error": "user already booked"})
			}
			booked++
		}
	}
	if uint32(booked) >= m.PlayerCapacity {
		return c.JSON(http.StatusConflict, echo.Map{"error": "match is full"})
	}

	var promoID uint64
	if req.PromoCodeID != nil {
		promoID = *req.PromoCodeID
	}
	p := model.Participant{
		MatchID:     matchID,
		UserID:      req.UserID,
		PromoCodeID: promoID,
		PaidCents:   req.PaidAmount,
	}
	if err := h.Participants.Add(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add participant failed"})
	}
	return c.JSON(http.StatusCreated, toParticipantResp(p))
}

// Remove takes a booking off the match without a refund. Refunds only
// happen through the cancellation flow.
func (h *ParticipantHandler) Remove(c echo.Context) error {
	id, err := pathParamID(c, "participantId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	if err := h.Participants.Remove(ctx, id); err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "participant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove participant failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

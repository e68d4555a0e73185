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

// TicketHandler serves the support ticket workflow. Tickets are
// created in the player-facing product; the admin surface only reads
// them and moves them through the workflow.
type TicketHandler struct {
	Tickets *repository.TicketRepo
}

func NewTicketHandler(tickets *repository.TicketRepo) *TicketHandler {
	return &TicketHandler{Tickets: tickets}
}

var ticketSortCols = map[string]bool{
	"id": true, "status": true, "created_at": true, "updated_at": true,
}

func validTicketStatus(s string) bool {
	switch s {
	case model.TicketStatusOpen, model.TicketStatusInProgress, model.TicketStatusResolved, model.TicketStatusClosed:
		return true
	}
	return false
}

type ticketResp struct {
	ID         uint64    `json:"ticketId"`
	UserID     uint64    `json:"userId"`
	MatchID    uint64    `json:"matchId,omitempty"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Status     string    `json:"status"`
	AssigneeID uint64    `json:"assigneeId,omitempty"`
	Resolution string    `json:"resolution,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toTicketResp(t model.Ticket) ticketResp {
	return ticketResp{
		ID:         t.ID,
		UserID:     t.UserID,
		MatchID:    t.MatchID,
		Subject:    t.Subject,
		Body:       t.Body,
		Status:     t.Status,
		AssigneeID: t.AssigneeID,
		Resolution: t.Resolution,
		CreatedAt:  t.CreatedAt,
	}
}

// List returns a page of tickets, optionally filtered by ?status=.
func (h *TicketHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !validTicketStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	p := listquery.Parse(c, ticketSortCols, "created_at")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	tickets, total, err := h.Tickets.List(ctx, status, p.Limit, p.Offset, p.Sort, p.Order)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]ticketResp, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toTicketResp(t))
	}
	return c.JSON(http.StatusOK, listResponse{Data: out, Total: total})
}

// Get returns one ticket.
func (h *TicketHandler) Get(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	t, err := h.Tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toTicketResp(*t))
}

type ticketWorkflowReq struct {
	Status     string `json:"status"`
	AssigneeID uint64 `json:"assigneeId"`
	Resolution string `json:"resolution"`
}

// UpdateWorkflow moves a ticket through the workflow: status,
// assignee, resolution text. Resolving or closing requires a
// resolution note.
func (h *TicketHandler) UpdateWorkflow(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req ticketWorkflowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !validTicketStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	if (req.Status == model.TicketStatusResolved || req.Status == model.TicketStatusClosed) && req.Resolution == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "resolution required when resolving or closing"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	if err := h.Tickets.UpdateWorkflow(ctx, id, req.Status, req.AssigneeID, req.Resolution); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update ticket failed"})
	}

	t, err := h.Tickets.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toTicketResp(*t))
}

package model

import "time"

// Ticket statuses as stored in tickets.status.
const (
	TicketStatusOpen       = "OPEN"
	TicketStatusInProgress = "IN_PROGRESS"
	TicketStatusResolved   = "RESOLVED"
	TicketStatusClosed     = "CLOSED"
)

// Ticket represents a support ticket as stored in the `tickets` table.
// Workflow fields (status, assignee, resolution) are the only ones the
// admin surface updates; subject and body come from the reporter.
type Ticket struct {
	ID         uint64    // tickets.id
	UserID     uint64    // tickets.user_id (reporter)
	MatchID    uint64    // tickets.match_id (0 when not match related)
	Subject    string    // tickets.subject
	Body       string    // tickets.body
	Status     string    // tickets.status
	AssigneeID uint64    // tickets.assignee_id (0 when unassigned)
	Resolution string    // tickets.resolution
	CreatedAt  time.Time // tickets.created_at
	UpdatedAt  time.Time // tickets.updated_at
}

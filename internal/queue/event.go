// Package queue defines message payloads exchanged over the message
// broker and the consumer applying them.
package queue

// Queue names. Both queues are durable; messages are persistent.
const (
	StatsWorkflowQueue  = "stats.workflow"
	MatchCancelledQueue = "match.cancelled"
)

// StatsWorkflowEvent is published whenever a match moves through the
// stats-ingestion lifecycle. Consumers get enough to log or notify
// without querying the primary database.
type StatsWorkflowEvent struct {
	MatchID    uint64 `json:"match_id"`
	Status     string `json:"status"`
	JobID      string `json:"job_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// MatchCancelledEvent is published when a cancellation is executed.
// It carries the refund totals so downstream consumers (notifications,
// finance exports) need no follow-up query.
type MatchCancelledEvent struct {
	MatchID            uint64 `json:"match_id"`
	VenueID            uint64 `json:"venue_id"`
	StartsAt           string `json:"starts_at"`
	Participants       uint32 `json:"participants"`
	RefundedTotalCents uint64 `json:"refunded_total_cents"`
	CancelledBy        uint64 `json:"cancelled_by"`
	CancelledAt        string `json:"cancelled_at"`
}

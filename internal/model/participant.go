package model

import "time"

// Participant statuses as stored in participants.status.
const (
	ParticipantStatusBooked   = "BOOKED"
	ParticipantStatusRefunded = "REFUNDED"
	ParticipantStatusRemoved  = "REMOVED"
)

// Participant links a player user to a match booking as stored in the
// `participants` table. PaidCents records what the player actually
// paid after any promo discount; RefundCents is filled by the match
// cancellation flow.
type Participant struct {
	ID          uint64    // participants.id
	MatchID     uint64    // participants.match_id
	UserID      uint64    // participants.user_id
	PromoCodeID uint64    // participants.promo_code_id (0 when none)
	PaidCents   uint32    // participants.paid_cents
	RefundCents uint32    // participants.refund_cents
	Status      string    // participants.status
	CreatedAt   time.Time // participants.created_at
	UpdatedAt   time.Time // participants.updated_at
}

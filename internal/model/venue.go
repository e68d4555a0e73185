package model

import "time"

// Venue represents a playing ground as stored in the `venues` table.
type Venue struct {
	ID        uint64    // venues.id
	Name      string    // venues.name
	City      string    // venues.city
	Address   string    // venues.address
	PitchType string    // venues.pitch_type (e.g. 5v5, 7v7, 11v11)
	IsActive  bool      // venues.is_active
	CreatedAt time.Time // venues.created_at
	UpdatedAt time.Time // venues.updated_at
}

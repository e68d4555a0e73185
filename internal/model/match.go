package model

import "time"

// Match statuses as stored in matches.status. A match with no special
// lifecycle is ACTIVE. Cancellation and the stats-ingestion workflow
// own the remaining states; transitions are applied by the cancel
// handler and the stats workflow consumer, never ad hoc.
const (
	MatchStatusActive                 = "ACTIVE"
	MatchStatusCancelled              = "CANCELLED"
	MatchStatusStatsSubmissionPending = "STATS_SUBMISSION_PENDING"
	MatchStatusPollingStats           = "POLLING_STATS"
	MatchStatusMappingPending         = "SS_MAPPING_PENDING"
	MatchStatusStatsUpdated           = "STATS_UPDATED"
)

// Match types. Recorded matches are filmed and go through the
// PlayerNation stats workflow; non-recorded matches never do.
const (
	MatchTypeRecorded    = "recorded"
	MatchTypeNonRecorded = "non_recorded"
)

// Match represents a bookable match slot as stored in the `matches`
// table.
//
// Fields:
//  ID              – primary key identifier.
//  VenueID         – venue where the match is played.
//  FootballChiefID – staff user responsible for running the match.
//  StartsAt        – kickoff time (UTC).
//  EndsAt          – scheduled end time (UTC, after StartsAt).
//  MatchType       – recorded | non_recorded.
//  PlayerCapacity  – maximum number of participants.
//  SlotPriceCents  – full price of one slot in cents.
//  OfferPriceCents – discounted price in cents (0 when no offer).
//  Status          – lifecycle state, see the MatchStatus constants.
//  StatsJobID      – PlayerNation job identifier while stats are in flight.
//  CreatedAt       – row creation timestamp.
//  UpdatedAt       – last update timestamp.
type Match struct {
	ID              uint64    // matches.id
	VenueID         uint64    // matches.venue_id
	FootballChiefID uint64    // matches.football_chief_id
	StartsAt        time.Time // matches.starts_at
	EndsAt          time.Time // matches.ends_at
	MatchType       string    // matches.match_type
	PlayerCapacity  uint32    // matches.player_capacity
	SlotPriceCents  uint32    // matches.slot_price_cents
	OfferPriceCents uint32    // matches.offer_price_cents
	Status          string    // matches.status
	StatsJobID      string    // matches.stats_job_id (empty when idle)
	CreatedAt       time.Time // matches.created_at
	UpdatedAt       time.Time // matches.updated_at
}

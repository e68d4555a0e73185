package stats

import (
	"context"
	"log"
	"time"

	"github.com/turfbook/match-admin/internal/model"
)

// matchSource is the slice of MatchRepo the sweep needs.
type matchSource interface {
	ListByStatus(ctx context.Context, status string) ([]model.Match, error)
	SetStatus(ctx context.Context, id uint64, status, statsJobID string) error
}

// statsSink stores completed provider lines.
type statsSink interface {
	ReplaceProviderStats(ctx context.Context, matchID uint64, stats []model.ProviderPlayerStat) error
}

// publisher emits workflow events; nil-safe via the Sweeper wrapper.
type publisher interface {
	PublishStatsWorkflow(ctx context.Context, matchID uint64, status, jobID string) error
}

// Sweeper drives the polling leg of the stats workflow: every run it
// walks the POLLING_STATS matches, asks the provider for job state,
// and advances completed ones to SS_MAPPING_PENDING. Failed jobs fall
// back to STATS_SUBMISSION_PENDING so the operator can resubmit.
type Sweeper struct {
	Matches  matchSource
	Stats    statsSink
	Provider Provider
	Events   publisher // optional
}

// Run executes one sweep. Errors on individual matches are logged and
// skipped so one bad job never stalls the rest; the next run retries.
func (s *Sweeper) Run(ctx context.Context) {
	polling, err := s.Matches.ListByStatus(ctx, model.MatchStatusPollingStats)
	if err != nil {
		log.Printf("stats sweep: list polling matches: %v", err)
		return
	}
	for _, m := range polling {
		if m.StatsJobID == "" {
			log.Printf("stats sweep: match %d is POLLING_STATS without a job id", m.ID)
			continue
		}
		jctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		job, err := s.Provider.JobStatus(jctx, m.StatsJobID)
		cancel()
		if err != nil {
			log.Printf("stats sweep: match %d job %s: %v", m.ID, m.StatsJobID, err)
			continue
		}
		switch job.Status {
		case JobComplete:
			if err := s.complete(ctx, m, job); err != nil {
				log.Printf("stats sweep: match %d complete: %v", m.ID, err)
			}
		case JobFailed:
			log.Printf("stats sweep: match %d job %s failed: %s", m.ID, m.StatsJobID, job.Message)
			if err := s.transition(ctx, m.ID, model.MatchStatusStatsSubmissionPending, ""); err != nil {
				log.Printf("stats sweep: match %d reset: %v", m.ID, err)
			}
		default:
			// PENDING / PROCESSING: leave for the next sweep.
		}
	}
}

func (s *Sweeper) complete(ctx context.Context, m model.Match, job Job) error {
	if err := s.Stats.ReplaceProviderStats(ctx, m.ID, job.Players); err != nil {
		return err
	}
	return s.transition(ctx, m.ID, model.MatchStatusMappingPending, m.StatsJobID)
}

func (s *Sweeper) transition(ctx context.Context, matchID uint64, status, jobID string) error {
	if err := s.Matches.SetStatus(ctx, matchID, status, jobID); err != nil {
		return err
	}
	if s.Events != nil {
		if err := s.Events.PublishStatsWorkflow(ctx, matchID, status, jobID); err != nil {
			// Event delivery is best effort; the DB row is the truth.
			log.Printf("stats sweep: publish event for match %d: %v", matchID, err)
		}
	}
	return nil
}

// Package stats integrates the PlayerNation video-analysis provider:
// submitting recorded matches, polling job state, and the periodic
// sweep that moves matches through the ingestion statuses.
package stats

import (
	"context"

	"github.com/turfbook/match-admin/internal/model"
)

// Job statuses as reported by the provider.
const (
	JobPending    = "PENDING"
	JobProcessing = "PROCESSING"
	JobComplete   = "COMPLETE"
	JobFailed     = "FAILED"
)

// Job is the provider-side state of one analysis request.
type Job struct {
	ID      string
	Status  string
	Players []model.ProviderPlayerStat
	Message string // provider-supplied detail on FAILED jobs
}

// Provider is the seam the sweep and handlers depend on; the concrete
// client and the retry wrapper both satisfy it.
type Provider interface {
	SubmitRecording(ctx context.Context, matchID uint64, videoURL string) (jobID string, err error)
	JobStatus(ctx context.Context, jobID string) (Job, error)
}

package stats

import (
	"context"
	"log"
	"time"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

// retryingProvider wraps a Provider with retry/backoff behavior for
// reads. Submissions are never retried: a duplicate submit would start
// a second provider job for the same recording.
type retryingProvider struct {
	inner       Provider
	maxAttempts int
	backoff     time.Duration
}

// NewRetryingProvider wraps the given provider with retries on
// JobStatus. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner Provider, maxAttempts int, backoff time.Duration) Provider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{inner: inner, maxAttempts: maxAttempts, backoff: backoff}
}

func (r *retryingProvider) SubmitRecording(ctx context.Context, matchID uint64, videoURL string) (string, error) {
	return r.inner.SubmitRecording(ctx, matchID, videoURL)
}

func (r *retryingProvider) JobStatus(ctx context.Context, jobID string) (Job, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		job, err := r.inner.JobStatus(ctx, jobID)
		if err == nil {
			return job, nil
		}
		lastErr = err
		if attempt == r.maxAttempts {
			break
		}
		log.Printf("playernation: job status retry attempt=%d err=%v", attempt, err)
		// backoff with context awareness
		select {
		case <-ctx.Done():
			return Job{}, ctx.Err()
		case <-time.After(time.Duration(attempt) * r.backoff):
		}
	}
	return Job{}, lastErr
}

package stats

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flakyProvider fails JobStatus a set number of times before
// succeeding and counts every call.
type flakyProvider struct {
	failures    int
	statusCalls int
	submitCalls int
}

func (f *flakyProvider) SubmitRecording(ctx context.Context, matchID uint64, videoURL string) (string, error) {
	f.submitCalls++
	return "", errors.New("provider down")
}

func (f *flakyProvider) JobStatus(ctx context.Context, jobID string) (Job, error) {
	f.statusCalls++
	if f.statusCalls <= f.failures {
		return Job{}, errors.New("transient")
	}
	return Job{ID: jobID, Status: JobProcessing}, nil
}

func TestJobStatusRetriesUntilSuccess(t *testing.T) {
	inner := &flakyProvider{failures: 2}
	p := NewRetryingProvider(inner, 3, time.Millisecond)

	job, err := p.JobStatus(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("JobStatus: %v", err)
	}
	if job.Status != JobProcessing {
		t.Fatalf("status = %q", job.Status)
	}
	if inner.statusCalls != 3 {
		t.Fatalf("statusCalls = %d, want 3", inner.statusCalls)
	}
}

func TestJobStatusGivesUpAfterMaxAttempts(t *testing.T) {
	inner := &flakyProvider{failures: 10}
	p := NewRetryingProvider(inner, 3, time.Millisecond)

	if _, err := p.JobStatus(context.Background(), "job-1"); err == nil {
		t.Fatalf("expected failure after exhausting attempts")
	}
	if inner.statusCalls != 3 {
		t.Fatalf("statusCalls = %d, want 3", inner.statusCalls)
	}
}

func TestSubmitIsNeverRetried(t *testing.T) {
	inner := &flakyProvider{}
	p := NewRetryingProvider(inner, 5, time.Millisecond)

	if _, err := p.SubmitRecording(context.Background(), 1, "https://cdn.example/rec.mp4"); err == nil {
		t.Fatalf("expected submit error")
	}
	if inner.submitCalls != 1 {
		t.Fatalf("submitCalls = %d, want 1: a retried submit would start a duplicate job", inner.submitCalls)
	}
}

func TestJobStatusHonoursContext(t *testing.T) {
	inner := &flakyProvider{failures: 10}
	p := NewRetryingProvider(inner, 5, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.JobStatus(ctx, "job-1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context deadline", err)
	}
}

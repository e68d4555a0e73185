package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSubmitRecording(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/jobs" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("Authorization = %q", got)
		}
		var body struct {
			MatchRef string `json:"matchRef"`
			VideoURL string `json:"videoUrl"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.MatchRef != "match-42" || body.VideoURL != "https://cdn.example/rec.mp4" {
			t.Fatalf("body = %+v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"jobId": "job-7"})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"})
	jobID, err := c.SubmitRecording(context.Background(), 42, "https://cdn.example/rec.mp4")
	if err != nil {
		t.Fatalf("SubmitRecording: %v", err)
	}
	if jobID != "job-7" {
		t.Fatalf("jobID = %q, want job-7", jobID)
	}
}

func TestSubmitRecordingRejectsMissingJobID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	if _, err := c.SubmitRecording(context.Background(), 1, "https://cdn.example/rec.mp4"); err == nil {
		t.Fatalf("expected error for empty job id")
	}
}

func TestJobStatusComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/jobs/job-7" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jobId":  "job-7",
			"status": JobComplete,
			"players": []map[string]any{
				{"name": "A. Mehta", "goals": 2, "assists": 1, "saves": 0},
				{"name": "R. Sharma", "goals": 0, "assists": 0, "saves": 4},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	job, err := c.JobStatus(context.Background(), "job-7")
	if err != nil {
		t.Fatalf("JobStatus: %v", err)
	}
	if job.Status != JobComplete {
		t.Fatalf("status = %q", job.Status)
	}
	if len(job.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(job.Players))
	}
	if job.Players[0].PlayerName != "A. Mehta" || job.Players[0].Goals != 2 {
		t.Fatalf("player[0] = %+v", job.Players[0])
	}
}

func TestJobStatusUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "job not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	if _, err := c.JobStatus(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for 404")
	}
}

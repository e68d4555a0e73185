package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/turfbook/match-admin/internal/model"
)

// Config controls how the client reaches the PlayerNation API. The
// base URL is fixed per environment at startup.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// httpDoer lets tests substitute the transport.
type httpDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the PlayerNation REST API and maps its payloads to
// domain models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
}

const defaultTimeout = 60 * time.Second

// NewClient constructs a PlayerNation client with the provided
// configuration.
func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: hc,
	}
}

type submitRequest struct {
	MatchRef string `json:"matchRef"`
	VideoURL string `json:"videoUrl"`
}

type submitResponse struct {
	JobID string `json:"jobId"`
}

type jobResponse struct {
	JobID   string `json:"jobId"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Players []struct {
		Name    string `json:"name"`
		Goals   uint32 `json:"goals"`
		Assists uint32 `json:"assists"`
		Saves   uint32 `json:"saves"`
	} `json:"players"`
}

// SubmitRecording asks the provider to analyse the given recording and
// returns the provider job ID.
func (c *Client) SubmitRecording(ctx context.Context, matchID uint64, videoURL string) (string, error) {
	body, err := json.Marshal(submitRequest{MatchRef: fmt.Sprintf("match-%d", matchID), VideoURL: videoURL})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/jobs", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", unexpectedStatus(resp)
	}
	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.JobID == "" {
		return "", fmt.Errorf("playernation: submit returned no job id")
	}
	return out.JobID, nil
}

// JobStatus fetches the current state of an analysis job, including
// the per-player lines once the job completes.
func (c *Client) JobStatus(ctx context.Context, jobID string) (Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/jobs/"+jobID, nil)
	if err != nil {
		return Job{}, err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Job{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Job{}, unexpectedStatus(resp)
	}
	var out jobResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Job{}, err
	}
	job := Job{ID: out.JobID, Status: out.Status, Message: out.Message}
	for _, p := range out.Players {
		job.Players = append(job.Players, model.ProviderPlayerStat{
			PlayerName: p.Name,
			Goals:      p.Goals,
			Assists:    p.Assists,
			Saves:      p.Saves,
		})
	}
	return job, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func unexpectedStatus(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("playernation: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

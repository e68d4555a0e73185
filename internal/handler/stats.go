package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/matching"
	"github.com/turfbook/match-admin/internal/model"
	"github.com/turfbook/match-admin/internal/queue"
	"github.com/turfbook/match-admin/internal/repository"
	"github.com/turfbook/match-admin/internal/stats"
)

const suggestionLimit = 5

// maximum users loaded for fuzzy ranking; beyond that the operator
// narrows by hand.
const mappingCandidatePool = 2000

// StatsHandler drives the stats-ingestion workflow for recorded
// matches: submit the recording, watch the provider job, then map the
// provider's free-text player names onto platform users.
type StatsHandler struct {
	Matches  *repository.MatchRepo
	Stats    *repository.StatsRepo
	Users    *repository.UserRepo
	Provider stats.Provider
	Events   *queue.Publisher
}

func NewStatsHandler(matches *repository.MatchRepo, statsRepo *repository.StatsRepo, users *repository.UserRepo, provider stats.Provider, events *queue.Publisher) *StatsHandler {
	return &StatsHandler{Matches: matches, Stats: statsRepo, Users: users, Provider: provider, Events: events}
}

// Status reports where the match sits in the ingestion workflow.
func (h *StatsHandler) Status(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	m, err := h.Matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"matchId":   m.ID,
		"status":    m.Status,
		"jobId":     m.StatsJobID,
		"matchType": m.MatchType,
	})
}

type submitRecordingReq struct {
	VideoURL string `json:"videoUrl"`
}

// Submit sends the match recording to the provider and moves the match
// into POLLING_STATS. Only recorded matches that finished playing are
// eligible.
func (h *StatsHandler) Submit(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req submitRecordingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.VideoURL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "videoUrl required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	m, err := h.Matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if m.MatchType != model.MatchTypeRecorded {
		return c.JSON(http.StatusConflict, echo.Map{"error": "only recorded matches have stats"})
	}
	switch m.Status {
	case model.MatchStatusActive, model.MatchStatusStatsSubmissionPending:
		// eligible
	default:
		return c.JSON(http.StatusConflict, echo.Map{"error": "match is not awaiting stats submission"})
	}

	jobID, err := h.Provider.SubmitRecording(ctx, id, req.VideoURL)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "provider submission failed"})
	}
	if err := h.Matches.SetStatus(ctx, id, model.MatchStatusPollingStats, jobID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "status update failed"})
	}
	if h.Events != nil {
		_ = h.Events.PublishStatsWorkflow(ctx, id, model.MatchStatusPollingStats, jobID)
	}
	return c.JSON(http.StatusAccepted, echo.Map{"matchId": id, "status": model.MatchStatusPollingStats, "jobId": jobID})
}

type mappingLine struct {
	StatID      uint64                `json:"statId"`
	PlayerName  string                `json:"playerName"`
	Goals       uint32                `json:"goals"`
	Assists     uint32                `json:"assists"`
	Saves       uint32                `json:"saves"`
	MappedUser  uint64                `json:"mappedUserId,omitempty"`
	Suggestions []matching.Suggestion `json:"suggestions"`
}

// Mapping returns the provider's stat lines with fuzzy-ranked user
// suggestions for each free-text player name.
func (h *StatsHandler) Mapping(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	m, err := h.Matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if m.Status != model.MatchStatusMappingPending && m.Status != model.MatchStatusStatsUpdated {
		return c.JSON(http.StatusConflict, echo.Map{"error": "stats are not ready for mapping"})
	}

	lines, err := h.Stats.ProviderStats(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	users, err := h.Users.ListActivePlayers(ctx, mappingCandidatePool)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	out := make([]mappingLine, 0, len(lines))
	for _, s := range lines {
		out = append(out, mappingLine{
			StatID:      s.ID,
			PlayerName:  s.PlayerName,
			Goals:       s.Goals,
			Assists:     s.Assists,
			Saves:       s.Saves,
			MappedUser:  s.MappedUser,
			Suggestions: matching.Suggest(s.PlayerName, users, suggestionLimit),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"matchId": id, "status": m.Status, "lines": out})
}

type confirmMappingReq struct {
	Mapping map[uint64]uint64 `json:"mapping"` // provider stat ID -> user ID
}

// ConfirmMapping records the operator's identity decisions,
// materializes the confirmed stat lines, and moves the match to
// STATS_UPDATED.
func (h *StatsHandler) ConfirmMapping(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req confirmMappingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Mapping) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mapping must not be empty"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	m, err := h.Matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if m.Status != model.MatchStatusMappingPending {
		return c.JSON(http.StatusConflict, echo.Map{"error": "stats are not ready for mapping"})
	}

	if err := h.Stats.ConfirmMapping(ctx, id, req.Mapping); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm mapping failed"})
	}
	if err := h.Matches.SetStatus(ctx, id, model.MatchStatusStatsUpdated, m.StatsJobID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "status update failed"})
	}
	if h.Events != nil {
		_ = h.Events.PublishStatsWorkflow(ctx, id, model.MatchStatusStatsUpdated, m.StatsJobID)
	}
	return c.JSON(http.StatusOK, echo.Map{"matchId": id, "status": model.MatchStatusStatsUpdated, "mapped": len(req.Mapping)})
}

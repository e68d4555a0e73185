package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/turfbook/match-admin/internal/cache"
	"github.com/turfbook/match-admin/internal/model"
	"github.com/turfbook/match-admin/internal/repository"
)

const leaderboardLimit = 50

// LeaderboardHandler serves the season leaderboard. Results are cached
// for LeaderboardTTL in Redis when a client is available; without one
// the in-memory TTL cache takes over, which is fine for a single
// instance.
type LeaderboardHandler struct {
	Seasons *repository.SeasonRepo
	Redis   *redis.Client
	TTL     time.Duration
	memory  *cache.Cache[[]model.LeaderboardEntry]
}

func NewLeaderboardHandler(seasons *repository.SeasonRepo, rdb *redis.Client, ttl time.Duration) *LeaderboardHandler {
	return &LeaderboardHandler{
		Seasons: seasons,
		Redis:   rdb,
		TTL:     ttl,
		memory:  cache.New[[]model.LeaderboardEntry](ttl),
	}
}

type leaderboardResp struct {
	SeasonID uint64                   `json:"seasonId"`
	Season   string                   `json:"season"`
	Entries  []model.LeaderboardEntry `json:"entries"`
	Cached   bool                     `json:"cached"`
}

// Get answers the leaderboard for ?season=<id>, defaulting to the
// active season.
func (h *LeaderboardHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	season, err := h.resolveSeason(ctx, c.QueryParam("season"))
	if err != nil {
		if errors.Is(err, repository.ErrSeasonNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "season not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if season == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active season"})
	}

	if entries, ok := h.cached(ctx, season.ID); ok {
		return c.JSON(http.StatusOK, leaderboardResp{SeasonID: season.ID, Season: season.Name, Entries: entries, Cached: true})
	}

	entries, err := h.Seasons.Leaderboard(ctx, season, leaderboardLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	h.store(ctx, season.ID, entries)
	return c.JSON(http.StatusOK, leaderboardResp{SeasonID: season.ID, Season: season.Name, Entries: entries, Cached: false})
}

// resolveSeason picks the requested season, or the active one when the
// parameter is absent. A nil season with nil error means no season is
// active.
func (h *LeaderboardHandler) resolveSeason(ctx context.Context, param string) (*model.Season, error) {
	if param != "" {
		id, err := strconv.ParseUint(param, 10, 64)
		if err != nil {
			return nil, repository.ErrSeasonNotFound
		}
		return h.Seasons.GetByID(ctx, id)
	}
	seasons, err := h.Seasons.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range seasons {
		if seasons[i].IsActive {
			return &seasons[i], nil
		}
	}
	return nil, nil
}

func leaderboardKey(seasonID uint64) string {
	return fmt.Sprintf("leaderboard:season:%d", seasonID)
}

func (h *LeaderboardHandler) cached(ctx context.Context, seasonID uint64) ([]model.LeaderboardEntry, bool) {
	if h.Redis != nil {
		raw, err := h.Redis.Get(ctx, leaderboardKey(seasonID)).Bytes()
		if err == nil {
			var entries []model.LeaderboardEntry
			if json.Unmarshal(raw, &entries) == nil {
				return entries, true
			}
		}
		return nil, false
	}
	return h.memory.Get(cache.Key{Report: "leaderboard", From: strconv.FormatUint(seasonID, 10)})
}

func (h *LeaderboardHandler) store(ctx context.Context, seasonID uint64, entries []model.LeaderboardEntry) {
	if h.Redis != nil {
		if raw, err := json.Marshal(entries); err == nil {
			_ = h.Redis.Set(ctx, leaderboardKey(seasonID), raw, h.TTL).Err()
		}
		return
	}
	h.memory.Set(cache.Key{Report: "leaderboard", From: strconv.FormatUint(seasonID, 10)}, entries)
}

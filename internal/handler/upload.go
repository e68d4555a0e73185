package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/model"
	"github.com/turfbook/match-admin/internal/repository"
	"github.com/turfbook/match-admin/internal/upload"
)

// UploadHandler serves the bulk ingestion endpoints: the xlsx match
// template and upload, and the manual CSV stats upload.
type UploadHandler struct {
	Matches *repository.MatchRepo
	Stats   *repository.StatsRepo
}

func NewUploadHandler(matches *repository.MatchRepo, statsRepo *repository.StatsRepo) *UploadHandler {
	return &UploadHandler{Matches: matches, Stats: statsRepo}
}

// MatchTemplate streams the downloadable xlsx template.
func (h *UploadHandler) MatchTemplate(c echo.Context) error {
	f, err := upload.MatchTemplate()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "template generation failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="match-template.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

// UploadMatches ingests an uploaded workbook. Valid rows are inserted in one
// transaction; invalid rows are reported per row and do not block the
// rest.
func (h *UploadHandler) UploadMatches(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot open upload"})
	}
	defer src.Close()

	rows, res, err := upload.ParseMatchWorkbook(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res.UploadID = uuid.NewString()

	if len(rows) > 0 {
		ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
		defer cancel()

		tx, err := h.Matches.DB().BeginTx(ctx, nil)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin transaction failed"})
		}
		for _, r := range rows {
			m := model.Match{
				VenueID:         r.VenueID,
				FootballChiefID: r.FootballChiefID,
				StartsAt:        r.StartsAt.UTC(),
				EndsAt:          r.EndsAt.UTC(),
				MatchType:       r.MatchType,
				PlayerCapacity:  r.PlayerCapacity,
				SlotPriceCents:  r.SlotPriceCents,
				OfferPriceCents: r.OfferPriceCents,
			}
			if err := h.Matches.CreateTx(ctx, tx, &m); err != nil {
				_ = tx.Rollback()
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "bulk insert failed"})
			}
		}
		if err := tx.Commit(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
		}
	}
	return c.JSON(http.StatusOK, res)
}

// UploadStats ingests a manual CSV stats file, the non-video alternative to
// the provider workflow.
func (h *UploadHandler) UploadStats(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot open upload"})
	}
	defer src.Close()

	stats, res, err := upload.ParseStatsCSV(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res.UploadID = uuid.NewString()

	if len(stats) > 0 {
		ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
		defer cancel()
		if err := h.Stats.InsertPlayerStats(ctx, stats); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "insert stats failed"})
		}
	}
	return c.JSON(http.StatusOK, res)
}

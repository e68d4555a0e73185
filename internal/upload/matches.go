package upload

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/turfbook/match-admin/internal/model"
)

// matchSheet is the sheet name the template ships with and the parser
// reads from.
const matchSheet = "Matches"

// matchHeader defines the template columns, in order.
var matchHeader = []any{
	"venue_id", "football_chief_id", "starts_at", "ends_at",
	"match_type", "player_capacity", "slot_price_cents", "offer_price_cents",
}

// timestampLayout is the cell format for starts_at/ends_at.
const timestampLayout = "2006-01-02 15:04"

// MatchRow is one validated workbook row ready for insertion.
type MatchRow struct {
	VenueID         uint64
	FootballChiefID uint64
	StartsAt        time.Time
	EndsAt          time.Time
	MatchType       string
	PlayerCapacity  uint32
	SlotPriceCents  uint32
	OfferPriceCents uint32
}

// MatchTemplate builds the downloadable xlsx template with the header
// row and one illustrative example row.
func MatchTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", matchSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(matchSheet, "A1", &matchHeader); err != nil {
		return nil, err
	}
	example := []any{1, 2, "2025-07-01 18:00", "2025-07-01 19:00", model.MatchTypeRecorded, 12, 50000, 45000}
	if err := f.SetSheetRow(matchSheet, "A2", &example); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseMatchWorkbook reads the uploaded workbook and validates every
// data row. Valid rows come back ready to insert; invalid rows are
// reported in the Result without stopping the parse. Only a workbook
// that cannot be opened at all is an error.
func ParseMatchWorkbook(r io.Reader) ([]MatchRow, Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(matchSheet)
	if err != nil {
		return nil, Result{}, fmt.Errorf("sheet %q: %w", matchSheet, err)
	}

	var (
		res   Result
		valid []MatchRow
	)
	if len(rows) <= 1 {
		res.Warnings = append(res.Warnings, "workbook has no data rows")
		return nil, res, nil
	}

	for i, cells := range rows[1:] {
		rowNum := i + 2 // 1-based, header is row 1
		if blankRow(cells) {
			continue
		}
		row, errs := parseMatchRow(cells)
		if len(errs) > 0 {
			res.FailedRows++
			res.Errors = append(res.Errors, RowError{Row: rowNum, Errors: errs})
			continue
		}
		res.SuccessfulRows++
		valid = append(valid, row)
	}
	return valid, res, nil
}

func parseMatchRow(cells []string) (MatchRow, []string) {
	var (
		row  MatchRow
		errs []string
	)
	get := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	if v, err := strconv.ParseUint(get(0), 10, 64); err != nil || v == 0 {
		errs = append(errs, "venue_id must be a positive integer")
	} else {
		row.VenueID = v
	}
	if v, err := strconv.ParseUint(get(1), 10, 64); err != nil || v == 0 {
		errs = append(errs, "football_chief_id must be a positive integer")
	} else {
		row.FootballChiefID = v
	}
	starts, err := time.Parse(timestampLayout, get(2))
	if err != nil {
		errs = append(errs, "starts_at must look like "+timestampLayout)
	} else {
		row.StartsAt = starts
	}
	ends, err := time.Parse(timestampLayout, get(3))
	if err != nil {
		errs = append(errs, "ends_at must look like "+timestampLayout)
	} else {
		row.EndsAt = ends
	}
	if !row.StartsAt.IsZero() && !row.EndsAt.IsZero() && !row.EndsAt.After(row.StartsAt) {
		errs = append(errs, "ends_at must be after starts_at")
	}
	switch mt := get(4); mt {
	case model.MatchTypeRecorded, model.MatchTypeNonRecorded:
		row.MatchType = mt
	default:
		errs = append(errs, "match_type must be recorded or non_recorded")
	}
	if v, err := strconv.ParseUint(get(5), 10, 32); err != nil || v == 0 {
		errs = append(errs, "player_capacity must be a positive integer")
	} else {
		row.PlayerCapacity = uint32(v)
	}
	if v, err := strconv.ParseUint(get(6), 10, 32); err != nil {
		errs = append(errs, "slot_price_cents must be a non-negative integer")
	} else {
		row.SlotPriceCents = uint32(v)
	}
	// offer price is optional; blank means no offer
	if s := get(7); s != "" {
		if v, err := strconv.ParseUint(s, 10, 32); err != nil {
			errs = append(errs, "offer_price_cents must be a non-negative integer")
		} else {
			row.OfferPriceCents = uint32(v)
		}
	}
	if row.OfferPriceCents > row.SlotPriceCents {
		errs = append(errs, "offer_price_cents cannot exceed slot_price_cents")
	}
	return row, errs
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

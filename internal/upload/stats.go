package upload

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/turfbook/match-admin/internal/model"
)

// statsHeader is the expected CSV header for the manual stats upload,
// the non-video alternative to the provider workflow.
var statsHeader = []string{"match_id", "user_id", "goals", "assists", "saves"}

// ParseStatsCSV reads a manual stats file and validates every row.
// The header row is required; per-row problems are reported in the
// Result while the remaining rows proceed. Points are computed with
// the same weighting the mapping confirmation uses.
func ParseStatsCSV(r io.Reader) ([]model.PlayerStat, Result, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, Result{}, fmt.Errorf("read header: %w", err)
	}
	if !headerMatches(header) {
		return nil, Result{}, fmt.Errorf("unexpected header, want %s", strings.Join(statsHeader, ","))
	}

	var (
		res   Result
		valid []model.PlayerStat
	)
	for rowNum := 2; ; rowNum++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.FailedRows++
			res.Errors = append(res.Errors, RowError{Row: rowNum, Errors: []string{err.Error()}})
			continue
		}
		stat, errs := parseStatRow(record)
		if len(errs) > 0 {
			res.FailedRows++
			res.Errors = append(res.Errors, RowError{Row: rowNum, Errors: errs})
			continue
		}
		res.SuccessfulRows++
		valid = append(valid, stat)
	}
	return valid, res, nil
}

func parseStatRow(record []string) (model.PlayerStat, []string) {
	var (
		s    model.PlayerStat
		errs []string
	)
	get := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}
	if v, err := strconv.ParseUint(get(0), 10, 64); err != nil || v == 0 {
		errs = append(errs, "match_id must be a positive integer")
	} else {
		s.MatchID = v
	}
	if v, err := strconv.ParseUint(get(1), 10, 64); err != nil || v == 0 {
		errs = append(errs, "user_id must be a positive integer")
	} else {
		s.UserID = v
	}
	counters := []struct {
		name string
		dst  *uint32
		idx  int
	}{
		{"goals", &s.Goals, 2},
		{"assists", &s.Assists, 3},
		{"saves", &s.Saves, 4},
	}
	for _, c := range counters {
		if v, err := strconv.ParseUint(get(c.idx), 10, 32); err != nil {
			errs = append(errs, c.name+" must be a non-negative integer")
		} else {
			*c.dst = uint32(v)
		}
	}
	if len(errs) == 0 {
		s.Points = s.Goals*5 + s.Assists*3 + s.Saves*2 + 1
	}
	return s, errs
}

func headerMatches(header []string) bool {
	if len(header) < len(statsHeader) {
		return false
	}
	for i, want := range statsHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return false
		}
	}
	return true
}

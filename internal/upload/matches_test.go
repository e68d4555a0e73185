package upload

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// workbook builds an in-memory xlsx with the template header and the
// given data rows.
func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", matchSheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	if err := f.SetSheetRow(matchSheet, "A1", &matchHeader); err != nil {
		t.Fatalf("header: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("cell: %v", err)
		}
		if err := f.SetSheetRow(matchSheet, cell, &row); err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	return &buf
}

func TestParseMatchWorkbookValidRows(t *testing.T) {
	buf := workbook(t, [][]any{
		{"3", "7", "2025-07-01 18:00", "2025-07-01 19:00", "recorded", "12", "50000", "45000"},
		{"4", "7", "2025-07-02 20:00", "2025-07-02 21:00", "non_recorded", "10", "40000", ""},
	})

	rows, res, err := ParseMatchWorkbook(buf)
	if err != nil {
		t.Fatalf("ParseMatchWorkbook: %v", err)
	}
	if res.SuccessfulRows != 2 || res.FailedRows != 0 {
		t.Fatalf("result = %+v", res)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].VenueID != 3 || rows[0].PlayerCapacity != 12 || rows[0].OfferPriceCents != 45000 {
		t.Fatalf("row[0] = %+v", rows[0])
	}
	if rows[1].OfferPriceCents != 0 {
		t.Fatalf("blank offer price should mean no offer, got %d", rows[1].OfferPriceCents)
	}
}

func TestParseMatchWorkbookPartialFailure(t *testing.T) {
	buf := workbook(t, [][]any{
		{"3", "7", "2025-07-01 18:00", "2025-07-01 19:00", "recorded", "12", "50000", "45000"},
		{"0", "7", "not-a-date", "2025-07-02 21:00", "five_a_side", "0", "40000", ""},
	})

	rows, res, err := ParseMatchWorkbook(buf)
	if err != nil {
		t.Fatalf("ParseMatchWorkbook: %v", err)
	}
	if res.SuccessfulRows != 1 || res.FailedRows != 1 {
		t.Fatalf("result = %+v", res)
	}
	if len(rows) != 1 {
		t.Fatalf("valid rows = %d, want 1", len(rows))
	}
	if len(res.Errors) != 1 || res.Errors[0].Row != 3 {
		t.Fatalf("errors = %+v, want row 3", res.Errors)
	}
	// The broken row collects every problem, not just the first.
	if len(res.Errors[0].Errors) < 3 {
		t.Fatalf("row errors = %v, expected venue, date, type, capacity problems", res.Errors[0].Errors)
	}
}

func TestParseMatchWorkbookRejectsEndBeforeStart(t *testing.T) {
	buf := workbook(t, [][]any{
		{"3", "7", "2025-07-01 19:00", "2025-07-01 18:00", "recorded", "12", "50000", ""},
	})
	_, res, err := ParseMatchWorkbook(buf)
	if err != nil {
		t.Fatalf("ParseMatchWorkbook: %v", err)
	}
	if res.FailedRows != 1 {
		t.Fatalf("result = %+v", res)
	}
}

func TestParseMatchWorkbookRejectsOfferAboveSlot(t *testing.T) {
	buf := workbook(t, [][]any{
		{"3", "7", "2025-07-01 18:00", "2025-07-01 19:00", "recorded", "12", "40000", "50000"},
	})
	_, res, err := ParseMatchWorkbook(buf)
	if err != nil {
		t.Fatalf("ParseMatchWorkbook: %v", err)
	}
	if res.FailedRows != 1 {
		t.Fatalf("result = %+v", res)
	}
}

func TestParseMatchWorkbookSkipsBlankRowsAndWarnsOnEmpty(t *testing.T) {
	buf := workbook(t, [][]any{
		{"", "", "", "", "", "", "", ""},
		{"3", "7", "2025-07-01 18:00", "2025-07-01 19:00", "recorded", "12", "50000", ""},
	})
	rows, res, err := ParseMatchWorkbook(buf)
	if err != nil {
		t.Fatalf("ParseMatchWorkbook: %v", err)
	}
	if res.SuccessfulRows != 1 || res.FailedRows != 0 {
		t.Fatalf("result = %+v", res)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}

	empty := workbook(t, nil)
	_, res, err = ParseMatchWorkbook(empty)
	if err != nil {
		t.Fatalf("ParseMatchWorkbook(empty): %v", err)
	}
	if len(res.Warnings) == 0 {
		t.Fatalf("empty workbook should warn")
	}
}

func TestMatchTemplateRoundTrips(t *testing.T) {
	f, err := MatchTemplate()
	if err != nil {
		t.Fatalf("MatchTemplate: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	// The template's own example row must pass the parser.
	rows, res, err := ParseMatchWorkbook(&buf)
	if err != nil {
		t.Fatalf("parse template: %v", err)
	}
	if res.FailedRows != 0 || len(rows) != 1 {
		t.Fatalf("template example row rejected: %+v", res)
	}
}

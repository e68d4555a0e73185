package upload

import (
	"strings"
	"testing"
)

func TestParseStatsCSV(t *testing.T) {
	in := strings.Join([]string{
		"match_id,user_id,goals,assists,saves",
		"10,1,2,1,0",
		"10,2,0,0,4",
	}, "\n")

	stats, res, err := ParseStatsCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseStatsCSV: %v", err)
	}
	if res.SuccessfulRows != 2 || res.FailedRows != 0 {
		t.Fatalf("result = %+v", res)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %d", len(stats))
	}
	// goal 5, assist 3, save 2, plus 1 for playing
	if stats[0].Points != 2*5+1*3+1 {
		t.Fatalf("points = %d, want %d", stats[0].Points, 2*5+1*3+1)
	}
	if stats[1].Points != 4*2+1 {
		t.Fatalf("points = %d, want %d", stats[1].Points, 4*2+1)
	}
}

func TestParseStatsCSVPartialFailure(t *testing.T) {
	in := strings.Join([]string{
		"match_id,user_id,goals,assists,saves",
		"10,1,2,1,0",
		"0,abc,-1,x,",
	}, "\n")

	stats, res, err := ParseStatsCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseStatsCSV: %v", err)
	}
	if res.SuccessfulRows != 1 || res.FailedRows != 1 {
		t.Fatalf("result = %+v", res)
	}
	if len(stats) != 1 {
		t.Fatalf("stats = %d, want 1", len(stats))
	}
	if len(res.Errors) != 1 || res.Errors[0].Row != 3 {
		t.Fatalf("errors = %+v, want row 3", res.Errors)
	}
}

func TestParseStatsCSVRejectsBadHeader(t *testing.T) {
	in := "id,player,g,a,s\n1,2,3,4,5\n"
	if _, _, err := ParseStatsCSV(strings.NewReader(in)); err == nil {
		t.Fatalf("expected header error")
	}
}

func TestParseStatsCSVHeaderCaseInsensitive(t *testing.T) {
	in := "Match_ID,User_ID,Goals,Assists,Saves\n10,1,1,0,0\n"
	_, res, err := ParseStatsCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseStatsCSV: %v", err)
	}
	if res.SuccessfulRows != 1 {
		t.Fatalf("result = %+v", res)
	}
}

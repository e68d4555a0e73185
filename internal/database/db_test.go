package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	got := dsn("admin", "s3cret", "db.internal", "3306", "turfbook")

	for _, want := range []string{
		"admin:s3cret@tcp(db.internal:3306)/turfbook",
		"parseTime=true",
		"collation=utf8mb4_unicode_ci",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("dsn = %q, missing %q", got, want)
		}
	}
}

func TestDSNEmptyPassword(t *testing.T) {
	got := dsn("admin", "", "localhost", "3306", "turfbook")
	if !strings.HasPrefix(got, "admin@tcp(") {
		t.Fatalf("dsn = %q, want bare user when password is empty", got)
	}
}

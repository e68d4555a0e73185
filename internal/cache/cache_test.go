package cache

import (
	"testing"
	"time"
)

func TestKeyedStorage(t *testing.T) {
	c := New[int](0)
	a := Key{Report: "by_city", From: "2025-01-01", To: "2025-01-31"}
	b := Key{Report: "by_city", From: "2025-02-01", To: "2025-02-28"}

	c.Set(a, 1)
	c.Set(b, 2)

	if v, ok := c.Get(a); !ok || v != 1 {
		t.Fatalf("Get(a) = %d,%v", v, ok)
	}
	if v, ok := c.Get(b); !ok || v != 2 {
		t.Fatalf("Get(b) = %d,%v", v, ok)
	}
	// Same ranges under a different report name are distinct entries.
	other := Key{Report: "by_football_chief", From: a.From, To: a.To}
	if _, ok := c.Get(other); ok {
		t.Fatalf("report name must be part of the key")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewWithClock[string](0, func() time.Time { return clock })

	k := Key{Report: "summary", From: "2024-01-01", To: "2024-12-31"}
	c.Set(k, "totals")

	clock = clock.AddDate(1, 0, 0)
	if v, ok := c.Get(k); !ok || v != "totals" {
		t.Fatalf("entry expired under zero TTL: %q,%v", v, ok)
	}
}

func TestTTLExpiryDropsOnRead(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewWithClock[string](5*time.Minute, func() time.Time { return clock })

	k := Key{Report: "leaderboard", From: "7"}
	c.Set(k, "entries")

	clock = clock.Add(4 * time.Minute)
	if _, ok := c.Get(k); !ok {
		t.Fatalf("entry expired early")
	}

	clock = clock.Add(2 * time.Minute)
	if _, ok := c.Get(k); ok {
		t.Fatalf("entry survived past its TTL")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry not dropped on read, len=%d", c.Len())
	}
}

// A Set landing between Get's expiry check and its delete must not be
// thrown away. The clock hook refreshes the entry during the expiry
// check, which pins that interleaving deterministically.
func TestExpiryDeleteKeepsConcurrentSet(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var clock func() time.Time
	c := NewWithClock[string](time.Minute, func() time.Time { return clock() })

	k := Key{Report: "leaderboard", From: "7"}
	clock = func() time.Time { return base }
	c.Set(k, "stale")

	armed := true
	clock = func() time.Time {
		if armed {
			armed = false
			c.Set(k, "fresh")
		}
		return base.Add(2 * time.Minute)
	}

	if _, ok := c.Get(k); ok {
		t.Fatalf("stale entry must still read as a miss")
	}
	if v, ok := c.Get(k); !ok || v != "fresh" {
		t.Fatalf("entry refreshed during the expiry check was dropped: %q,%v", v, ok)
	}
}

func TestSetReplaces(t *testing.T) {
	c := New[int](0)
	k := Key{Report: "summary"}
	c.Set(k, 1)
	c.Set(k, 2)
	if v, _ := c.Get(k); v != 2 {
		t.Fatalf("Get = %d, want 2", v)
	}
	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
}

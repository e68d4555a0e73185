package roles

import "testing"

func TestValid(t *testing.T) {
	for _, r := range All {
		if !Valid(r) {
			t.Fatalf("Valid(%q) = false", r)
		}
	}
	for _, r := range []string{"", "root", "ADMIN", "player"} {
		if Valid(r) {
			t.Fatalf("Valid(%q) = true", r)
		}
	}
}

func TestCapabilityMatrix(t *testing.T) {
	cases := []struct {
		name string
		can  func(string) bool
		yes  []string
		no   []string
	}{
		{"manage users", CanManageUsers, []string{SuperAdmin, Admin}, []string{Operations, Finance, FootballChief}},
		{"manage matches", CanManageMatches, []string{SuperAdmin, Admin, Operations}, []string{Finance, FootballChief}},
		{"cancel match", CanCancelMatch, []string{SuperAdmin, Admin}, []string{Operations, Finance, FootballChief}},
		{"view accounting", CanViewAccounting, []string{SuperAdmin, Admin, Finance}, []string{Operations, FootballChief}},
		{"manage promos", CanManagePromos, []string{SuperAdmin, Admin}, []string{Operations, Finance, FootballChief}},
		{"run stats workflow", CanRunStatsWorkflow, []string{SuperAdmin, Admin, Operations, FootballChief}, []string{Finance}},
		{"manage seasons", CanManageSeasons, []string{SuperAdmin, Admin}, []string{Operations, Finance, FootballChief}},
		{"manage tickets", CanManageTickets, []string{SuperAdmin, Admin, Operations}, []string{Finance, FootballChief}},
	}
	for _, tc := range cases {
		for _, r := range tc.yes {
			if !tc.can(r) {
				t.Fatalf("%s: %s should be allowed", tc.name, r)
			}
		}
		for _, r := range tc.no {
			if tc.can(r) {
				t.Fatalf("%s: %s should be denied", tc.name, r)
			}
		}
		if tc.can("unknown_role") {
			t.Fatalf("%s: unknown role should be denied", tc.name)
		}
	}
}

// Package roles defines the closed set of staff roles and the named
// capability predicates route groups gate on. Every visibility or
// permission decision goes through a predicate here so the answer to
// "who may do X" lives in exactly one place.
package roles

// Role names as stored in users.role and carried in the JWT "role" claim.
const (
	SuperAdmin    = "super_admin"
	Admin         = "admin"
	Operations    = "operations"
	Finance       = "finance"
	FootballChief = "football_chief"
)

// All lists every valid role. Used for validation when creating or
// updating staff users.
var All = []string{SuperAdmin, Admin, Operations, Finance, FootballChief}

// Valid reports whether s names a known role.
func Valid(s string) bool {
	for _, r := range All {
		if r == s {
			return true
		}
	}
	return false
}

// CanManageUsers allows creating, editing, and deactivating accounts.
func CanManageUsers(role string) bool {
	return role == SuperAdmin || role == Admin
}

// CanManageMatches allows match CRUD, recurring creation, and bulk upload.
func CanManageMatches(role string) bool {
	return role == SuperAdmin || role == Admin || role == Operations
}

// CanCancelMatch allows the cancellation preview and execute endpoints.
func CanCancelMatch(role string) bool {
	return role == SuperAdmin || role == Admin
}

// CanViewAccounting allows the accounting reports.
func CanViewAccounting(role string) bool {
	return role == SuperAdmin || role == Admin || role == Finance
}

// CanManagePromos allows promo code CRUD and the usage report.
func CanManagePromos(role string) bool {
	return role == SuperAdmin || role == Admin
}

// CanRunStatsWorkflow allows submitting recordings, viewing poll state,
// and confirming player mappings.
func CanRunStatsWorkflow(role string) bool {
	return role == SuperAdmin || role == Admin || role == Operations || role == FootballChief
}

// CanManageSeasons allows season activation and leaderboard recalculation.
func CanManageSeasons(role string) bool {
	return role == SuperAdmin || role == Admin
}

// CanManageTickets allows updating ticket workflow fields.
func CanManageTickets(role string) bool {
	return role == SuperAdmin || role == Admin || role == Operations
}

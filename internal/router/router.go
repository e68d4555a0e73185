// Package router wires HTTP routes to handlers. Routes are grouped by
// the capability that gates them, so the role matrix is visible in one
// file: each group attaches JWTAuth plus the one capability predicate
// its endpoints share.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/handler"
	"github.com/turfbook/match-admin/internal/middleware"
	"github.com/turfbook/match-admin/internal/roles"
)

// Handlers collects every handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Venues      *handler.VenueHandler
	Matches     *handler.MatchHandler
	Recurring   *handler.RecurringHandler
	Cancel      *handler.CancelHandler
	Participant *handler.ParticipantHandler
	Promos      *handler.PromoHandler
	Seasons     *handler.SeasonHandler
	Leaderboard *handler.LeaderboardHandler
	Tickets     *handler.TicketHandler
	Accounting  *handler.AccountingHandler
	Stats       *handler.StatsHandler
	Uploads     *handler.UploadHandler
}

// Register mounts every route on the Echo instance.
func Register(e *echo.Echo, h Handlers, jwtSecret string) {
	e.GET("/healthz", handler.Health)

	// ---- Authentication (no session required) ----
	auth := e.Group("/v1/auth")
	auth.POST("/send-otp", h.Auth.SendOTP)
	auth.POST("/verify-otp", h.Auth.VerifyOTP)

	// Session endpoints: any valid staff token.
	session := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	session.GET("/me", h.Auth.Me)
	session.POST("/logout", h.Auth.Logout)

	// ---- Match browsing: every staff role sees the dashboard ----
	session.GET("/matches", h.Matches.List)
	session.GET("/matches/:id", h.Matches.Get)
	session.GET("/matches/:id/participants", h.Participant.List)
	session.GET("/leaderboard", h.Leaderboard.Get)
	session.GET("/seasons", h.Seasons.List)
	session.GET("/tickets", h.Tickets.List)
	session.GET("/tickets/:id", h.Tickets.Get)

	// ---- Match management ----
	matches := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireCapability(roles.CanManageMatches),
	)
	matches.POST("/matches", h.Matches.Create)
	matches.PUT("/matches/:id", h.Matches.Update)
	matches.DELETE("/matches/:id", h.Matches.Delete)
	matches.POST("/matches/recurring/preview", h.Recurring.Preview)
	matches.POST("/matches/recurring", h.Recurring.Create)
	matches.POST("/matches/:id/participants", h.Participant.Add)
	matches.DELETE("/matches/:id/participants/:participantId", h.Participant.Remove)
	matches.GET("/uploads/matches/template", h.Uploads.MatchTemplate)
	matches.POST("/uploads/matches", h.Uploads.UploadMatches)

	// Venues ride on the match-management capability; they are the
	// places matches happen.
	matches.GET("/venues", h.Venues.List)
	matches.GET("/venues/:id", h.Venues.Get)
	matches.POST("/venues", h.Venues.Create)
	matches.PUT("/venues/:id", h.Venues.Update)
	matches.DELETE("/venues/:id", h.Venues.Delete)

	// ---- Cancellation ----
	cancel := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireCapability(roles.CanCancelMatch),
	)
	cancel.GET("/matches/:id/cancel-preview", h.Cancel.Preview)
	cancel.POST("/matches/:id/cancel", h.Cancel.Cancel)

	// ---- Staff and player accounts ----
	users := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireCapability(roles.CanManageUsers),
	)
	users.GET("/users", h.Users.List)
	users.GET("/users/:id", h.Users.Get)
	users.POST("/users", h.Users.Create)
	users.PUT("/users/:id", h.Users.Update)
	users.DELETE("/users/:id", h.Users.Deactivate)

	// ---- Promo codes ----
	promos := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireCapability(roles.CanManagePromos),
	)
	promos.GET("/promos", h.Promos.List)
	promos.GET("/promos/:id", h.Promos.Get)
	promos.POST("/promos", h.Promos.Create)
	promos.PUT("/promos/:id", h.Promos.Update)
	promos.DELETE("/promos/:id", h.Promos.Delete)
	promos.GET("/promos/:id/usage", h.Promos.Usage)

	// ---- Accounting reports ----
	accounting := e.Group(
		"/v1/accounting",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireCapability(roles.CanViewAccounting),
	)
	accounting.GET("/summary", h.Accounting.Summary)
	accounting.GET("/by-city", h.Accounting.ByCity)
	accounting.GET("/by-football-chief", h.Accounting.ByFootballChief)
	accounting.GET("/cancelled-matches", h.Accounting.CancelledMatches)

	// ---- Stats workflow ----
	statsg := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireCapability(roles.CanRunStatsWorkflow),
	)
	statsg.GET("/matches/:id/stats", h.Stats.Status)
	statsg.POST("/matches/:id/stats/submit", h.Stats.Submit)
	statsg.GET("/matches/:id/stats/mapping", h.Stats.Mapping)
	statsg.POST("/matches/:id/stats/mapping", h.Stats.ConfirmMapping)
	statsg.POST("/uploads/stats", h.Uploads.UploadStats)

	// ---- Seasons ----
	seasons := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireCapability(roles.CanManageSeasons),
	)
	seasons.POST("/seasons", h.Seasons.Create)
	seasons.POST("/seasons/:id/activate", h.Seasons.Activate)
	seasons.POST("/seasons/:id/recalculate", h.Seasons.Recalculate)

	// ---- Support tickets ----
	tickets := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireCapability(roles.CanManageTickets),
	)
	tickets.PUT("/tickets/:id/workflow", h.Tickets.UpdateWorkflow)
}

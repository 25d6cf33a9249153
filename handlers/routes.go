package handlers

import (
	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/racetracker/middleware"
)

// Register mounts the API under /rp. Everything except signin needs a valid
// token; saving the race card or results and recomputing the league also need
// the admin claim.
func (h *Handler) Register(e *echo.Echo) {
	if e.Validator == nil {
		e.Validator = NewValidator()
	}

	// Public
	e.POST("/rp/signin", h.Signin)

	// Protected – require valid JWT in Authorization header
	rp := e.Group("/rp", mw.JWT(h.jwtKey))
	rp.GET("/days", h.Days)
	rp.GET("/courses", h.Courses)
	rp.GET("/races", h.Races)
	rp.GET("/runners", h.Runners)
	rp.GET("/chips", h.Chips)
	rp.GET("/odds", h.Odds)

	rp.GET("/stable", h.Stable)
	rp.POST("/selections", h.SaveSelection)
	rp.DELETE("/selections/:id", h.DeleteSelection)

	rp.GET("/league", h.LeagueTable)

	rp.GET("/bets", h.Bets)
	rp.GET("/bets/summary", h.BetSummary)
	rp.POST("/bets", h.CreateBet)
	rp.PUT("/bets/:id", h.UpdateBet)
	rp.DELETE("/bets/:id", h.DeleteBet)

	rp.POST("/league/recompute", h.RecomputeLeague, mw.RequireAdmin())
	rp.POST("/runners", h.SaveRunners, mw.RequireAdmin())
	rp.POST("/results", h.RecordResults, mw.RequireAdmin())
}

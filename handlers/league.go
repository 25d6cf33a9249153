package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mw "github.com/padraicbc/racetracker/middleware"
)

// LeagueTable returns the league table as of the last recompute.
func (h *Handler) LeagueTable(c echo.Context) error {
	rows, err := h.store.Standings(c.Request().Context())
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// RecomputeLeague rescores every selection and saves the totals. Safe to
// trigger repeatedly.
func (h *Handler) RecomputeLeague(c echo.Context) error {
	standings, err := h.league.Recompute(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	zap.L().Info("league recompute requested", zap.String("by", mw.Username(c)))
	return c.JSON(http.StatusOK, standings)
}

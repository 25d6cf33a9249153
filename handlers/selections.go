package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racetracker/db"
	"github.com/padraicbc/racetracker/fantasy"
	mw "github.com/padraicbc/racetracker/middleware"
	"github.com/padraicbc/racetracker/models"
)

type selectionRequest struct {
	RaceID  int    `json:"raceID" validate:"required,gt=0"`
	HorseID int    `json:"horseID" validate:"required,gt=0"`
	Chip    string `json:"chip" validate:"omitempty,chip"`
}

// Stable returns the caller's scored selections with achievements, for one
// day when ?day= is given.
func (h *Handler) Stable(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	dayID, err := optionalInt(c, "day")
	if err != nil {
		return err
	}

	stable, err := h.league.Stable(c.Request().Context(), userID, dayID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stable)
}

// SaveSelection picks a horse for a race, replacing any earlier pick for the
// same race. The horse must be on the race card and the pick takes the card's
// current price. Picks lock at the day's cutoff or the race's off time,
// whichever is first, and each chip may be played once.
func (h *Handler) SaveSelection(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req selectionRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	chip, _ := fantasy.ParseChip(req.Chip)

	ctx := c.Request().Context()
	race, err := h.store.Race(ctx, req.RaceID)
	if err != nil {
		return storeError(err)
	}
	if err := h.checkOpen(c, race); err != nil {
		return err
	}
	runner, err := h.store.Runner(ctx, race.RaceID, req.HorseID)
	if errors.Is(err, db.ErrNotFound) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "horse is not running in this race")
	}
	if err != nil {
		return storeError(err)
	}

	if chip != fantasy.ChipNone {
		used, err := h.store.ChipUsed(ctx, userID, chip.String(), race.RaceID)
		if err != nil {
			return storeError(err)
		}
		if used {
			return echo.NewHTTPError(http.StatusConflict, chip.String()+" has already been played")
		}
	}

	sel := &models.Selection{
		UserID:  userID,
		DayID:   race.DayID,
		RaceID:  race.RaceID,
		HorseID: req.HorseID,
		Price:   runner.Price,
		Chip:    chip.String(),
	}
	if err := h.store.SaveSelection(ctx, sel); err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusCreated, sel)
}

// DeleteSelection withdraws a pick before it locks.
func (h *Handler) DeleteSelection(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuidParam(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	sel, err := h.store.Selection(ctx, id, userID)
	if err != nil {
		return storeError(err)
	}
	race, err := h.store.Race(ctx, sel.RaceID)
	if err != nil {
		return storeError(err)
	}
	if err := h.checkOpen(c, race); err != nil {
		return err
	}

	if err := h.store.DeleteSelection(ctx, id, userID); err != nil {
		return storeError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) checkOpen(c echo.Context, race *models.Race) error {
	day, err := h.store.Day(c.Request().Context(), race.DayID)
	if err != nil {
		return storeError(err)
	}
	now := h.now()
	if day.Locked(now) || !now.Before(race.OffTime) {
		return echo.NewHTTPError(http.StatusConflict, "selections are closed for this race")
	}
	return nil
}

type chipData struct {
	Chip fantasy.Chip `json:"chip"`
	Used bool         `json:"used"`
}

// Chips lists every chip and whether the caller has already played it.
func (h *Handler) Chips(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	result := make([]chipData, len(fantasy.Chips))
	for i, chip := range fantasy.Chips {
		used, err := h.store.ChipUsed(c.Request().Context(), userID, chip.String(), 0)
		if err != nil {
			return storeError(err)
		}
		result[i] = chipData{Chip: chip, Used: used}
	}
	return c.JSON(http.StatusOK, result)
}

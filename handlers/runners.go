package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racetracker/fantasy"
	"github.com/padraicbc/racetracker/models"
)

type runnerData struct {
	HorseID int    `json:"horseID"`
	Horse   string `json:"horse,omitempty"`
	Price   string `json:"price,omitempty"`
	Display string `json:"display,omitempty"`
}

type cardEntry struct {
	HorseID int    `json:"horseID" validate:"required,gt=0"`
	Price   string `json:"price" validate:"omitempty,odds"`
}

type cardRequest struct {
	RaceID  int         `json:"raceID" validate:"required,gt=0"`
	Runners []cardEntry `json:"runners" validate:"required,min=1,dive"`
}

// Runners returns the card for ?race= with each runner's current price.
func (h *Handler) Runners(c echo.Context) error {
	raceID, err := optionalInt(c, "race")
	if err != nil {
		return err
	}
	if raceID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "missing race param")
	}

	runners, err := h.store.Runners(c.Request().Context(), raceID)
	if err != nil {
		return storeError(err)
	}

	result := make([]runnerData, len(runners))
	for i, rn := range runners {
		result[i] = runnerData{HorseID: rn.HorseID}
		if rn.Horse != nil {
			result[i].Horse = rn.Horse.Horse
		}
		if rn.Price != nil {
			result[i].Price = *rn.Price
			if dec, err := fantasy.ParseOdds(*rn.Price); err == nil {
				result[i].Display = fantasy.FormatOdds(dec)
			}
		}
	}
	return c.JSON(http.StatusOK, result)
}

// SaveRunners declares runners for a race and sets the prices selections
// will take. Re-posting a runner moves its price; picks already made keep
// the price they were made at.
func (h *Handler) SaveRunners(c echo.Context) error {
	var req cardRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.store.Race(ctx, req.RaceID); err != nil {
		return storeError(err)
	}

	runners := make([]models.Runner, len(req.Runners))
	for i, e := range req.Runners {
		runners[i] = models.Runner{RaceID: req.RaceID, HorseID: e.HorseID}
		if p := strings.TrimSpace(e.Price); p != "" {
			runners[i].Price = &p
		}
	}

	if err := h.store.SaveRunners(ctx, runners); err != nil {
		return storeError(err)
	}
	return c.NoContent(http.StatusAccepted)
}

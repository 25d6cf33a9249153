package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racetracker/models"
)

type runnerResult struct {
	HorseID int    `json:"horseID" validate:"required,gt=0"`
	Placed  string `json:"placed" validate:"required,max=4"`
	Price   string `json:"price" validate:"omitempty,odds"`
}

type resultsRequest struct {
	RaceID  int            `json:"raceID" validate:"required,gt=0"`
	Runners []runnerResult `json:"runners" validate:"required,min=1,dive"`
}

// RecordResults stores finishing positions and starting prices for a race.
// Re-posting a race overwrites earlier positions, which is how corrections
// are applied; stables pick them up on the next read.
func (h *Handler) RecordResults(c echo.Context) error {
	var req resultsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.store.Race(ctx, req.RaceID); err != nil {
		return storeError(err)
	}

	results := make([]models.RaceResult, len(req.Runners))
	for i, rr := range req.Runners {
		results[i] = models.RaceResult{
			RaceID:  req.RaceID,
			HorseID: rr.HorseID,
			Placed:  strings.ToUpper(strings.TrimSpace(rr.Placed)),
		}
		if p := strings.TrimSpace(rr.Price); p != "" {
			results[i].Price = &p
		}
	}

	if err := h.store.RecordResults(ctx, results); err != nil {
		return storeError(err)
	}
	return c.NoContent(http.StatusAccepted)
}

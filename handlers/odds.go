package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racetracker/fantasy"
)

type oddsData struct {
	Decimal    float64 `json:"decimal"`
	Fractional string  `json:"fractional"`
	Display    string  `json:"display"`
}

// Odds converts a price between decimal and fractional forms.
func (h *Handler) Odds(c echo.Context) error {
	price := c.QueryParam("price")
	if price == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing price param")
	}

	dec, err := fantasy.ParseOdds(price)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, oddsData{
		Decimal:    dec,
		Fractional: fantasy.DecimalToFractional(dec),
		Display:    fantasy.FormatOdds(dec),
	})
}

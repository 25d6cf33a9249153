package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racetracker/betting"
	"github.com/padraicbc/racetracker/fantasy"
	mw "github.com/padraicbc/racetracker/middleware"
	"github.com/padraicbc/racetracker/models"
)

type betRequest struct {
	PlacedAt    *time.Time `json:"placedAt"`
	Description string     `json:"description" validate:"required,max=200"`
	Bookmaker   string     `json:"bookmaker" validate:"max=60"`
	Stake       float64    `json:"stake" validate:"gt=0"`
	Price       string     `json:"price" validate:"required,odds"`
	EachWay     bool       `json:"eachWay"`
	PlaceTerms  float64    `json:"placeTerms" validate:"gte=0,lte=1"`
	Outcome     string     `json:"outcome" validate:"omitempty,oneof=pending won placed lost void"`
}

type betData struct {
	models.Bet
	Decimal    float64 `json:"decimal"`
	ProfitLoss float64 `json:"profitLoss"`
}

func ticket(b *models.Bet) betting.Bet {
	return betting.Bet{
		Stake:      b.Stake,
		Odds:       fantasy.OddsOrDefault(b.Price),
		EachWay:    b.EachWay,
		PlaceTerms: b.PlaceTerms,
		Outcome:    betting.Outcome(b.Outcome),
	}
}

func toBetData(b *models.Bet) betData {
	t := ticket(b)
	return betData{Bet: *b, Decimal: t.Odds, ProfitLoss: betting.ProfitLoss(t)}
}

func (h *Handler) betFromRequest(c echo.Context, userID int) (*models.Bet, error) {
	var req betRequest
	if err := bindValid(c, &req); err != nil {
		return nil, err
	}
	outcome, err := betting.ParseOutcome(req.Outcome)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bet := &models.Bet{
		UserID:      userID,
		PlacedAt:    h.now().UTC(),
		Description: strings.TrimSpace(req.Description),
		Stake:       req.Stake,
		Price:       strings.TrimSpace(req.Price),
		EachWay:     req.EachWay,
		PlaceTerms:  req.PlaceTerms,
		Outcome:     string(outcome),
	}
	if req.PlacedAt != nil {
		bet.PlacedAt = req.PlacedAt.UTC()
	}
	if bet.PlaceTerms == 0 {
		bet.PlaceTerms = betting.DefaultPlaceTerms
	}
	if b := strings.TrimSpace(req.Bookmaker); b != "" {
		bet.Bookmaker = &b
	}
	return bet, nil
}

// sinceParam reads ?since=YYYY-MM-DD; missing means all time.
func sinceParam(c echo.Context) (time.Time, error) {
	raw := c.QueryParam("since")
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "since must be YYYY-MM-DD")
	}
	return t, nil
}

// Bets lists the caller's bets with their profit or loss.
func (h *Handler) Bets(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	since, err := sinceParam(c)
	if err != nil {
		return err
	}

	bets, err := h.store.Bets(c.Request().Context(), userID, since)
	if err != nil {
		return storeError(err)
	}

	result := make([]betData, len(bets))
	for i := range bets {
		result[i] = toBetData(&bets[i])
	}
	return c.JSON(http.StatusOK, result)
}

// BetSummary returns profit/loss analytics over the caller's bets.
func (h *Handler) BetSummary(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	since, err := sinceParam(c)
	if err != nil {
		return err
	}

	bets, err := h.store.Bets(c.Request().Context(), userID, since)
	if err != nil {
		return storeError(err)
	}

	tickets := make([]betting.Bet, len(bets))
	for i := range bets {
		tickets[i] = ticket(&bets[i])
	}
	return c.JSON(http.StatusOK, betting.Summarize(tickets))
}

// CreateBet logs a new bet.
func (h *Handler) CreateBet(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	bet, err := h.betFromRequest(c, userID)
	if err != nil {
		return err
	}

	if err := h.store.CreateBet(c.Request().Context(), bet); err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusCreated, toBetData(bet))
}

// UpdateBet replaces a bet, typically to settle it.
func (h *Handler) UpdateBet(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuidParam(c)
	if err != nil {
		return err
	}
	bet, err := h.betFromRequest(c, userID)
	if err != nil {
		return err
	}
	bet.ID = id

	if err := h.store.UpdateBet(c.Request().Context(), bet); err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, toBetData(bet))
}

// DeleteBet removes one of the caller's bets.
func (h *Handler) DeleteBet(c echo.Context) error {
	userID, ok := mw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuidParam(c)
	if err != nil {
		return err
	}

	if err := h.store.DeleteBet(c.Request().Context(), id, userID); err != nil {
		return storeError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

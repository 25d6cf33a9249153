package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racetracker/db"
	"github.com/padraicbc/racetracker/fantasy"
	"github.com/padraicbc/racetracker/league"
	"github.com/padraicbc/racetracker/models"
)

// Store is the storage the handlers need.
type Store interface {
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	Days(ctx context.Context) ([]models.LeagueDay, error)
	Day(ctx context.Context, dayID int) (*models.LeagueDay, error)
	Courses(ctx context.Context, dayID int) ([]models.Course, error)
	Races(ctx context.Context, dayID int) ([]models.Race, error)
	Race(ctx context.Context, raceID int) (*models.Race, error)
	Runners(ctx context.Context, raceID int) ([]models.Runner, error)
	Runner(ctx context.Context, raceID, horseID int) (*models.Runner, error)
	SaveRunners(ctx context.Context, runners []models.Runner) error
	SaveSelection(ctx context.Context, sel *models.Selection) error
	Selection(ctx context.Context, id uuid.UUID, userID int) (*models.Selection, error)
	DeleteSelection(ctx context.Context, id uuid.UUID, userID int) error
	ChipUsed(ctx context.Context, userID int, chip string, exceptRaceID int) (bool, error)
	RecordResults(ctx context.Context, results []models.RaceResult) error
	Standings(ctx context.Context) ([]models.StandingRow, error)
	Bets(ctx context.Context, userID int, since time.Time) ([]models.Bet, error)
	CreateBet(ctx context.Context, bet *models.Bet) error
	UpdateBet(ctx context.Context, bet *models.Bet) error
	DeleteBet(ctx context.Context, id uuid.UUID, userID int) error
}

// League scores stables and recomputes the league table.
type League interface {
	Stable(ctx context.Context, userID, dayID int) (*league.Stable, error)
	Recompute(ctx context.Context) ([]fantasy.Standing, error)
}

// Options configures a Handler.
type Options struct {
	JWTKey   []byte
	TokenTTL time.Duration
	// IsAdmin reports whether a username gets admin rights regardless of the
	// users.is_admin flag.
	IsAdmin func(username string) bool
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store    Store
	league   League
	jwtKey   []byte
	tokenTTL time.Duration
	isAdmin  func(string) bool
	now      func() time.Time
}

// New creates a Handler.
func New(store Store, lg League, opts Options) *Handler {
	isAdmin := opts.IsAdmin
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &Handler{
		store:    store,
		league:   lg,
		jwtKey:   opts.JWTKey,
		tokenTTL: opts.TokenTTL,
		isAdmin:  isAdmin,
		now:      time.Now,
	}
}

// storeError maps storage errors onto HTTP errors.
func storeError(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// optionalInt reads a non-negative integer query param; missing is 0.
func optionalInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" param")
	}
	return n, nil
}

func uuidParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// bindValid binds the request body and runs the registered validator.
func bindValid(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.Validate(v)
}

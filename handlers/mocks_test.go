package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/racetracker/fantasy"
	"github.com/padraicbc/racetracker/league"
	mw "github.com/padraicbc/racetracker/middleware"
	"github.com/padraicbc/racetracker/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) Days(ctx context.Context) ([]models.LeagueDay, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.LeagueDay), args.Error(1)
}

func (m *MockStore) Day(ctx context.Context, dayID int) (*models.LeagueDay, error) {
	args := m.Called(ctx, dayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeagueDay), args.Error(1)
}

func (m *MockStore) Courses(ctx context.Context, dayID int) ([]models.Course, error) {
	args := m.Called(ctx, dayID)
	return args.Get(0).([]models.Course), args.Error(1)
}

func (m *MockStore) Races(ctx context.Context, dayID int) ([]models.Race, error) {
	args := m.Called(ctx, dayID)
	return args.Get(0).([]models.Race), args.Error(1)
}

func (m *MockStore) Race(ctx context.Context, raceID int) (*models.Race, error) {
	args := m.Called(ctx, raceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Race), args.Error(1)
}

func (m *MockStore) Runners(ctx context.Context, raceID int) ([]models.Runner, error) {
	args := m.Called(ctx, raceID)
	return args.Get(0).([]models.Runner), args.Error(1)
}

func (m *MockStore) Runner(ctx context.Context, raceID, horseID int) (*models.Runner, error) {
	args := m.Called(ctx, raceID, horseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Runner), args.Error(1)
}

func (m *MockStore) SaveRunners(ctx context.Context, runners []models.Runner) error {
	return m.Called(ctx, runners).Error(0)
}

func (m *MockStore) SaveSelection(ctx context.Context, sel *models.Selection) error {
	return m.Called(ctx, sel).Error(0)
}

func (m *MockStore) Selection(ctx context.Context, id uuid.UUID, userID int) (*models.Selection, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Selection), args.Error(1)
}

func (m *MockStore) DeleteSelection(ctx context.Context, id uuid.UUID, userID int) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockStore) ChipUsed(ctx context.Context, userID int, chip string, exceptRaceID int) (bool, error) {
	args := m.Called(ctx, userID, chip, exceptRaceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) RecordResults(ctx context.Context, results []models.RaceResult) error {
	return m.Called(ctx, results).Error(0)
}

func (m *MockStore) Standings(ctx context.Context) ([]models.StandingRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.StandingRow), args.Error(1)
}

func (m *MockStore) Bets(ctx context.Context, userID int, since time.Time) ([]models.Bet, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).([]models.Bet), args.Error(1)
}

func (m *MockStore) CreateBet(ctx context.Context, bet *models.Bet) error {
	return m.Called(ctx, bet).Error(0)
}

func (m *MockStore) UpdateBet(ctx context.Context, bet *models.Bet) error {
	return m.Called(ctx, bet).Error(0)
}

func (m *MockStore) DeleteBet(ctx context.Context, id uuid.UUID, userID int) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockLeague struct {
	mock.Mock
}

func (m *MockLeague) Stable(ctx context.Context, userID, dayID int) (*league.Stable, error) {
	args := m.Called(ctx, userID, dayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*league.Stable), args.Error(1)
}

func (m *MockLeague) Recompute(ctx context.Context) ([]fantasy.Standing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fantasy.Standing), args.Error(1)
}

var (
	testKey = []byte("handler-test-key")
	testNow = time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC)
)

type testServer struct {
	e      *echo.Echo
	store  *MockStore
	league *MockLeague
}

func newTestServer() *testServer {
	store := new(MockStore)
	lg := new(MockLeague)
	h := New(store, lg, Options{
		JWTKey:   testKey,
		TokenTTL: time.Hour,
		IsAdmin:  func(u string) bool { return u == "admin" },
	})
	h.now = func() time.Time { return testNow }

	e := echo.New()
	h.Register(e)
	return &testServer{e: e, store: store, league: lg}
}

func token(t *testing.T, userID int, admin bool) string {
	t.Helper()
	tkn, err := mw.NewToken(testKey, userID, "user", admin, time.Hour)
	require.NoError(t, err)
	return tkn
}

func (s *testServer) do(method, path, tkn, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if tkn != "" {
		req.Header.Set("Authorization", "Bearer "+tkn)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

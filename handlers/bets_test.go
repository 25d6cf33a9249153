package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/racetracker/models"
)

func TestBets(t *testing.T) {
	s := newTestServer()
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.store.On("Bets", mock.Anything, 7, since).Return([]models.Bet{
		{ID: uuid.New(), Description: "Gold Cup", Stake: 10, Price: "5/1", Outcome: "won"},
	}, nil)

	rec := s.do(http.MethodGet, "/rp/bets?since=2026-03-01", token(t, 7, false), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"profitLoss":50`)
	assert.Contains(t, rec.Body.String(), `"decimal":6`)

	rec = s.do(http.MethodGet, "/rp/bets?since=March", token(t, 7, false), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBetSummary(t *testing.T) {
	s := newTestServer()
	s.store.On("Bets", mock.Anything, 7, time.Time{}).Return([]models.Bet{
		{Stake: 10, Price: "5/1", Outcome: "won"},
		{Stake: 10, Price: "2/1", Outcome: "lost"},
		{Stake: 10, Price: "9/2", Outcome: "pending"},
	}, nil)

	rec := s.do(http.MethodGet, "/rp/bets/summary", token(t, 7, false), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bets":3,"settled":2,"winners":1,"staked":20,"returned":60,"profit":40,"roi":200,"strikeRate":50}`,
		rec.Body.String())
}

func TestCreateBet(t *testing.T) {
	s := newTestServer()
	s.store.On("CreateBet", mock.Anything, mock.MatchedBy(func(b *models.Bet) bool {
		return b.UserID == 7 && b.EachWay && b.PlaceTerms == 0.25 && b.Outcome == "pending" &&
			b.PlacedAt.Equal(testNow) && b.Bookmaker != nil && *b.Bookmaker == "Paddy"
	})).Return(nil)

	rec := s.do(http.MethodPost, "/rp/bets", token(t, 7, false),
		`{"description":"Gold Cup EW","bookmaker":"Paddy","stake":5,"price":"8/1","eachWay":true}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "userID")
	s.store.AssertExpectations(t)
}

func TestCreateBetValidation(t *testing.T) {
	s := newTestServer()
	tkn := token(t, 7, false)

	rec := s.do(http.MethodPost, "/rp/bets", tkn, `{"description":"x","stake":5,"price":"8/1","outcome":"cashed"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "outcome must be one of")

	rec = s.do(http.MethodPost, "/rp/bets", tkn, `{"description":"x","stake":0,"price":"8/1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/rp/bets", tkn, `{"description":"x","stake":5,"price":"long"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	s.store.AssertNotCalled(t, "CreateBet", mock.Anything, mock.Anything)
}

func TestUpdateAndDeleteBet(t *testing.T) {
	id := uuid.New()
	s := newTestServer()
	s.store.On("UpdateBet", mock.Anything, mock.MatchedBy(func(b *models.Bet) bool {
		return b.ID == id && b.Outcome == "lost"
	})).Return(nil)
	s.store.On("DeleteBet", mock.Anything, id, 7).Return(nil)

	rec := s.do(http.MethodPut, "/rp/bets/"+id.String(), token(t, 7, false),
		`{"description":"Gold Cup","stake":10,"price":"3/1","outcome":"lost"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"profitLoss":-10`)

	rec = s.do(http.MethodDelete, "/rp/bets/"+id.String(), token(t, 7, false), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	s.store.AssertExpectations(t)
}

package betting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfitLoss(t *testing.T) {
	tests := []struct {
		name string
		bet  Bet
		want float64
	}{
		{name: "win single", bet: Bet{Stake: 10, Odds: 6, Outcome: OutcomeWon}, want: 50},
		{name: "lost single", bet: Bet{Stake: 10, Odds: 6, Outcome: OutcomeLost}, want: -10},
		{name: "placed single loses", bet: Bet{Stake: 10, Odds: 6, Outcome: OutcomePlaced}, want: -10},
		{name: "each-way won", bet: Bet{Stake: 5, Odds: 9, EachWay: true, Outcome: OutcomeWon}, want: 50},
		{name: "each-way placed", bet: Bet{Stake: 5, Odds: 9, EachWay: true, Outcome: OutcomePlaced}, want: 5},
		{name: "each-way placed fifth terms", bet: Bet{Stake: 5, Odds: 11, EachWay: true, PlaceTerms: 0.2, Outcome: OutcomePlaced}, want: 5},
		{name: "each-way lost", bet: Bet{Stake: 5, Odds: 9, EachWay: true, Outcome: OutcomeLost}, want: -10},
		{name: "void", bet: Bet{Stake: 5, Odds: 9, Outcome: OutcomeVoid}, want: 0},
		{name: "pending", bet: Bet{Stake: 5, Odds: 9, Outcome: OutcomePending}, want: 0},
		{name: "rounds pennies", bet: Bet{Stake: 3.33, Odds: 2.375, Outcome: OutcomeWon}, want: 4.58},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ProfitLoss(tt.bet), 1e-9)
		})
	}
}

func TestSummarize(t *testing.T) {
	bets := []Bet{
		{Stake: 10, Odds: 6, Outcome: OutcomeWon},
		{Stake: 10, Odds: 3, Outcome: OutcomeLost},
		{Stake: 5, Odds: 9, EachWay: true, Outcome: OutcomePlaced},
		{Stake: 20, Odds: 2, Outcome: OutcomeVoid},
		{Stake: 20, Odds: 2, Outcome: OutcomePending},
	}

	got := Summarize(bets)

	assert.Equal(t, Summary{
		Bets:       5,
		Settled:    3,
		Winners:    1,
		Staked:     30,
		Returned:   75,
		Profit:     45,
		ROI:        150,
		StrikeRate: 33.33,
	}, got)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestParseOutcome(t *testing.T) {
	o, err := ParseOutcome("")
	require.NoError(t, err)
	assert.Equal(t, OutcomePending, o)

	o, err = ParseOutcome(" WON ")
	require.NoError(t, err)
	assert.Equal(t, OutcomeWon, o)

	_, err = ParseOutcome("cashed-out")
	assert.Error(t, err)
}

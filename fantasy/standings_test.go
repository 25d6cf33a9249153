package fantasy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestAggregateStandings(t *testing.T) {
	byUser := map[string][]Selection{
		"alice": {
			{Result: ResultWin, Odds: 3.0},                          // 15
			{Result: ResultLoss, Odds: 5.0, Chip: ChipTripleThreat}, // -60
			{Result: ResultPlace, Odds: 2.0, Chip: ChipDoubleChance, Points: 1000},
		},
		"bob": {
			{Result: ResultUnresolved, Odds: 40},
		},
		"carol": {},
	}

	got := AggregateStandings(byUser)

	assert.Equal(t, map[string]int{"alice": -30, "bob": 0, "carol": 0}, got)
}

func TestAggregateStandingsEmpty(t *testing.T) {
	assert.Equal(t, map[string]int{}, AggregateStandings(map[string][]Selection{}))
	assert.Empty(t, AggregateStandings(nil))
}

func TestAggregateStandingsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		users := rapid.SliceOfN(rapid.StringMatching(`u[0-9]`), 0, 6).Draw(t, "users")
		var sels []Selection
		for _, u := range users {
			sels = append(sels, Selection{
				UserID: u,
				Result: rapid.SampledFrom([]Result{ResultUnresolved, ResultWin, ResultPlace, ResultLoss}).Draw(t, "result"),
				Odds:   rapid.Float64Range(1.1, 60).Draw(t, "odds"),
				Chip:   rapid.SampledFrom([]Chip{ChipNone, ChipSuperBoost, ChipDoubleChance, ChipTripleThreat}).Draw(t, "chip"),
			})
		}
		byUser := GroupByUser(sels)

		first := AggregateStandings(byUser)
		second := AggregateStandings(byUser)

		if len(first) != len(second) {
			t.Fatalf("totals changed size: %v vs %v", first, second)
		}
		for u, pts := range first {
			if second[u] != pts {
				t.Fatalf("total for %s changed: %d vs %d", u, pts, second[u])
			}
		}
	})
}

func TestGroupByUser(t *testing.T) {
	sels := []Selection{{UserID: "a", HorseID: "1"}, {UserID: "b", HorseID: "2"}, {UserID: "a", HorseID: "3"}}

	got := GroupByUser(sels)

	assert.Len(t, got, 2)
	assert.Equal(t, []Selection{{UserID: "a", HorseID: "1"}, {UserID: "a", HorseID: "3"}}, got["a"])
}

func TestRankStandings(t *testing.T) {
	got := RankStandings(map[string]int{"dan": 10, "amy": 40, "cat": 40, "bea": -5})

	assert.Equal(t, []Standing{
		{Position: 1, UserID: "amy", Points: 40},
		{Position: 1, UserID: "cat", Points: 40},
		{Position: 3, UserID: "dan", Points: 10},
		{Position: 4, UserID: "bea", Points: -5},
	}, got)
	assert.Empty(t, RankStandings(nil))
}

func TestRankStandingsNumericTieOrder(t *testing.T) {
	got := RankStandings(map[string]int{"10": 25, "2": 25, "9": 25, "100": 30})

	assert.Equal(t, []Standing{
		{Position: 1, UserID: "100", Points: 30},
		{Position: 2, UserID: "2", Points: 25},
		{Position: 2, UserID: "9", Points: 25},
		{Position: 2, UserID: "10", Points: 25},
	}, got)
}

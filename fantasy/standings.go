package fantasy

import (
	"cmp"
	"slices"
	"strconv"
)

// Standing is one row of a ranked league table.
type Standing struct {
	Position int    `json:"position"`
	UserID   string `json:"userID"`
	Points   int    `json:"points"`
}

// AggregateStandings totals each user's points. Points are recomputed from
// result, odds and chip rather than trusted from the input, so running it
// again over the same selections always gives the same totals.
func AggregateStandings(byUser map[string][]Selection) map[string]int {
	totals := make(map[string]int, len(byUser))
	for user, sels := range byUser {
		total := 0
		for _, s := range sels {
			total += ComputePoints(s.Result, s.Odds, s.Chip)
		}
		totals[user] = total
	}
	return totals
}

// GroupByUser buckets selections by UserID, keeping their order.
func GroupByUser(sels []Selection) map[string][]Selection {
	out := make(map[string][]Selection)
	for _, s := range sels {
		out[s.UserID] = append(out[s.UserID], s)
	}
	return out
}

// RankStandings orders totals for display, highest first. Equal totals share a
// position; rows within a tie are ordered by user ID, numerically when both
// IDs are numbers.
func RankStandings(totals map[string]int) []Standing {
	rows := make([]Standing, 0, len(totals))
	for user, pts := range totals {
		rows = append(rows, Standing{UserID: user, Points: pts})
	}
	slices.SortFunc(rows, func(a, b Standing) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return compareIDs(a.UserID, b.UserID)
	})
	for i := range rows {
		if i > 0 && rows[i].Points == rows[i-1].Points {
			rows[i].Position = rows[i-1].Position
			continue
		}
		rows[i].Position = i + 1
	}
	return rows
}

func compareIDs(a, b string) int {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return cmp.Compare(x, y)
	}
	return cmp.Compare(a, b)
}

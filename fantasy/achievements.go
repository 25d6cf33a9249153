package fantasy

import (
	"cmp"
	"slices"
)

// UnderdogOdds is the shortest decimal price (8/1) a winner needs to be tagged
// an underdog.
const UnderdogOdds = 9.0

// DeriveAchievements tags one user's complete set of scored selections. The
// result is a copy in input order. Each tag goes to at most one selection and a
// selection carries at most one tag; earlier tags are never overwritten:
//
//   - bestPerformer: highest points, ties to the earliest selection
//   - underdog: first winner in input order priced at UnderdogOdds or longer
//   - consistent: first placed selection in points order after the top scorer
//
// Points are taken as given; run ScoreAll first.
func DeriveAchievements(sels []Selection) []Selection {
	out := make([]Selection, len(sels))
	copy(out, sels)
	if len(out) == 0 {
		return out
	}
	for i := range out {
		out[i].Achievement = AchievementNone
	}

	ranked := rankByPoints(out)
	out[ranked[0]].Achievement = AchievementBestPerformer

	for i := range out {
		if out[i].Achievement != AchievementNone {
			continue
		}
		if out[i].Result == ResultWin && out[i].Odds >= UnderdogOdds {
			out[i].Achievement = AchievementUnderdog
			break
		}
	}

	for _, i := range ranked[1:] {
		if out[i].Achievement != AchievementNone {
			continue
		}
		if out[i].Result == ResultPlace {
			out[i].Achievement = AchievementConsistent
			break
		}
	}

	return out
}

// rankByPoints returns indexes into sels ordered by points descending, stable
// on ties.
func rankByPoints(sels []Selection) []int {
	idx := make([]int, len(sels))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(sels[b].Points, sels[a].Points)
	})
	return idx
}

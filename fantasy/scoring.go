package fantasy

import (
	"math"
	"strconv"
	"strings"
)

// DefaultPlaces is how many finishing positions count as placed when the
// caller does not say otherwise.
const DefaultPlaces = 3

// Tier is an odds band. Upper bounds are inclusive, so 3.0 is TierShort.
type Tier int

const (
	TierShort   Tier = iota // up to 2/1
	TierMid                 // up to 4/1
	TierLong                // up to 8/1
	TierOutside             // over 8/1
)

var (
	winPoints   = [...]int{15, 20, 25, 30}
	placePoints = [...]int{5, 7, 10, 12}
)

const (
	superBoostFactor   = 10
	tripleThreatFactor = 3
)

// TierFor buckets a decimal price.
func TierFor(odds float64) Tier {
	switch {
	case odds <= 3.0:
		return TierShort
	case odds <= 5.0:
		return TierMid
	case odds <= 9.0:
		return TierLong
	default:
		return TierOutside
	}
}

// ComputePoints returns what a selection scores. Unresolved results score 0
// whatever the odds or chip. Prices that are not a positive finite number are
// scored at DefaultOdds.
func ComputePoints(result Result, odds float64, chip Chip) int {
	if result == ResultUnresolved {
		return 0
	}
	if math.IsNaN(odds) || math.IsInf(odds, 0) || odds <= 0 {
		odds = DefaultOdds
	}

	// doubleChance is the only chip that changes the classification.
	if chip == ChipDoubleChance && result == ResultPlace {
		result = ResultWin
	}

	tier := TierFor(odds)
	var base int
	switch result {
	case ResultWin:
		base = winPoints[tier]
	case ResultPlace:
		base = placePoints[tier]
	case ResultLoss:
		base = 0
	case ResultUnresolved:
		return 0
	}

	switch chip {
	case ChipSuperBoost:
		if result == ResultWin || result == ResultPlace {
			return base * superBoostFactor
		}
		return base
	case ChipTripleThreat:
		switch result {
		case ResultWin:
			return base * tripleThreatFactor
		case ResultLoss:
			return -winPoints[tier] * tripleThreatFactor
		case ResultPlace, ResultUnresolved:
			return base
		}
		return base
	case ChipDoubleChance, ChipNone:
		return base
	}
	return base
}

// Score returns a copy of sel with Points recomputed from its result, odds
// and chip.
func Score(sel Selection) Selection {
	sel.Points = ComputePoints(sel.Result, sel.Odds, sel.Chip)
	return sel
}

// ScoreAll scores every selection into a new slice.
func ScoreAll(sels []Selection) []Selection {
	out := make([]Selection, len(sels))
	for i, s := range sels {
		out[i] = Score(s)
	}
	return out
}

// ResultFromPlaced maps a recorded finishing position to a Result. "1" wins,
// 2..places is placed, and anything else that was recorded (a worse position, PU,
// F, UR...) is a loss. An empty position means the race has not been resulted.
func ResultFromPlaced(placed string, places int) Result {
	p := strings.TrimSpace(placed)
	if p == "" {
		return ResultUnresolved
	}
	if places <= 0 {
		places = DefaultPlaces
	}
	// dead heats are recorded as "1=", "2=".
	pos, err := strconv.Atoi(strings.TrimSuffix(p, "="))
	if err != nil {
		return ResultLoss
	}
	switch {
	case pos == 1:
		return ResultWin
	case pos >= 2 && pos <= places:
		return ResultPlace
	default:
		return ResultLoss
	}
}

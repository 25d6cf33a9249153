// Package fantasy holds the fantasy league rules: odds conversion, the points
// a selection earns, and the achievements and standings derived from scored
// selections. Nothing here does I/O; every function takes its full input and
// returns a new value.
package fantasy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownChip is returned by ParseChip for names that are not a chip.
var ErrUnknownChip = errors.New("unknown chip")

// Result is the outcome of a selection's race.
type Result int

const (
	ResultUnresolved Result = iota
	ResultWin
	ResultPlace
	ResultLoss
)

// ParseResult maps win, place or loss to a Result. Anything else, including
// the empty string, is unresolved.
func ParseResult(s string) Result {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win":
		return ResultWin
	case "place":
		return ResultPlace
	case "loss":
		return ResultLoss
	default:
		return ResultUnresolved
	}
}

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultPlace:
		return "place"
	case ResultLoss:
		return "loss"
	case ResultUnresolved:
		return "unresolved"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

func (r Result) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Result) UnmarshalText(b []byte) error {
	*r = ParseResult(string(b))
	return nil
}

// Chip is a one-off modifier a user can attach to a single selection.
type Chip int

const (
	ChipNone Chip = iota
	ChipSuperBoost
	ChipDoubleChance
	ChipTripleThreat
)

// Chips lists every usable chip.
var Chips = []Chip{ChipSuperBoost, ChipDoubleChance, ChipTripleThreat}

// ParseChip accepts the camelCase chip names. An empty string is ChipNone.
func ParseChip(s string) (Chip, error) {
	switch strings.TrimSpace(s) {
	case "", "none":
		return ChipNone, nil
	case "superBoost":
		return ChipSuperBoost, nil
	case "doubleChance":
		return ChipDoubleChance, nil
	case "tripleThreat":
		return ChipTripleThreat, nil
	}
	return ChipNone, fmt.Errorf("%w: %q", ErrUnknownChip, s)
}

func (c Chip) String() string {
	switch c {
	case ChipNone:
		return ""
	case ChipSuperBoost:
		return "superBoost"
	case ChipDoubleChance:
		return "doubleChance"
	case ChipTripleThreat:
		return "tripleThreat"
	}
	return fmt.Sprintf("Chip(%d)", int(c))
}

func (c Chip) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Chip) UnmarshalText(b []byte) error {
	v, err := ParseChip(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Achievement is a tag derived from a user's full set of scored selections.
type Achievement int

const (
	AchievementNone Achievement = iota
	AchievementBestPerformer
	AchievementConsistent
	AchievementUnderdog
)

func (a Achievement) String() string {
	switch a {
	case AchievementNone:
		return ""
	case AchievementBestPerformer:
		return "bestPerformer"
	case AchievementConsistent:
		return "consistent"
	case AchievementUnderdog:
		return "underdog"
	}
	return fmt.Sprintf("Achievement(%d)", int(a))
}

func (a Achievement) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText accepts the names String produces; unknown names are no tag.
func (a *Achievement) UnmarshalText(b []byte) error {
	switch string(b) {
	case "bestPerformer":
		*a = AchievementBestPerformer
	case "consistent":
		*a = AchievementConsistent
	case "underdog":
		*a = AchievementUnderdog
	default:
		*a = AchievementNone
	}
	return nil
}

// Selection is one user's pick of a horse for one race on one league day.
// Points and Achievement are derived and are overwritten by Score and
// DeriveAchievements.
type Selection struct {
	HorseID   string `json:"horseID"`
	HorseName string `json:"horse,omitempty"`
	RaceID    string `json:"raceID"`
	DayID     string `json:"dayID"`
	UserID    string `json:"userID"`

	Result Result  `json:"result"`
	Odds   float64 `json:"odds"`
	Chip   Chip    `json:"chip,omitempty"`

	Points      int         `json:"points"`
	Achievement Achievement `json:"achievement,omitempty"`
}

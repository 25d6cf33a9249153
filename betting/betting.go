// Package betting settles real-money bet tickets and summarizes a user's
// profit and loss.
package betting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Outcome is how a bet settled.
type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeWon     Outcome = "won"
	OutcomePlaced  Outcome = "placed"
	OutcomeLost    Outcome = "lost"
	OutcomeVoid    Outcome = "void"
)

// DefaultPlaceTerms is the usual each-way place fraction of the win odds.
const DefaultPlaceTerms = 0.25

// ParseOutcome normalizes an outcome name. Empty means pending.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OutcomePending, nil
	case OutcomePending, OutcomeWon, OutcomePlaced, OutcomeLost, OutcomeVoid:
		return o, nil
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}

// Bet is a single ticket. Stake is per part, so an each-way bet risks twice
// the stake. Odds are decimal.
type Bet struct {
	Stake      float64
	Odds       float64
	EachWay    bool
	PlaceTerms float64
	Outcome    Outcome
}

// Outlay is the total amount staked on the ticket.
func (b Bet) Outlay() float64 {
	return b.outlay().InexactFloat64()
}

func (b Bet) outlay() decimal.Decimal {
	stake := money(b.Stake)
	if b.EachWay {
		return stake.Mul(decimal.NewFromInt(2))
	}
	return stake
}

func (b Bet) placeOdds() decimal.Decimal {
	terms := b.PlaceTerms
	if terms <= 0 {
		terms = DefaultPlaceTerms
	}
	return decimal.NewFromFloat(b.Odds).Sub(one).Mul(decimal.NewFromFloat(terms)).Add(one)
}

// ProfitLoss is the net result of a settled bet; pending and void bets are 0.
func ProfitLoss(b Bet) float64 {
	return b.profitLoss().InexactFloat64()
}

func (b Bet) profitLoss() decimal.Decimal {
	stake := money(b.Stake)
	win := stake.Mul(decimal.NewFromFloat(b.Odds).Sub(one))
	place := stake.Mul(b.placeOdds().Sub(one))
	var pl decimal.Decimal
	switch b.Outcome {
	case OutcomeWon:
		pl = win
		if b.EachWay {
			pl = win.Add(place)
		}
	case OutcomePlaced:
		pl = stake.Neg()
		if b.EachWay {
			pl = place.Sub(stake)
		}
	case OutcomeLost:
		pl = b.outlay().Neg()
	case OutcomePending, OutcomeVoid:
	}
	return pl.Round(2)
}

// Summary is the profit/loss picture over a set of bets.
type Summary struct {
	Bets       int     `json:"bets"`
	Settled    int     `json:"settled"`
	Winners    int     `json:"winners"`
	Staked     float64 `json:"staked"`
	Returned   float64 `json:"returned"`
	Profit     float64 `json:"profit"`
	ROI        float64 `json:"roi"`
	StrikeRate float64 `json:"strikeRate"`
}

// Summarize totals settled bets. Void and pending bets count towards Bets only.
func Summarize(bets []Bet) Summary {
	s := Summary{Bets: len(bets)}
	staked, profit := decimal.Zero, decimal.Zero
	for _, b := range bets {
		switch b.Outcome {
		case OutcomeWon, OutcomePlaced, OutcomeLost:
		default:
			continue
		}
		s.Settled++
		if b.Outcome == OutcomeWon {
			s.Winners++
		}
		staked = staked.Add(b.outlay())
		profit = profit.Add(b.profitLoss())
	}

	hundred := decimal.NewFromInt(100)
	s.Staked = staked.InexactFloat64()
	s.Profit = profit.InexactFloat64()
	s.Returned = staked.Add(profit).InexactFloat64()
	if staked.IsPositive() {
		s.ROI = profit.Div(staked).Mul(hundred).Round(2).InexactFloat64()
	}
	if s.Settled > 0 {
		s.StrikeRate = decimal.NewFromInt(int64(s.Winners)).
			Div(decimal.NewFromInt(int64(s.Settled))).Mul(hundred).Round(2).InexactFloat64()
	}
	return s
}

var one = decimal.NewFromInt(1)

// money rounds a stake to pence.
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

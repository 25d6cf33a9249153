package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Bet is a real-money bet logged by a user. Stake is per part for each-way
// bets.
type Bet struct {
	bun.BaseModel `bun:"table:bets,alias:b"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	UserID      int       `bun:"user_id,notnull" json:"-"`
	PlacedAt    time.Time `bun:"placed_at,notnull" json:"placedAt"`
	Description string    `bun:"description,notnull" json:"description"`
	Bookmaker   *string   `bun:"bookmaker" json:"bookmaker,omitempty"`
	Stake       float64   `bun:"stake,notnull" json:"stake"`
	Price       string    `bun:"price,notnull" json:"price"`
	EachWay     bool      `bun:"each_way,notnull,default:false" json:"eachWay"`
	PlaceTerms  float64   `bun:"place_terms,notnull,default:0.25" json:"placeTerms"`
	Outcome     string    `bun:"outcome,notnull,default:'pending'" json:"outcome"`
}

package models

import "github.com/uptrace/bun"

// RaceResult is a runner's finishing position and starting price.
// Placed is "1", "2"... or a non-finisher code such as "PU".
type RaceResult struct {
	bun.BaseModel `bun:"table:race_results,alias:r"`

	ID      int     `bun:"id,pk,autoincrement" json:"id"`
	RaceID  int     `bun:"race_id,notnull" json:"raceID"`
	HorseID int     `bun:"horse_id,notnull" json:"horseID"`
	Placed  string  `bun:"placed,notnull" json:"placed"`
	Price   *string `bun:"price" json:"price,omitempty"`
}

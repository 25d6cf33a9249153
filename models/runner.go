package models

import "github.com/uptrace/bun"

// Runner is a horse declared for a race, with the fixed price a selection
// takes when it is made. The card is maintained by admins; users never supply
// a price.
type Runner struct {
	bun.BaseModel `bun:"table:runners,alias:rn"`

	ID      int     `bun:"id,pk,autoincrement" json:"-"`
	RaceID  int     `bun:"race_id,notnull" json:"raceID"`
	HorseID int     `bun:"horse_id,notnull" json:"horseID"`
	Price   *string `bun:"price" json:"price,omitempty"`

	Horse *Horse `bun:"rel:belongs-to,join:horse_id=horse_id" json:"-"`
}

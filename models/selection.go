package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Selection is a user's fantasy pick for a race. Price is the fixed price
// taken at selection time as stored text ("9/2", "5.5"); Chip is empty or a
// chip name.
type Selection struct {
	bun.BaseModel `bun:"table:selections,alias:s"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	UserID    int       `bun:"user_id,notnull" json:"userID"`
	DayID     int       `bun:"day_id,notnull" json:"dayID"`
	RaceID    int       `bun:"race_id,notnull" json:"raceID"`
	HorseID   int       `bun:"horse_id,notnull" json:"horseID"`
	Price     *string   `bun:"price" json:"price,omitempty"`
	Chip      string    `bun:"chip,notnull,default:''" json:"chip,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// SelectionRow is a selection joined with its horse and, once resulted, the
// horse's finishing position.
type SelectionRow struct {
	ID      uuid.UUID `bun:"id"`
	UserID  int       `bun:"user_id"`
	DayID   int       `bun:"day_id"`
	RaceID  int       `bun:"race_id"`
	HorseID int       `bun:"horse_id"`
	Horse   string    `bun:"horse"`
	Price   *string   `bun:"price"`
	Chip    string    `bun:"chip"`
	Placed  *string   `bun:"placed"`
	Places  int       `bun:"places"`
}

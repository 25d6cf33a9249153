package models

import "github.com/uptrace/bun"

// Horse is a runner that can be selected.
type Horse struct {
	bun.BaseModel `bun:"table:horses,alias:h"`

	HorseID int     `bun:"horse_id,pk,autoincrement" json:"horseID"`
	Horse   string  `bun:"horse,notnull,unique" json:"horse"`
	Trainer *string `bun:"trainer" json:"trainer,omitempty"`
}

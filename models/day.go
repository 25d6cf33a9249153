package models

import (
	"time"

	"github.com/uptrace/bun"
)

// LeagueDay is a fantasy day. Selections lock at Cutoff.
type LeagueDay struct {
	bun.BaseModel `bun:"table:league_days,alias:ld"`

	DayID  int       `bun:"day_id,pk,autoincrement" json:"dayID"`
	Date   string    `bun:"date,notnull,unique,type:date" json:"date"`
	Cutoff time.Time `bun:"cutoff,notnull" json:"cutoff"`
}

// Locked reports whether selections for the day can no longer change.
func (d *LeagueDay) Locked(now time.Time) bool {
	return !now.Before(d.Cutoff)
}

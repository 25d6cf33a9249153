package models

import (
	"time"

	"github.com/uptrace/bun"
)

// LeagueStanding is a user's total as of the last league-table recompute.
type LeagueStanding struct {
	bun.BaseModel `bun:"table:league_standings,alias:ls"`

	UserID      int       `bun:"user_id,pk" json:"userID"`
	TotalPoints int       `bun:"total_points,notnull" json:"totalPoints"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// StandingRow is a persisted standing joined with the username.
type StandingRow struct {
	UserID      int       `bun:"user_id" json:"userID"`
	Username    string    `bun:"username" json:"username"`
	TotalPoints int       `bun:"total_points" json:"totalPoints"`
	UpdatedAt   time.Time `bun:"updated_at" json:"updatedAt"`
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Race is one race on a league day.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	RaceID   int       `bun:"race_id,pk,autoincrement" json:"raceID"`
	CourseID int       `bun:"course_id,notnull" json:"courseID"`
	DayID    int       `bun:"day_id,notnull" json:"dayID"`
	Name     string    `bun:"name,notnull" json:"name"`
	OffTime  time.Time `bun:"off_time,notnull" json:"offTime"`
	// Places is how many finishing positions count as placed.
	Places int `bun:"places,notnull,default:3" json:"places"`

	Course *Course `bun:"rel:belongs-to,join:course_id=course_id" json:"-"`
}

package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type dayData struct {
	DayID  int       `json:"dayID"`
	Date   string    `json:"date"`
	Cutoff time.Time `json:"cutoff"`
	Locked bool      `json:"locked"`
}

type raceData struct {
	RaceID   int       `json:"raceID"`
	Name     string    `json:"name"`
	Course   string    `json:"course,omitempty"`
	CourseID int       `json:"courseID"`
	OffTime  time.Time `json:"offTime"`
	Places   int       `json:"places"`
}

// Days returns all league days, latest first, with whether each is locked.
func (h *Handler) Days(c echo.Context) error {
	days, err := h.store.Days(c.Request().Context())
	if err != nil {
		return storeError(err)
	}

	now := h.now()
	result := make([]dayData, len(days))
	for i := range days {
		result[i] = dayData{
			DayID:  days[i].DayID,
			Date:   days[i].Date,
			Cutoff: days[i].Cutoff,
			Locked: days[i].Locked(now),
		}
	}
	return c.JSON(http.StatusOK, result)
}

// Courses returns all courses, optionally those racing on a league day.
func (h *Handler) Courses(c echo.Context) error {
	dayID, err := optionalInt(c, "day")
	if err != nil {
		return err
	}
	courses, err := h.store.Courses(c.Request().Context(), dayID)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, courses)
}

// Races returns the card for a league day.
func (h *Handler) Races(c echo.Context) error {
	dayID, err := optionalInt(c, "day")
	if err != nil {
		return err
	}
	if dayID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "missing day param")
	}

	races, err := h.store.Races(c.Request().Context(), dayID)
	if err != nil {
		return storeError(err)
	}

	result := make([]raceData, len(races))
	for i, rc := range races {
		result[i] = raceData{
			RaceID:   rc.RaceID,
			Name:     rc.Name,
			CourseID: rc.CourseID,
			OffTime:  rc.OffTime,
			Places:   rc.Places,
		}
		if rc.Course != nil {
			result[i].Course = rc.Course.Course
		}
	}
	return c.JSON(http.StatusOK, result)
}

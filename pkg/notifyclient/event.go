package notifyclient

import "time"

// Level is the severity of an event, derived from its color tag.
type Level string

const (
	LevelAll    Level = "all"
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Event is the client-side view of a calendar event.
type Event struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Level       Level     `json:"eventColor"`
	IsRead      bool      `json:"-"`
}

package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// EventColor is the severity tag of a calendar event, rendered as the
// notification level in clients.
type EventColor string

const (
	EventColorHigh   EventColor = "high"
	EventColorMedium EventColor = "medium"
	EventColorLow    EventColor = "low"
)

type CalendarEvent struct {
	ID                    uint `gorm:"primaryKey"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             gorm.DeletedAt
	UserID                string `gorm:"not null;index"`
	Title                 string `gorm:"not null"`
	Description           string
	StartDate             time.Time `gorm:"not null"`
	EndDate               time.Time
	EventColor            EventColor     `gorm:"not null;default:medium"`
	Attendees             pq.StringArray `gorm:"type:text[]"`
	ReminderEnabled       bool           `gorm:"not null;default:false"`
	ReminderMinutesBefore int            `gorm:"not null;default:0"`
}

// ReminderDueAt returns the moment the reminder window opens.
func (e *CalendarEvent) ReminderDueAt() time.Time {
	return e.StartDate.Add(-time.Duration(e.ReminderMinutesBefore) * time.Minute)
}

// ReminderDue checks if the event's reminder should fire at the given time.
// An event is due once reminders are enabled and the configured lead time
// has elapsed relative to now.
func (e *CalendarEvent) ReminderDue(now time.Time) bool {
	return e.ReminderEnabled && !now.Before(e.ReminderDueAt())
}

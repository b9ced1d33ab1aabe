package dto

import (
	"time"

	"github.com/shiftwise/shiftwise/server/internal/domain/entity"
)

type Event struct {
	ID              uint              `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	StartDate       time.Time         `json:"startDate"`
	EndDate         time.Time         `json:"endDate"`
	EventColor      entity.EventColor `json:"eventColor"`
	Attendees       []string          `json:"attendees,omitempty"`
	ReminderEnabled bool              `json:"reminderEnabled"`
	ReminderMinutes int               `json:"reminderMinutesBefore"`
}

func NewEventFromEntity(event entity.CalendarEvent) Event {
	return Event{
		ID:              event.ID,
		Title:           event.Title,
		Description:     event.Description,
		StartDate:       event.StartDate,
		EndDate:         event.EndDate,
		EventColor:      event.EventColor,
		Attendees:       event.Attendees,
		ReminderEnabled: event.ReminderEnabled,
		ReminderMinutes: event.ReminderMinutesBefore,
	}
}

type CreateEvent struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	StartDate       time.Time         `json:"startDate"`
	EndDate         time.Time         `json:"endDate"`
	EventColor      entity.EventColor `json:"eventColor"`
	Attendees       []string          `json:"attendees"`
	ReminderEnabled bool              `json:"reminderEnabled"`
	ReminderMinutes int               `json:"reminderMinutesBefore"`
}

func (r CreateEvent) ToEntity(userID string) *entity.CalendarEvent {
	color := r.EventColor
	if color == "" {
		color = entity.EventColorMedium
	}
	return &entity.CalendarEvent{
		UserID:                userID,
		Title:                 r.Title,
		Description:           r.Description,
		StartDate:             r.StartDate,
		EndDate:               r.EndDate,
		EventColor:            color,
		Attendees:             r.Attendees,
		ReminderEnabled:       r.ReminderEnabled,
		ReminderMinutesBefore: r.ReminderMinutes,
	}
}

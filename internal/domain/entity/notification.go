package entity

import "time"

// ReminderNotification represents a reminder that has been fanned out to a user
type ReminderNotification struct {
	EventID       uint      `json:"eventId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartDate     time.Time `json:"startDate"`
	MinutesBefore int       `json:"minutesBefore"`
	SentAt        time.Time `json:"sentAt"`
}

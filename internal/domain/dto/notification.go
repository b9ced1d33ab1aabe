package dto

import "time"

const (
	MessageTypeConnection = "connection"
	MessageTypeReminder   = "reminder"
)

// Message is the envelope for every frame pushed over the websocket.
type Message struct {
	Type   string        `json:"type"`
	Status string        `json:"status,omitempty"`
	Data   *ReminderData `json:"data,omitempty"`
}

// ReminderData is the payload of a "reminder" message. It intentionally
// carries no event id: clients reconcile by re-fetching the event list.
type ReminderData struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartDate     time.Time `json:"startDate"`
	MinutesBefore int       `json:"minutesBefore"`
}

// ConnectionEstablished is the acknowledgement sent right after a socket
// is authenticated and registered.
func ConnectionEstablished() Message {
	return Message{Type: MessageTypeConnection, Status: "success"}
}

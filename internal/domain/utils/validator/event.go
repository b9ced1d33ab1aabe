package validator

import (
	"time"
	"unicode/utf8"

	"github.com/shiftwise/shiftwise/server/internal/domain/entity"
)

func EventTitle(title string) bool {
	return utf8.RuneCountInString(title) >= 1 && utf8.RuneCountInString(title) <= 100
}

func EventDescription(description string) bool {
	return utf8.RuneCountInString(description) <= 500
}

func EventColor(color entity.EventColor) bool {
	switch color {
	case entity.EventColorHigh, entity.EventColorMedium, entity.EventColorLow:
		return true
	}
	return false
}

func EventDates(start, end time.Time) bool {
	if start.IsZero() {
		return false
	}
	return end.IsZero() || end.After(start)
}

// ReminderMinutes bounds the reminder lead time to one week.
func ReminderMinutes(minutes int) bool {
	return minutes >= 0 && minutes <= 7*24*60
}

package service

import (
	"context"

	"github.com/shiftwise/shiftwise/server/internal/domain/entity"
)

type notificationJournal interface {
	Recent(ctx context.Context, userID string) ([]entity.ReminderNotification, error)
}

type NotificationService struct {
	journal notificationJournal
}

func NewNotificationService(journal notificationJournal) *NotificationService {
	return &NotificationService{
		journal: journal,
	}
}

// Recent returns the user's recently delivered reminders, newest first.
func (s *NotificationService) Recent(ctx context.Context, userID string) ([]entity.ReminderNotification, error) {
	return s.journal.Recent(ctx, userID)
}

package service

import (
	"context"
	"time"

	"github.com/shiftwise/shiftwise/server/internal/domain/common/errorz"
	"github.com/shiftwise/shiftwise/server/internal/domain/entity"
)

type CalendarEventStorage interface {
	Create(ctx context.Context, event *entity.CalendarEvent) (*entity.CalendarEvent, error)
	Get(ctx context.Context, id uint) (*entity.CalendarEvent, error)
	GetAllForUser(ctx context.Context, userID string) ([]entity.CalendarEvent, error)
	Update(ctx context.Context, event *entity.CalendarEvent) (*entity.CalendarEvent, error)
	Delete(ctx context.Context, id uint) error
	GetDueReminders(ctx context.Context, now time.Time) ([]entity.CalendarEvent, error)
	DisableReminder(ctx context.Context, id uint) error
}

type CalendarEventService struct {
	eventStorage CalendarEventStorage
}

func NewCalendarEventService(storage CalendarEventStorage) *CalendarEventService {
	return &CalendarEventService{
		eventStorage: storage,
	}
}

func (s *CalendarEventService) Create(ctx context.Context, event *entity.CalendarEvent) (*entity.CalendarEvent, error) {
	return s.eventStorage.Create(ctx, event)
}

// Get returns the event if it belongs to the user.
func (s *CalendarEventService) Get(ctx context.Context, userID string, id uint) (*entity.CalendarEvent, error) {
	event, err := s.eventStorage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.UserID != userID {
		return nil, errorz.Forbidden
	}
	return event, nil
}

func (s *CalendarEventService) GetAllForUser(ctx context.Context, userID string) ([]entity.CalendarEvent, error) {
	return s.eventStorage.GetAllForUser(ctx, userID)
}

// Update overwrites the user's event with the given fields.
func (s *CalendarEventService) Update(ctx context.Context, userID string, event *entity.CalendarEvent) (*entity.CalendarEvent, error) {
	current, err := s.Get(ctx, userID, event.ID)
	if err != nil {
		return nil, err
	}
	event.UserID = current.UserID
	event.CreatedAt = current.CreatedAt
	return s.eventStorage.Update(ctx, event)
}

func (s *CalendarEventService) Delete(ctx context.Context, userID string, id uint) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.eventStorage.Delete(ctx, id)
}

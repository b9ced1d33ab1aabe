package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shiftwise/shiftwise/server/internal/domain/common/errorz"
	"github.com/shiftwise/shiftwise/server/internal/domain/entity"
	"gorm.io/gorm"
)

type CalendarEventStorage struct {
	db *gorm.DB
}

func NewCalendarEventStorage(db *gorm.DB) *CalendarEventStorage {
	return &CalendarEventStorage{
		db: db,
	}
}

// Create is a function that creates a new calendar event in the database.
func (s *CalendarEventStorage) Create(ctx context.Context, event *entity.CalendarEvent) (*entity.CalendarEvent, error) {
	err := s.db.WithContext(ctx).Create(&event).Error
	return event, err
}

// Get is a function that gets a calendar event from the database by id.
func (s *CalendarEventStorage) Get(ctx context.Context, id uint) (*entity.CalendarEvent, error) {
	var event entity.CalendarEvent
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.EventNotFound
	}
	return &event, err
}

// GetAllForUser is a function that gets all calendar events of a user from the database.
func (s *CalendarEventStorage) GetAllForUser(ctx context.Context, userID string) ([]entity.CalendarEvent, error) {
	var events []entity.CalendarEvent
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("start_date").Find(&events).Error
	return events, err
}

// Update is a function that updates a calendar event in the database.
func (s *CalendarEventStorage) Update(ctx context.Context, event *entity.CalendarEvent) (*entity.CalendarEvent, error) {
	err := s.db.WithContext(ctx).Save(&event).Error
	return event, err
}

// Delete is a function that deletes a calendar event from the database.
func (s *CalendarEventStorage) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&entity.CalendarEvent{}, id).Error
}

// GetDueReminders gets all events whose reminder is enabled and whose
// configured lead time has elapsed relative to now.
func (s *CalendarEventStorage) GetDueReminders(ctx context.Context, now time.Time) ([]entity.CalendarEvent, error) {
	var events []entity.CalendarEvent
	err := s.db.WithContext(ctx).
		Where("reminder_enabled = ?", true).
		Where("start_date - (reminder_minutes_before * interval '1 minute') <= ?", now).
		Find(&events).Error
	return events, err
}

// DisableReminder clears the reminder flag of an event so it is not
// returned by GetDueReminders again. Disabling an already disabled
// reminder is a no-op.
func (s *CalendarEventStorage) DisableReminder(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).
		Model(&entity.CalendarEvent{}).
		Where("id = ?", id).
		Update("reminder_enabled", false).Error
}

// DeleteEndedBefore removes events that ended before the cutoff and
// returns the number of deleted rows.
func (s *CalendarEventStorage) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("end_date < ?", cutoff).
		Delete(&entity.CalendarEvent{})
	return result.RowsAffected, result.Error
}

package service

import (
	"context"
	"sync"
	"time"

	"github.com/shiftwise/shiftwise/server/internal/domain/dto"
	"github.com/shiftwise/shiftwise/server/internal/domain/entity"
	"github.com/shiftwise/shiftwise/server/pkg/logger/types"
)

type reminderEventStorage interface {
	GetDueReminders(ctx context.Context, now time.Time) ([]entity.CalendarEvent, error)
	DisableReminder(ctx context.Context, id uint) error
}

type reminderBroadcaster interface {
	Broadcast(message dto.Message) []string
}

type reminderJournal interface {
	Add(ctx context.Context, userID string, notification entity.ReminderNotification) error
}

// ReminderService periodically discovers due reminders, fans them out to
// every connected client and marks them consumed. The event store is the
// sole source of truth for what is still due: the service keeps no
// cross-pass memory, so a failed consume simply redelivers next pass.
type ReminderService struct {
	eventStorage reminderEventStorage
	broadcaster  reminderBroadcaster
	journal      reminderJournal

	interval time.Duration
	logger   *types.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

func NewReminderService(
	logger *types.Logger,
	eventStorage reminderEventStorage,
	broadcaster reminderBroadcaster,
	journal reminderJournal,
	interval time.Duration,
) *ReminderService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReminderService{
		eventStorage: eventStorage,
		broadcaster:  broadcaster,
		journal:      journal,
		interval:     interval,
		logger:       logger,
		stop:         make(chan struct{}),
	}
}

// StartScheduler starts the scan loop: one immediate pass, then a pass
// per tick. Passes run sequentially on a single goroutine, so a pass
// that overruns the interval delays the next tick instead of running
// concurrently with it.
func (s *ReminderService) StartScheduler() {
	s.logger.Info("Starting reminder scheduler")
	go func() {
		s.checkReminders(context.Background())

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.checkReminders(context.Background())
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the scan loop. An in-flight pass finishes on its own.
func (s *ReminderService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

// checkReminders runs one scan pass. A failed due-reminder query aborts
// only this pass; the next tick retries.
func (s *ReminderService) checkReminders(ctx context.Context) {
	s.logger.Debug("Checking for due reminders")

	events, err := s.eventStorage.GetDueReminders(ctx, time.Now())
	if err != nil {
		s.logger.Errorf("failed to get due reminders: %v", err)
		return
	}
	if len(events) == 0 {
		return
	}

	s.logger.Infof("Found %d due reminders", len(events))
	for i := range events {
		s.deliver(ctx, &events[i])
	}
}

// deliver fans one reminder out to all connected clients and disables
// its flag. Neither a socket failure nor a failed disable may abort the
// remaining events of the pass; a failed disable leaves the event due,
// so it is redelivered on the next pass (at-least-once).
func (s *ReminderService) deliver(ctx context.Context, event *entity.CalendarEvent) {
	message := dto.Message{
		Type: dto.MessageTypeReminder,
		Data: &dto.ReminderData{
			Title:         event.Title,
			Description:   event.Description,
			StartDate:     event.StartDate,
			MinutesBefore: event.ReminderMinutesBefore,
		},
	}

	delivered := s.broadcaster.Broadcast(message)
	s.logger.Infof("Reminder delivered (event_id=%d, clients=%d)", event.ID, len(delivered))

	for _, userID := range delivered {
		notification := entity.ReminderNotification{
			EventID:       event.ID,
			Title:         event.Title,
			Description:   event.Description,
			StartDate:     event.StartDate,
			MinutesBefore: event.ReminderMinutesBefore,
			SentAt:        time.Now(),
		}
		if err := s.journal.Add(ctx, userID, notification); err != nil {
			s.logger.Errorf("failed to journal reminder for user %s: %v", userID, err)
		}
	}

	if err := s.eventStorage.DisableReminder(ctx, event.ID); err != nil {
		s.logger.Errorf("failed to disable reminder for event %d: %v", event.ID, err)
	}
}

package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shiftwise/shiftwise/server/internal/domain/entity"
)

// Storage keeps a capped per-user journal of recently delivered reminders.
type Storage struct {
	redis *redis.Client
	keep  int64
	ttl   time.Duration
}

func NewStorage(client *redis.Client, keep int64, ttlHours int) *Storage {
	if keep <= 0 {
		keep = 50
	}
	if ttlHours <= 0 {
		ttlHours = 72
	}
	return &Storage{
		redis: client,
		keep:  keep,
		ttl:   time.Duration(ttlHours) * time.Hour,
	}
}

func key(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

// Add prepends a delivered reminder to the user's journal, trimming it to
// the configured size.
func (s *Storage) Add(ctx context.Context, userID string, notification entity.ReminderNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	pipe := s.redis.TxPipeline()
	pipe.LPush(ctx, key(userID), payload)
	pipe.LTrim(ctx, key(userID), 0, s.keep-1)
	pipe.Expire(ctx, key(userID), s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns the user's journal, newest first.
func (s *Storage) Recent(ctx context.Context, userID string) ([]entity.ReminderNotification, error) {
	entries, err := s.redis.LRange(ctx, key(userID), 0, s.keep-1).Result()
	if err != nil {
		return nil, err
	}

	result := make([]entity.ReminderNotification, 0, len(entries))
	for _, entry := range entries {
		var notification entity.ReminderNotification
		if err = json.Unmarshal([]byte(entry), &notification); err != nil {
			return nil, err
		}
		result = append(result, notification)
	}

	return result, nil
}

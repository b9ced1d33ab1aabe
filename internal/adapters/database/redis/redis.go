package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shiftwise/shiftwise/server/internal/adapters/database/redis/notifications"
)

type Client struct {
	Notifications *notifications.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string

	// NotificationsKeep is the number of journal entries kept per user.
	NotificationsKeep int64
	// NotificationsTTL is how long a user's journal lives without new entries.
	NotificationsTTL int
}

func New(opts Options) (*Client, error) {
	notificationStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := notificationStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping notification storage: %w", err)
	}

	return &Client{
		Notifications: notifications.NewStorage(notificationStorage, opts.NotificationsKeep, opts.NotificationsTTL),
	}, nil
}

package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shiftwise/shiftwise/server/pkg/logger/types"
)

type housekeepingStorage interface {
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// HousekeepingService deletes calendar events that ended longer ago than
// the retention window.
type HousekeepingService struct {
	storage   housekeepingStorage
	retention time.Duration
	logger    *types.Logger
	cron      *cron.Cron
}

func NewHousekeepingService(logger *types.Logger, storage housekeepingStorage, retentionDays int) *HousekeepingService {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &HousekeepingService{
		storage:   storage,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start schedules the daily retention sweep.
func (s *HousekeepingService) Start() error {
	if _, err := s.cron.AddFunc("@daily", s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Starting housekeeping scheduler")
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *HousekeepingService) Stop() {
	<-s.cron.Stop().Done()
}

func (s *HousekeepingService) sweep() {
	cutoff := time.Now().Add(-s.retention)
	deleted, err := s.storage.DeleteEndedBefore(context.Background(), cutoff)
	if err != nil {
		s.logger.Errorf("failed to delete expired events: %v", err)
		return
	}
	if deleted > 0 {
		s.logger.Infof("Deleted %d expired events", deleted)
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeHousekeepingStorage struct {
	cutoffs []time.Time
	deleted int64
	err     error
}

func (s *fakeHousekeepingStorage) DeleteEndedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.deleted, s.err
}

func TestSweepUsesRetentionCutoff(t *testing.T) {
	storage := &fakeHousekeepingStorage{deleted: 3}
	s := NewHousekeepingService(testLogger(), storage, 30)

	s.sweep()

	assert.Len(t, storage.cutoffs, 1)
	assert.WithinDuration(t, time.Now().Add(-30*24*time.Hour), storage.cutoffs[0], time.Minute)
}

func TestSweepSurvivesStorageError(t *testing.T) {
	storage := &fakeHousekeepingStorage{err: errors.New("db down")}
	s := NewHousekeepingService(testLogger(), storage, 30)

	assert.NotPanics(t, func() {
		s.sweep()
	})
}

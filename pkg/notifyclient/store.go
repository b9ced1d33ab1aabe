package notifyclient

import (
	"sync"
)

// Store holds the reconciled notification view: the polled event list is
// the source of truth for content, push messages only bump the badge
// until the next fetch lands.
type Store struct {
	mu        sync.Mutex
	state     *ReadState
	events    []Event
	unread    int
	notifying bool
	filter    Level
}

func NewStore(state *ReadState) *Store {
	return &Store{
		state:  state,
		filter: LevelAll,
	}
}

// ApplyFetch replaces the event list with a polled snapshot and
// recomputes read flags and the unread count from the persisted mark.
// The snapshot is copied, so the caller keeps ownership of its slice.
func (s *Store) ApplyFetch(events []Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lastSeen := s.state.LastSeen()
	unread := 0
	view := make([]Event, len(events))
	for i, event := range events {
		event.IsRead = event.ID <= lastSeen
		if !event.IsRead {
			unread++
		}
		view[i] = event
	}

	s.events = view
	s.unread = unread
	s.notifying = unread > 0
}

// NoteReminder optimistically bumps the unread count for a pushed
// reminder. The caller follows up with a fetch to reconcile.
func (s *Store) NoteReminder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unread++
	s.notifying = true
}

// Open marks every known event read and persists the high-water mark, as
// when the user opens the notification view.
func (s *Store) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifying = false
	if len(s.events) == 0 {
		return nil
	}

	var latest uint
	for i := range s.events {
		s.events[i].IsRead = true
		if s.events[i].ID > latest {
			latest = s.events[i].ID
		}
	}
	s.unread = 0

	return s.state.SetLastSeen(latest)
}

// SetFilter narrows Events to one severity level. Filtering never
// affects unread accounting.
func (s *Store) SetFilter(level Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = level
}

// Events returns a copy of the current view, narrowed by the filter.
func (s *Store) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]Event, 0, len(s.events))
	for _, event := range s.events {
		if s.filter == LevelAll || event.Level == s.filter {
			events = append(events, event)
		}
	}
	return events
}

// Unread returns the current unread count.
func (s *Store) Unread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// Notifying reports whether the badge should show.
func (s *Store) Notifying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifying
}

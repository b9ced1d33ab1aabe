package notifyclient

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ReadState persists the last seen event id across sessions. An event is
// read iff its id is at or below the stored mark.
type ReadState struct {
	path string
}

type stateFile struct {
	LastSeenEventID uint `json:"lastSeenEventId"`
}

func NewReadState(path string) *ReadState {
	return &ReadState{
		path: path,
	}
}

// LastSeen returns the stored mark, or zero when the state file is
// missing or unreadable.
func (s *ReadState) LastSeen() uint {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0
	}

	var state stateFile
	if err = json.Unmarshal(data, &state); err != nil {
		return 0
	}
	return state.LastSeenEventID
}

// SetLastSeen stores the mark.
func (s *ReadState) SetLastSeen(id uint) error {
	data, err := json.Marshal(stateFile{LastSeenEventID: id})
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

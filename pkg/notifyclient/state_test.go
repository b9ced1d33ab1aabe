package notifyclient

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStateMissingFile(t *testing.T) {
	state := NewReadState(filepath.Join(t.TempDir(), "missing.json"))
	assert.EqualValues(t, 0, state.LastSeen())
}

func TestReadStateCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	state := NewReadState(path)
	assert.EqualValues(t, 0, state.LastSeen())
}

func TestReadStateSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	first := NewReadState(path)
	require.NoError(t, first.SetLastSeen(17))

	second := NewReadState(path)
	assert.EqualValues(t, 17, second.LastSeen())
}

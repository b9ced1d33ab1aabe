package notifyclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shiftwise/shiftwise/server/pkg/logger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// notifyServer fakes the backend: an event list endpoint and a websocket
// endpoint the test pushes frames through.
type notifyServer struct {
	mu     sync.Mutex
	events []Event
	conns  chan *websocket.Conn
}

func newNotifyServer(t *testing.T, events []Event) (*notifyServer, *httptest.Server) {
	t.Helper()
	ns := &notifyServer{
		events: events,
		conns:  make(chan *websocket.Conn, 1),
	}

	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("/calendars", func(w http.ResponseWriter, r *http.Request) {
		ns.mu.Lock()
		defer ns.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ns.events)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		ns.conns <- conn
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return ns, server
}

func (s *notifyServer) setEvents(events []Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
}

func newTestClient(t *testing.T, server *httptest.Server, pollInterval time.Duration) *Client {
	t.Helper()
	client := New(Config{
		BaseURL:      server.URL,
		Token:        "token",
		StatePath:    filepath.Join(t.TempDir(), "state.json"),
		PollInterval: pollInterval,
		Logger:       testLogger(),
	})
	t.Cleanup(client.Close)
	return client
}

func TestPushBumpsUnreadWithoutWaitingForPoll(t *testing.T) {
	ns, server := newNotifyServer(t, []Event{{ID: 1, Title: "a", Level: LevelLow}})

	client := newTestClient(t, server, time.Hour)
	client.Start()

	require.Eventually(t, func() bool {
		return client.Store().Unread() == 1
	}, time.Second, 10*time.Millisecond)

	conn := <-ns.conns
	defer conn.Close()

	ns.setEvents([]Event{
		{ID: 1, Title: "a", Level: LevelLow},
		{ID: 2, Title: "b", Level: LevelHigh},
	})
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "reminder"}))

	// the push wakes the client: unread reflects the re-fetched list
	require.Eventually(t, func() bool {
		return client.Store().Unread() == 2
	}, time.Second, 10*time.Millisecond)
	assert.True(t, client.Store().Notifying())
}

func TestPollIsTheBackstopWithoutSocket(t *testing.T) {
	ns, server := newNotifyServer(t, nil)

	client := newTestClient(t, server, 50*time.Millisecond)
	// no /ws hit is required for delivery
	client.Start()

	ns.setEvents([]Event{{ID: 1, Title: "a", Level: LevelLow}})

	require.Eventually(t, func() bool {
		return client.Store().Unread() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestFailedPollKeepsLastKnownState(t *testing.T) {
	_, server := newNotifyServer(t, []Event{{ID: 1, Title: "a", Level: LevelLow}})

	client := newTestClient(t, server, time.Hour)
	client.Start()

	require.Eventually(t, func() bool {
		return len(client.Store().Events()) == 1
	}, time.Second, 10*time.Millisecond)

	server.Close()
	client.FetchEvents()

	// stale-but-available
	assert.Len(t, client.Store().Events(), 1)
	assert.Equal(t, 1, client.Store().Unread())
}

package notifyclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shiftwise/shiftwise/server/pkg/logger/types"
)

const defaultPollInterval = 30 * time.Second

// Config configures a notification client.
type Config struct {
	// BaseURL is the server root, e.g. "http://localhost:4000".
	BaseURL string
	// Token is the bearer credential, used for both the poll endpoint
	// and the websocket handshake.
	Token string
	// StatePath is the file holding the last seen event id.
	StatePath string
	// PollInterval defaults to 30 seconds.
	PollInterval time.Duration
	Logger       *types.Logger
}

// Client mirrors the notification dropdown: it polls the event list on a
// fixed interval and keeps a websocket open for reminder wake-ups. There
// is no reconnect on socket loss; the poll is the delivery backstop
// until the client is restarted.
type Client struct {
	store        *Store
	baseURL      string
	token        string
	pollInterval time.Duration
	httpClient   *http.Client
	logger       *types.Logger

	mu   sync.Mutex
	conn *websocket.Conn

	stop     chan struct{}
	stopOnce sync.Once
}

func New(cfg Config) *Client {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Client{
		store:        NewStore(NewReadState(cfg.StatePath)),
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		token:        cfg.Token,
		pollInterval: pollInterval,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		logger:       cfg.Logger,
		stop:         make(chan struct{}),
	}
}

// Store exposes the reconciled notification view.
func (c *Client) Store() *Store {
	return c.store
}

// Start performs the initial fetch, connects the socket and launches the
// poll loop. A failed socket dial is not fatal: polling still delivers,
// just without the immediate wake-ups.
func (c *Client) Start() {
	c.FetchEvents()

	conn, err := c.dial()
	if err != nil {
		c.logger.Errorf("failed to connect websocket: %v", err)
	} else {
		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		go c.readLoop(conn)
	}

	go c.pollLoop()
}

// Close stops the poll loop and closes the socket.
func (c *Client) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

// FetchEvents polls the authoritative event list and reconciles the
// store. On failure the last known state stays displayed.
func (c *Client) FetchEvents() {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/calendars", nil)
	if err != nil {
		c.logger.Errorf("failed to build events request: %v", err)
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf("failed to fetch events: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Errorf("failed to fetch events: status %d", resp.StatusCode)
		return
	}

	var events []Event
	if err = json.NewDecoder(resp.Body).Decode(&events); err != nil {
		c.logger.Errorf("failed to decode events: %v", err)
		return
	}

	c.store.ApplyFetch(events)
}

func (c *Client) dial() (*websocket.Conn, error) {
	wsURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	switch wsURL.Scheme {
	case "http":
		wsURL.Scheme = "ws"
	case "https":
		wsURL.Scheme = "wss"
	}
	wsURL.Path = "/ws"
	wsURL.RawQuery = url.Values{"token": {c.token}}.Encode()

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL.String(), err)
	}
	return conn, nil
}

// readLoop handles pushed frames. A reminder is a wake-up signal, not
// content: bump the badge, then re-fetch the authoritative list.
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		var message struct {
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&message); err != nil {
			select {
			case <-c.stop:
			default:
				c.logger.Errorf("websocket closed: %v", err)
			}
			return
		}

		if message.Type == "reminder" {
			c.store.NoteReminder()
			c.FetchEvents()
		}
	}
}

func (c *Client) pollLoop() {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.FetchEvents()
		case <-c.stop:
			return
		}
	}
}

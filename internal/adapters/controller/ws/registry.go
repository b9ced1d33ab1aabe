package ws

import (
	"sync"

	"github.com/shiftwise/shiftwise/server/internal/domain/dto"
)

// Conn is the subset of a websocket connection the registry relies on,
// narrowed so tests can register fakes.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client represents one live authenticated connection. A user with
// several tabs or devices owns several clients.
type Client struct {
	Handle string
	UserID string
	Conn   Conn

	writeMu sync.Mutex
}

// Send writes a message to the connection. Gorilla sockets allow only
// one concurrent writer, and the connect ack and a scan broadcast can
// target the same socket from different goroutines, so every write
// goes through this mutex.
func (c *Client) Send(message dto.Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(message)
}

// Registry is the in-memory table of live authenticated connections,
// keyed by connection handle. It is owned by the process: a restart
// drops every connection and clients reconnect.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]*Client),
	}
}

// Register inserts a connection under its handle and returns the
// client, whose Send method is the only safe write path from here on.
func (r *Registry) Register(handle, userID string, conn Conn) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	client := &Client{
		Handle: handle,
		UserID: userID,
		Conn:   conn,
	}
	r.clients[handle] = client
	return client
}

// Remove drops a connection by handle. Removing an absent handle is a
// no-op, so racing close and error handlers are safe.
func (r *Registry) Remove(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, handle)
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// ForEach visits a snapshot of the current connections, so a client
// disconnecting mid-iteration cannot corrupt the walk.
func (r *Registry) ForEach(visit func(client *Client)) {
	for _, client := range r.snapshot() {
		visit(client)
	}
}

// Broadcast sends a message to every registered connection and returns
// the user ids of the connections it was written to. Delivery is
// fire-and-forget per socket: a failed write is skipped, never fatal.
func (r *Registry) Broadcast(message dto.Message) []string {
	var delivered []string
	for _, client := range r.snapshot() {
		if err := client.Send(message); err != nil {
			continue
		}
		delivered = append(delivered, client.UserID)
	}
	return delivered
}

// Shutdown closes every connection and empties the registry.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for handle, client := range r.clients {
		_ = client.Conn.Close()
		delete(r.clients, handle)
	}
}

func (r *Registry) snapshot() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clients := make([]*Client, 0, len(r.clients))
	for _, client := range r.clients {
		clients = append(clients, client)
	}
	return clients
}

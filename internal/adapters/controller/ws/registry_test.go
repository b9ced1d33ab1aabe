package ws

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shiftwise/shiftwise/server/internal/domain/dto"
	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	mu         sync.Mutex
	messages   []interface{}
	failWrites bool
	closed     bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWrites {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, v)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) messageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func TestRegistryRegisterAndRemove(t *testing.T) {
	registry := NewRegistry()
	registry.Register("h1", "u1", &fakeConn{})
	assert.Equal(t, 1, registry.Len())

	registry.Remove("h1")
	assert.Equal(t, 0, registry.Len())
}

func TestRegistryRemoveIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	registry.Register("h1", "u1", &fakeConn{})

	// close and error handlers may both fire
	registry.Remove("h1")
	assert.NotPanics(t, func() {
		registry.Remove("h1")
	})
	assert.Equal(t, 0, registry.Len())
}

func TestRegistryRemoveUnknownHandleIsNoOp(t *testing.T) {
	registry := NewRegistry()
	assert.NotPanics(t, func() {
		registry.Remove("missing")
	})
}

func TestRegistryAllowsMultipleConnectionsPerUser(t *testing.T) {
	registry := NewRegistry()
	registry.Register("h1", "u1", &fakeConn{})
	registry.Register("h2", "u1", &fakeConn{})
	assert.Equal(t, 2, registry.Len())
}

func TestBroadcastReachesEveryConnection(t *testing.T) {
	registry := NewRegistry()
	first := &fakeConn{}
	second := &fakeConn{}
	registry.Register("h1", "u1", first)
	registry.Register("h2", "u2", second)

	delivered := registry.Broadcast(dto.Message{Type: dto.MessageTypeReminder})

	assert.ElementsMatch(t, []string{"u1", "u2"}, delivered)
	assert.Equal(t, 1, first.messageCount())
	assert.Equal(t, 1, second.messageCount())
}

func TestBroadcastSkipsBrokenSockets(t *testing.T) {
	registry := NewRegistry()
	broken := &fakeConn{failWrites: true}
	healthy := &fakeConn{}
	registry.Register("h1", "u1", broken)
	registry.Register("h2", "u2", healthy)

	delivered := registry.Broadcast(dto.Message{Type: dto.MessageTypeReminder})

	assert.Equal(t, []string{"u2"}, delivered)
	assert.Equal(t, 1, healthy.messageCount())
}

// overlapConn records whether two writers were ever inside WriteJSON at
// the same time, which gorilla sockets forbid.
type overlapConn struct {
	writers int32
	overlap int32
}

func (c *overlapConn) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&c.writers, 1) > 1 {
		atomic.StoreInt32(&c.overlap, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&c.writers, -1)
	return nil
}

func (c *overlapConn) Close() error { return nil }

func TestBroadcastAndSendNeverWriteConcurrently(t *testing.T) {
	registry := NewRegistry()
	conn := &overlapConn{}
	client := registry.Register("h1", "u1", conn)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			registry.Broadcast(dto.Message{Type: dto.MessageTypeReminder})
		}
	}()
	for i := 0; i < 50; i++ {
		_ = client.Send(dto.ConnectionEstablished())
	}
	<-done

	assert.Zero(t, atomic.LoadInt32(&conn.overlap))
}

func TestBroadcastToEmptyRegistry(t *testing.T) {
	registry := NewRegistry()
	assert.Empty(t, registry.Broadcast(dto.Message{Type: dto.MessageTypeReminder}))
}

func TestForEachIteratesSnapshot(t *testing.T) {
	registry := NewRegistry()
	registry.Register("h1", "u1", &fakeConn{})
	registry.Register("h2", "u2", &fakeConn{})

	var visited []string
	registry.ForEach(func(client *Client) {
		// removal during iteration must not break the walk
		registry.Remove("h2")
		visited = append(visited, client.Handle)
	})

	assert.Len(t, visited, 2)
	assert.Equal(t, 1, registry.Len())
}

func TestShutdownClosesAllConnections(t *testing.T) {
	registry := NewRegistry()
	conn := &fakeConn{}
	registry.Register("h1", "u1", conn)

	registry.Shutdown()

	assert.Equal(t, 0, registry.Len())
	assert.True(t, conn.closed)
}

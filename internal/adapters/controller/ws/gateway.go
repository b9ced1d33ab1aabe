package ws

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shiftwise/shiftwise/server/internal/domain/dto"
	"github.com/shiftwise/shiftwise/server/pkg/logger/types"
	"github.com/shiftwise/shiftwise/server/pkg/tokens"
)

const closeGracePeriod = time.Second

// Gateway owns the websocket upgrade endpoint. Every upgrade attempt is
// authenticated with the bearer token from the query string; failures
// close the socket with a policy violation, successes are registered
// until the connection closes or errors.
type Gateway struct {
	registry *Registry
	secret   string
	logger   *types.Logger
	upgrader websocket.Upgrader
}

func NewGateway(registry *Registry, secret string, logger *types.Logger) *Gateway {
	return &Gateway{
		registry: registry,
		secret:   secret,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Tokens authenticate connections, origins do not.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleUpgrade upgrades the request, verifies the token and registers
// the connection. The token travels in the query string because browser
// websocket upgrades cannot carry an Authorization header.
func (g *Gateway) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Errorf("failed to upgrade connection: %v", err)
		return
	}

	claims, err := tokens.Verify(r.URL.Query().Get("token"), g.secret)
	if err != nil {
		g.logger.Errorf("token verification failed: %v", err)
		g.reject(conn, err)
		return
	}

	handle := uuid.NewString()
	client := g.registry.Register(handle, claims.UserID, conn)
	g.logger.Infof("client connected (user_id=%s, handle=%s)", claims.UserID, handle)

	if err = client.Send(dto.ConnectionEstablished()); err != nil {
		g.logger.Errorf("failed to send connection ack to user %s: %v", claims.UserID, err)
	}

	go g.readLoop(handle, claims.UserID, conn)
}

// reject closes an unauthenticated socket with close code 1008 and a
// human-readable reason.
func (g *Gateway) reject(conn *websocket.Conn, err error) {
	reason := "Invalid token"
	if errors.Is(err, tokens.ErrNoToken) {
		reason = "No token provided"
	}

	deadline := time.Now().Add(closeGracePeriod)
	message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = conn.WriteControl(websocket.CloseMessage, message, deadline)
	_ = conn.Close()
}

// readLoop drains incoming frames until the connection closes or errors.
// Deregistration runs exactly once on either path; Remove itself is
// idempotent, so a racing Shutdown cannot double-remove.
func (g *Gateway) readLoop(handle, userID string, conn *websocket.Conn) {
	defer func() {
		g.registry.Remove(handle)
		_ = conn.Close()
		g.logger.Infof("client disconnected (user_id=%s, handle=%s)", userID, handle)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				g.logger.Errorf("websocket error for user %s: %v", userID, err)
			}
			return
		}
	}
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shiftwise/shiftwise/server/internal/adapters/controller/ws"
	"github.com/shiftwise/shiftwise/server/internal/domain/service"
	"github.com/shiftwise/shiftwise/server/pkg/logger/types"
)

// Controller wires the REST surface polled by clients and the websocket
// upgrade endpoint onto one router.
type Controller struct {
	events        *service.CalendarEventService
	notifications *service.NotificationService
	gateway       *ws.Gateway
	secret        string
	logger        *types.Logger
}

func NewController(
	logger *types.Logger,
	events *service.CalendarEventService,
	notifications *service.NotificationService,
	gateway *ws.Gateway,
	secret string,
) *Controller {
	return &Controller{
		events:        events,
		notifications: notifications,
		gateway:       gateway,
		secret:        secret,
		logger:        logger,
	}
}

// Router builds the HTTP router. The websocket endpoint does its own
// token check during the upgrade handshake, so it sits outside the
// bearer middleware.
func (c *Controller) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/ws", c.gateway.HandleUpgrade)

	api := router.PathPrefix("/").Subrouter()
	api.Use(c.authMiddleware)
	api.HandleFunc("/calendars", c.handleEventList).Methods(http.MethodGet)
	api.HandleFunc("/calendars", c.handleEventCreate).Methods(http.MethodPost)
	api.HandleFunc("/calendars/{id:[0-9]+}", c.handleEventUpdate).Methods(http.MethodPut)
	api.HandleFunc("/calendars/{id:[0-9]+}", c.handleEventDelete).Methods(http.MethodDelete)
	api.HandleFunc("/notifications/recent", c.handleRecentNotifications).Methods(http.MethodGet)

	return router
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		c.logger.Errorf("failed to encode response: %v", err)
	}
}

func (c *Controller) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, map[string]string{"message": message})
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shiftwise/shiftwise/server/internal/domain/common/errorz"
	"github.com/shiftwise/shiftwise/server/internal/domain/dto"
	"github.com/shiftwise/shiftwise/server/internal/domain/utils/validator"
)

// handleEventList returns the authenticated user's full event list. This
// is the poll endpoint notification clients reconcile against.
func (c *Controller) handleEventList(w http.ResponseWriter, r *http.Request) {
	events, err := c.events.GetAllForUser(r.Context(), userID(r))
	if err != nil {
		c.logger.Errorf("failed to list events: %v", err)
		c.writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	response := make([]dto.Event, 0, len(events))
	for _, event := range events {
		response = append(response, dto.NewEventFromEntity(event))
	}
	c.writeJSON(w, http.StatusOK, response)
}

func (c *Controller) handleEventCreate(w http.ResponseWriter, r *http.Request) {
	var request dto.CreateEvent
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		c.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validEvent(request) {
		c.writeError(w, http.StatusBadRequest, "invalid event fields")
		return
	}

	event, err := c.events.Create(r.Context(), request.ToEntity(userID(r)))
	if err != nil {
		c.logger.Errorf("failed to create event: %v", err)
		c.writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}
	c.writeJSON(w, http.StatusCreated, dto.NewEventFromEntity(*event))
}

func (c *Controller) handleEventUpdate(w http.ResponseWriter, r *http.Request) {
	id := eventID(r)

	var request dto.CreateEvent
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		c.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validEvent(request) {
		c.writeError(w, http.StatusBadRequest, "invalid event fields")
		return
	}

	event := request.ToEntity(userID(r))
	event.ID = id
	updated, err := c.events.Update(r.Context(), userID(r), event)
	if err != nil {
		c.writeServiceError(w, err, "failed to update event")
		return
	}
	c.writeJSON(w, http.StatusOK, dto.NewEventFromEntity(*updated))
}

func (c *Controller) handleEventDelete(w http.ResponseWriter, r *http.Request) {
	if err := c.events.Delete(r.Context(), userID(r), eventID(r)); err != nil {
		c.writeServiceError(w, err, "failed to delete event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) handleRecentNotifications(w http.ResponseWriter, r *http.Request) {
	recent, err := c.notifications.Recent(r.Context(), userID(r))
	if err != nil {
		c.logger.Errorf("failed to list recent notifications: %v", err)
		c.writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	c.writeJSON(w, http.StatusOK, recent)
}

func (c *Controller) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, errorz.EventNotFound):
		c.writeError(w, http.StatusNotFound, "event not found")
	case errors.Is(err, errorz.Forbidden):
		c.writeError(w, http.StatusForbidden, "forbidden")
	default:
		c.logger.Errorf("%s: %v", fallback, err)
		c.writeError(w, http.StatusInternalServerError, fallback)
	}
}

func validEvent(request dto.CreateEvent) bool {
	return validator.EventTitle(request.Title) &&
		validator.EventDescription(request.Description) &&
		(request.EventColor == "" || validator.EventColor(request.EventColor)) &&
		validator.EventDates(request.StartDate, request.EndDate) &&
		validator.ReminderMinutes(request.ReminderMinutes)
}

func eventID(r *http.Request) uint {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return uint(id)
}

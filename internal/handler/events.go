package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pawnsgambit/club-api/internal/content"
	"github.com/pawnsgambit/club-api/internal/queue"
	queue_publisher "github.com/pawnsgambit/club-api/internal/service"
)

// EventsHandler serves the club event endpoints.
type EventsHandler struct {
	Events *content.Events
	Log    *zap.Logger
}

func NewEventsHandler(events *content.Events, log *zap.Logger) *EventsHandler {
	return &EventsHandler{Events: events, Log: log}
}

// List returns a page of events. ?type= narrows to one event type.
func (h *EventsHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if t := c.QueryParam("type"); t != "" {
		items, err := h.Events.ByType(ctx, t)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}

	items, err := h.Events.List(ctx, listOptions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Upcoming returns events starting from now, soonest first.
func (h *EventsHandler) Upcoming(c echo.Context) error {
	items, err := h.Events.Upcoming(c.Request().Context(), intQuery(c, "limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Featured returns events flagged for the homepage.
func (h *EventsHandler) Featured(c echo.Context) error {
	items, err := h.Events.Featured(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Past returns finished events, most recent first.
func (h *EventsHandler) Past(c echo.Context) error {
	items, err := h.Events.Past(c.Request().Context(), intQuery(c, "limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ByID returns a single event.
func (h *EventsHandler) ByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ev, err := h.Events.ByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// Register signs the caller up for an event by bumping its participant
// counter. Full events are rejected with 409. An activity message is
// published best-effort; a broker outage never fails the registration.
func (h *EventsHandler) Register(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()

	ev, err := h.Events.ByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if ev.MaxParticipants > 0 && ev.Participants >= ev.MaxParticipants {
		return c.JSON(http.StatusConflict, echo.Map{"error": "event is full"})
	}

	updated, err := h.Events.Register(ctx, id, ev.Participants)
	if err != nil {
		return respondError(c, err)
	}

	if err := queue_publisher.PublishEventRegistration(ctx, queue.EventRegistrationEvent{
		EventID:      updated.ID,
		EventTitle:   updated.Title,
		EventType:    updated.Type,
		Participants: int64(updated.Participants),
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		h.Log.Warn("activity publish failed", zap.Int64("event_id", updated.ID), zap.Error(err))
	}

	return c.JSON(http.StatusOK, updated)
}

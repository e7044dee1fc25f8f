package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/event"
	"github.com/gin-gonic/gin"
)

type EventsStore interface {
	Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	GetByID(ctx context.Context, id string) (event.Event, error)
	List(ctx context.Context, f event.ListEventsFilter) ([]event.Event, error)
	Update(ctx context.Context, id string, req event.UpdateEventRequest) (event.Event, error)
	Delete(ctx context.Context, id string) error
}

type EventsHandler struct {
	repo EventsStore
}

func NewEventsHandler(repo EventsStore) *EventsHandler {
	return &EventsHandler{repo: repo}
}

func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	var req event.CreateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	e, err := h.repo.Create(ctx.Request.Context(), req)
	if err != nil {
		RespondInternal(ctx, "Could not create event", err)
		return
	}

	ctx.JSON(http.StatusCreated, e)
}

func (h *EventsHandler) ListEvents(ctx *gin.Context) {
	var f event.ListEventsFilter

	if club := strings.TrimSpace(ctx.Query("club")); club != "" {
		f.Club = &club
	}
	if raw := ctx.Query("status"); raw != "" {
		st := event.Status(raw)
		if !st.IsValid() {
			invalidOneOf(ctx, "status", string(event.StatusUpcoming), string(event.StatusOngoing), string(event.StatusPast))
			return
		}
		f.Status = &st
	}

	events, err := h.repo.List(ctx.Request.Context(), f)
	if err != nil {
		RespondInternal(ctx, "Could not list events", err)
		return
	}

	respondList(ctx, events, nil)
}

func (h *EventsHandler) GetEventById(ctx *gin.Context) {
	e, err := h.repo.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		RespondInternal(ctx, "Could not fetch event", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, e)
}

func (h *EventsHandler) UpdateEvent(ctx *gin.Context) {
	var req event.UpdateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	e, err := h.repo.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		RespondInternal(ctx, "Could not update event", err)
		return
	}

	ctx.JSON(http.StatusOK, e)
}

func (h *EventsHandler) DeleteEvent(ctx *gin.Context) {
	err := h.repo.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		RespondInternal(ctx, "Could not delete event", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

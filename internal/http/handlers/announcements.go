package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/announcement"
	"github.com/gin-gonic/gin"
)

type AnnouncementsStore interface {
	List(ctx context.Context) ([]announcement.Announcement, error)
	GetByID(ctx context.Context, id string) (announcement.Announcement, error)
	Create(ctx context.Context, req announcement.CreateRequest) (announcement.Announcement, error)
	Delete(ctx context.Context, id string) error
}

type AnnouncementsHandler struct {
	announcements AnnouncementsStore
	notify        *Notifier
}

func NewAnnouncementsHandler(a AnnouncementsStore, n *Notifier) *AnnouncementsHandler {
	return &AnnouncementsHandler{announcements: a, notify: n}
}

func (h *AnnouncementsHandler) List(ctx *gin.Context) {
	items, err := h.announcements.List(ctx.Request.Context())
	if err != nil {
		RespondInternal(ctx, "Could not list announcements", err)
		return
	}
	respondList(ctx, items, nil)
}

func (h *AnnouncementsHandler) Get(ctx *gin.Context) {
	a, err := h.announcements.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, announcement.ErrNotFound) {
			RespondNotFound(ctx, "Announcement not found")
			return
		}
		RespondInternal(ctx, "Could not fetch announcement", err)
		return
	}
	RespondJSONWithETag(ctx, http.StatusOK, a)
}

func (h *AnnouncementsHandler) Create(ctx *gin.Context) {
	var req announcement.CreateRequest
	if !BindJSON(ctx, &req) {
		return
	}

	a, err := h.announcements.Create(ctx.Request.Context(), req)
	if err != nil {
		RespondInternal(ctx, "Could not create announcement", err)
		return
	}

	h.notify.Broadcast(ctx, "New Announcement", a.Title)
	ctx.JSON(http.StatusCreated, a)
}

func (h *AnnouncementsHandler) Delete(ctx *gin.Context) {
	if err := h.announcements.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, announcement.ErrNotFound) {
			RespondNotFound(ctx, "Announcement not found")
			return
		}
		RespondInternal(ctx, "Could not delete announcement", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

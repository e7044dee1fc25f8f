package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/notification"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type NotificationsStore interface {
	ListByAccount(ctx context.Context, accountID string) ([]notification.Notification, error)
	MarkRead(ctx context.Context, id, accountID string) (notification.Notification, error)
	MarkAllRead(ctx context.Context, accountID string) (int64, error)
}

type NotificationsHandler struct {
	notifications NotificationsStore
}

func NewNotificationsHandler(n NotificationsStore) *NotificationsHandler {
	return &NotificationsHandler{notifications: n}
}

func (h *NotificationsHandler) List(ctx *gin.Context) {
	id, _ := middlewares.UserIDFromContext(ctx)

	items, err := h.notifications.ListByAccount(ctx.Request.Context(), id)
	if err != nil {
		RespondInternal(ctx, "Could not list notifications", err)
		return
	}
	respondList(ctx, items, gin.H{"unread": notification.CountUnread(items)})
}

func (h *NotificationsHandler) MarkRead(ctx *gin.Context) {
	id, _ := middlewares.UserIDFromContext(ctx)

	n, err := h.notifications.MarkRead(ctx.Request.Context(), ctx.Param("id"), id)
	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			RespondNotFound(ctx, "Notification not found")
			return
		}
		RespondInternal(ctx, "Could not update notification", err)
		return
	}
	ctx.JSON(http.StatusOK, n)
}

func (h *NotificationsHandler) MarkAllRead(ctx *gin.Context) {
	id, _ := middlewares.UserIDFromContext(ctx)

	updated, err := h.notifications.MarkAllRead(ctx.Request.Context(), id)
	if err != nil {
		RespondInternal(ctx, "Could not update notifications", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"updated": updated})
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/request"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type RequestsStore interface {
	List(ctx context.Context, f request.ListFilter) ([]request.Request, error)
	GetByID(ctx context.Context, id string) (request.Request, error)
	Create(ctx context.Context, q request.Request) error
	UpdateStatus(ctx context.Context, id string, from, to request.Status) (request.Request, error)
	Delete(ctx context.Context, id string) error
}

type RequestsHandler struct {
	requests RequestsStore
	notify   *Notifier
}

func NewRequestsHandler(r RequestsStore, n *Notifier) *RequestsHandler {
	return &RequestsHandler{requests: r, notify: n}
}

// a decision re-reads and retries this many times when another writer wins
const decideAttempts = 3

func (h *RequestsHandler) List(ctx *gin.Context) {
	var f request.ListFilter
	if raw := ctx.Query("status"); raw != "" {
		st := request.Status(raw)
		if !st.IsValid() {
			invalidOneOf(ctx, "status", string(request.StatusPending), string(request.StatusApproved), string(request.StatusRejected))
			return
		}
		f.Status = &st
	}
	h.list(ctx, f)
}

func (h *RequestsHandler) Mine(ctx *gin.Context) {
	id, _ := middlewares.UserIDFromContext(ctx)
	h.list(ctx, request.ListFilter{RequesterAccountID: &id})
}

func (h *RequestsHandler) list(ctx *gin.Context, f request.ListFilter) {
	items, err := h.requests.List(ctx.Request.Context(), f)
	if err != nil {
		RespondInternal(ctx, "Could not list requests", err)
		return
	}

	pending := 0
	for _, q := range items {
		if q.Status == request.StatusPending {
			pending++
		}
	}
	respondList(ctx, items, gin.H{"pending": pending})
}

func (h *RequestsHandler) Create(ctx *gin.Context) {
	var req request.CreateRequest
	if !BindJSON(ctx, &req) {
		return
	}

	id, _ := middlewares.UserIDFromContext(ctx)
	q := request.NewFromCreateRequest(id, req)

	if err := h.requests.Create(ctx.Request.Context(), q); err != nil {
		RespondInternal(ctx, "Could not create request", err)
		return
	}
	ctx.JSON(http.StatusCreated, q)
}

// UpdateStatus applies an admin decision. Repeating the current decision is a
// no-op; reversing one is a conflict.
func (h *RequestsHandler) UpdateStatus(ctx *gin.Context) {
	var req request.UpdateStatusRequest
	if !BindJSON(ctx, &req) {
		return
	}

	c := ctx.Request.Context()
	ref := ctx.Param("id")

	for range decideAttempts {
		current, err := h.requests.GetByID(c, ref)
		if err != nil {
			if errors.Is(err, request.ErrNotFound) {
				RespondNotFound(ctx, "Request not found")
				return
			}
			RespondInternal(ctx, "Could not update request", err)
			return
		}

		noop, err := request.Transition(current.Status, req.Status)
		if err != nil {
			RespondConflict(ctx, "Request is already "+string(current.Status), gin.H{
				"from": current.Status,
				"to":   req.Status,
			})
			return
		}
		if noop {
			ctx.JSON(http.StatusOK, current)
			return
		}

		updated, err := h.requests.UpdateStatus(c, current.ID, current.Status, req.Status)
		switch {
		case err == nil:
			if updated.RequesterAccountID != nil {
				h.notify.Account(ctx, "request:"+updated.ID+":"+string(updated.Status), *updated.RequesterAccountID,
					"Request "+titleCase(string(updated.Status)),
					"Your "+updated.Type+" request was "+string(updated.Status)+".")
			}
			ctx.JSON(http.StatusOK, updated)
			return
		case errors.Is(err, request.ErrStale):
			continue
		case errors.Is(err, request.ErrNotFound):
			RespondNotFound(ctx, "Request not found")
			return
		default:
			RespondInternal(ctx, "Could not update request", err)
			return
		}
	}

	RespondConflict(ctx, "Request was changed by someone else, try again", nil)
}

func (h *RequestsHandler) Delete(ctx *gin.Context) {
	if err := h.requests.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, request.ErrNotFound) {
			RespondNotFound(ctx, "Request not found")
			return
		}
		RespondInternal(ctx, "Could not delete request", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

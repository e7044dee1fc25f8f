package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/club"
	"github.com/gin-gonic/gin"
)

type ClubsStore interface {
	List(ctx context.Context) ([]club.Club, error)
	GetByID(ctx context.Context, id string) (club.Club, error)
	Create(ctx context.Context, req club.CreateRequest) (club.Club, error)
	Update(ctx context.Context, id string, req club.UpdateRequest) (club.Club, error)
	Delete(ctx context.Context, id string) error
}

type ClubsHandler struct {
	clubs ClubsStore
}

func NewClubsHandler(c ClubsStore) *ClubsHandler {
	return &ClubsHandler{clubs: c}
}

func (h *ClubsHandler) List(ctx *gin.Context) {
	items, err := h.clubs.List(ctx.Request.Context())
	if err != nil {
		RespondInternal(ctx, "Could not list clubs", err)
		return
	}
	respondList(ctx, items, nil)
}

func (h *ClubsHandler) Get(ctx *gin.Context) {
	c, err := h.clubs.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, club.ErrNotFound) {
			RespondNotFound(ctx, "Club not found")
			return
		}
		RespondInternal(ctx, "Could not fetch club", err)
		return
	}
	RespondJSONWithETag(ctx, http.StatusOK, c)
}

func (h *ClubsHandler) Create(ctx *gin.Context) {
	var req club.CreateRequest
	if !BindJSON(ctx, &req) {
		return
	}

	c, err := h.clubs.Create(ctx.Request.Context(), req)
	if err != nil {
		RespondInternal(ctx, "Could not create club", err)
		return
	}
	ctx.JSON(http.StatusCreated, c)
}

func (h *ClubsHandler) Update(ctx *gin.Context) {
	var req club.UpdateRequest
	if !BindJSON(ctx, &req) {
		return
	}

	c, err := h.clubs.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, club.ErrNotFound) {
			RespondNotFound(ctx, "Club not found")
			return
		}
		RespondInternal(ctx, "Could not update club", err)
		return
	}
	ctx.JSON(http.StatusOK, c)
}

func (h *ClubsHandler) Delete(ctx *gin.Context) {
	if err := h.clubs.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, club.ErrNotFound) {
			RespondNotFound(ctx, "Club not found")
			return
		}
		RespondInternal(ctx, "Could not delete club", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

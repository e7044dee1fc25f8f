package handlers

import (
	"context"
	"net/http"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/cache"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/timetable"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/middlewares"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
	"github.com/gin-gonic/gin"
)

type TimetableStore interface {
	ListByRole(ctx context.Context, role timetable.Role) ([]timetable.Row, error)
	Upsert(ctx context.Context, role timetable.Role, day string, slots []timetable.Slot) (timetable.Row, error)
}

const timetableCachePrefix = "timetable:"

type TimetableHandler struct {
	rows  TimetableStore
	cache *cache.Cache[[]timetable.Row]
}

// NewTimetableHandler serves timetables through c; a nil cache disables it.
func NewTimetableHandler(rows TimetableStore, c *cache.Cache[[]timetable.Row]) *TimetableHandler {
	return &TimetableHandler{rows: rows, cache: c}
}

// Mine picks the caller's table: teachers get theirs, everyone else the
// student one.
func (h *TimetableHandler) Mine(ctx *gin.Context) {
	role := timetable.RoleStudent
	if r, _ := middlewares.RoleFromContext(ctx); r == rbac.Teacher {
		role = timetable.RoleTeacher
	}
	h.respond(ctx, role)
}

func (h *TimetableHandler) ByRole(ctx *gin.Context) {
	role, ok := timetable.ParseRole(ctx.Param("role"))
	if !ok {
		RespondBadRequest(ctx, "Unknown timetable role", gin.H{"role": ctx.Param("role"), "allowed": []timetable.Role{timetable.RoleStudent, timetable.RoleTeacher}})
		return
	}
	h.respond(ctx, role)
}

func (h *TimetableHandler) respond(ctx *gin.Context, role timetable.Role) {
	rows, err := h.load(ctx.Request.Context(), role)
	if err != nil {
		RespondInternal(ctx, "Could not load timetable", err)
		return
	}
	respondList(ctx, rows, gin.H{"role": role})
}

func (h *TimetableHandler) load(ctx context.Context, role timetable.Role) ([]timetable.Row, error) {
	key := timetableCachePrefix + string(role)
	if h.cache != nil {
		if rows, ok := h.cache.Get(key); ok {
			return rows, nil
		}
	}

	rows, err := h.rows.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	if h.cache != nil {
		h.cache.Set(key, rows)
	}
	return rows, nil
}

func (h *TimetableHandler) Upsert(ctx *gin.Context) {
	role, ok := timetable.ParseRole(ctx.Param("role"))
	if !ok {
		RespondBadRequest(ctx, "Unknown timetable role", gin.H{"role": ctx.Param("role")})
		return
	}
	day, err := timetable.ParseDay(ctx.Param("day"))
	if err != nil {
		RespondBadRequest(ctx, "Unknown day", gin.H{"day": ctx.Param("day")})
		return
	}

	var req timetable.UpsertRequest
	if !BindJSON(ctx, &req) {
		return
	}

	row, err := h.rows.Upsert(ctx.Request.Context(), role, day, req.Slots)
	if err != nil {
		RespondInternal(ctx, "Could not save timetable", err)
		return
	}

	if h.cache != nil {
		h.cache.DeletePrefix(timetableCachePrefix)
	}
	ctx.JSON(http.StatusOK, row)
}

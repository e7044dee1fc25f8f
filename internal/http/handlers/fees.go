package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/fee"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/middlewares"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
	"github.com/gin-gonic/gin"
)

type FeesStore interface {
	List(ctx context.Context, f fee.ListFilter) ([]fee.Fee, error)
	Pay(ctx context.Context, id, accountID string) (fee.Fee, error)
}

type FeesHandler struct {
	fees     FeesStore
	students StudentLookup
}

func NewFeesHandler(f FeesStore, s StudentLookup) *FeesHandler {
	return &FeesHandler{fees: f, students: s}
}

// payers are the accounts whose fees the caller may see: their own, or for a
// parent the accounts of the linked children.
func (h *FeesHandler) payers(ctx context.Context, scope rbac.Scope) ([]string, error) {
	if scope.Role != rbac.Parent {
		return []string{scope.AccountID}, nil
	}

	out := make([]string, 0, len(scope.StudentIDs))
	for _, id := range scope.StudentIDs {
		s, err := h.students.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if s.AccountID != nil {
			out = append(out, *s.AccountID)
		}
	}
	return out, nil
}

func (h *FeesHandler) ListMine(ctx *gin.Context) {
	scope := middlewares.ScopeFromContext(ctx)
	c := ctx.Request.Context()

	payers, err := h.payers(c, scope)
	if err != nil {
		RespondInternal(ctx, "Could not list fees", err)
		return
	}

	items := make([]fee.Fee, 0)
	for _, accountID := range payers {
		rows, err := h.fees.List(c, fee.ListFilter{AccountID: &accountID})
		if err != nil {
			RespondInternal(ctx, "Could not list fees", err)
			return
		}
		items = append(items, rows...)
	}

	sum := fee.Summarize(items)
	respondList(ctx, items, gin.H{"pendingTotal": sum.PendingTotal, "paidTotal": sum.PaidTotal})
}

func (h *FeesHandler) ListAll(ctx *gin.Context) {
	var f fee.ListFilter
	if raw := ctx.Query("status"); raw != "" {
		st, ok := fee.ParseStatus(raw)
		if !ok {
			invalidOneOf(ctx, "status", string(fee.StatusPending), string(fee.StatusPaid))
			return
		}
		f.Status = &st
	}

	items, err := h.fees.List(ctx.Request.Context(), f)
	if err != nil {
		RespondInternal(ctx, "Could not list fees", err)
		return
	}

	sum := fee.Summarize(items)
	respondList(ctx, items, gin.H{"pendingTotal": sum.PendingTotal, "paidTotal": sum.PaidTotal})
}

// Pay settles one of the caller's own fees. Paying a paid fee returns it
// unchanged; someone else's fee is reported as missing.
func (h *FeesHandler) Pay(ctx *gin.Context) {
	scope := middlewares.ScopeFromContext(ctx)

	f, err := h.fees.Pay(ctx.Request.Context(), ctx.Param("id"), scope.AccountID)
	if err != nil {
		if errors.Is(err, fee.ErrNotFound) {
			RespondNotFound(ctx, "Fee not found")
			return
		}
		RespondInternal(ctx, "Could not pay fee", err)
		return
	}
	ctx.JSON(http.StatusOK, f)
}

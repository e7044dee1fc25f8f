// Package actorctx carries the verified caller on a context.Context so code
// below the HTTP layer (jobs, logging) can see who triggered it.
package actorctx

import (
	"context"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
)

type Actor struct {
	AccountID string
	Email     string
	Role      rbac.Role
}

type key struct{}

func With(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, key{}, a)
}

func From(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(key{}).(Actor)
	return a, ok && a.AccountID != ""
}

func AccountIDFrom(ctx context.Context) (string, bool) {
	a, ok := From(ctx)
	return a.AccountID, ok
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/apierror"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/auth"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/account"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/middlewares"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/security"
	"github.com/gin-gonic/gin"
)

type AccountReader interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	GetByID(ctx context.Context, id string) (account.Account, error)
}

type TokenIssuer interface {
	IssueToken(userID, email, role string) (string, time.Time, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, claims *auth.Claims) error
}

type AuthHandler struct {
	accounts AccountReader
	tokens   TokenIssuer
	revoker  TokenRevoker
}

func NewAuthHandler(accounts AccountReader, tokens TokenIssuer, revoker TokenRevoker) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens, revoker: revoker}
}

const invalidCredentials = "Email or password is incorrect."

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req account.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	found, err := h.accounts.GetByEmail(cctx, account.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			// same bcrypt cost as a wrong password
			security.BurnCompare(req.Password)
			RespondUnAuthorized(ctx, apierror.InvalidCredentials, invalidCredentials)
			return
		}
		RespondInternal(ctx, "Could not sign in", err)
		return
	}

	if err := security.CheckPassword(found.PasswordHash, req.Password); err != nil {
		RespondUnAuthorized(ctx, apierror.InvalidCredentials, invalidCredentials)
		return
	}

	token, expiresAt, err := h.tokens.IssueToken(found.ID, found.Email, string(found.Role))
	if err != nil {
		RespondInternal(ctx, "Could not generate access token", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expiresAt,
		"user":      found.Public(),
	})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	id, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondUnAuthorized(ctx, apierror.Unauthenticated, "Authentication required")
		return
	}

	a, err := h.accounts.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			RespondNotFound(ctx, "Account not found")
			return
		}
		RespondInternal(ctx, "Could not load account", err)
		return
	}

	ctx.JSON(http.StatusOK, a.Me())
}

// Logout revokes the presented token until it would have expired anyway.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	claims, ok := middlewares.ClaimsFromContext(ctx)
	if !ok {
		RespondUnAuthorized(ctx, apierror.Unauthenticated, "Authentication required")
		return
	}

	if err := h.revoker.Revoke(ctx.Request.Context(), claims); err != nil {
		RespondInternal(ctx, "Could not sign out", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

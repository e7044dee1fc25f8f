package account

import (
	"errors"
	"strings"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
)

var (
	ErrNotFound         = errors.New("account not found")
	ErrEmailAlreadyUsed = errors.New("email already in use")
)

type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Role         rbac.Role `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Public is the login response view of an account.
type Public struct {
	ID    string    `json:"id"`
	Email string    `json:"email"`
	Role  rbac.Role `json:"role"`
}

// Me is the identity endpoint view.
type Me struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      rbac.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a Account) Public() Public {
	return Public{ID: a.ID, Email: a.Email, Role: a.Role}
}

func (a Account) Me() Me {
	return Me{ID: a.ID, Email: a.Email, Role: a.Role, CreatedAt: a.CreatedAt}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,max=128"`
}

// NormalizeEmail is applied on every write and lookup; emails are unique
// case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

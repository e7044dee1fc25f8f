package notification

import (
	"errors"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/displayid"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("notification not found")

type Notification struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"externalId"`
	AccountID  string    `json:"accountId"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

func New(accountID, title, message string) Notification {
	return Notification{
		ID:         uuid.NewString(),
		ExternalID: displayid.New(displayid.Notification),
		AccountID:  accountID,
		Title:      title,
		Message:    message,
		CreatedAt:  time.Now().UTC(),
	}
}

func CountUnread(items []Notification) int {
	n := 0
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n
}

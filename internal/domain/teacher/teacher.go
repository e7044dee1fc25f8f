package teacher

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("teacher not found")

type Teacher struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"externalId"`
	AccountID  *string   `json:"accountId,omitempty"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Subject    string    `json:"subject"`
	Experience int       `json:"experience"`
	CreatedAt  time.Time `json:"createdAt"`
}

package announcement

import (
	"errors"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/displayid"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("announcement not found")

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Announcement struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"externalId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	Date       string    `json:"date"`
	Priority   Priority  `json:"priority"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateRequest struct {
	Title    string   `json:"title" binding:"required,min=2,max=200"`
	Content  string   `json:"content" binding:"required,max=5000"`
	Author   string   `json:"author" binding:"required,max=120"`
	Date     string   `json:"date" binding:"omitempty,isodate"`
	Priority Priority `json:"priority" binding:"omitempty,oneof=low medium high"`
}

func NewFromCreateRequest(req CreateRequest) Announcement {
	now := time.Now().UTC()

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	date := req.Date
	if date == "" {
		date = now.Format(time.DateOnly)
	}

	return Announcement{
		ID:         uuid.NewString(),
		ExternalID: displayid.New(displayid.Announcement),
		Title:      req.Title,
		Content:    req.Content,
		Author:     req.Author,
		Date:       date,
		Priority:   priority,
		CreatedAt:  now,
	}
}

package request

import (
	"errors"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/displayid"
	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("request not found")
	ErrInvalidTransition = errors.New("invalid request status transition")
	// ErrStale is returned by a store when the row left the expected status
	// between read and write.
	ErrStale = errors.New("request status changed concurrently")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s.Terminal()
}

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Request struct {
	ID                 string     `json:"id"`
	ExternalID         string     `json:"externalId"`
	Type               string     `json:"type"`
	FromName           string     `json:"fromName"`
	Date               string     `json:"date"`
	Reason             string     `json:"reason"`
	Status             Status     `json:"status"`
	RequesterAccountID *string    `json:"requesterAccountId,omitempty"`
	DecidedAt          *time.Time `json:"decidedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

type ListFilter struct {
	RequesterAccountID *string
	Status             *Status
}

type CreateRequest struct {
	Type     string `json:"type" binding:"required,min=2,max=80"`
	FromName string `json:"fromName" binding:"required,min=2,max=120"`
	Date     string `json:"date" binding:"omitempty,isodate"`
	Reason   string `json:"reason" binding:"required,max=2000"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required,oneof=pending approved rejected"`
}

// Transition reports whether moving from -> to is a no-op, allowed, or
// rejected. Decisions are one-way: any request accepts its own status again,
// nothing goes back to pending.
func Transition(from, to Status) (noop bool, err error) {
	if from == to {
		return true, nil
	}
	if from == StatusPending && to.Terminal() {
		return false, nil
	}
	return false, ErrInvalidTransition
}

func NewFromCreateRequest(requesterID string, req CreateRequest) Request {
	now := time.Now().UTC()

	date := req.Date
	if date == "" {
		date = now.Format(time.DateOnly)
	}

	r := Request{
		ID:         uuid.NewString(),
		ExternalID: displayid.New(displayid.Request),
		Type:       req.Type,
		FromName:   req.FromName,
		Date:       date,
		Reason:     req.Reason,
		Status:     StatusPending,
		CreatedAt:  now,
	}
	if requesterID != "" {
		r.RequesterAccountID = &requesterID
	}
	return r
}

package fee

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("fee not found")

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

type Fee struct {
	ID         string     `json:"id"`
	ExternalID string     `json:"externalId"`
	AccountID  string     `json:"accountId"`
	Type       string     `json:"type"`
	Amount     int64      `json:"amount"`
	DueDate    string     `json:"dueDate"`
	Status     Status     `json:"status"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type ListFilter struct {
	AccountID *string
	Status    *Status
}

type Summary struct {
	PendingTotal int64 `json:"pendingTotal"`
	PaidTotal    int64 `json:"paidTotal"`
}

func Summarize(fees []Fee) Summary {
	var s Summary
	for _, f := range fees {
		switch f.Status {
		case StatusPending:
			s.PendingTotal += f.Amount
		case StatusPaid:
			s.PaidTotal += f.Amount
		}
	}
	return s
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s == StatusPending || s == StatusPaid
}

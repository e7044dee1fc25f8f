package event

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("event not found")

type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusOngoing  Status = "ongoing"
	StatusPast     Status = "past"
)

func (s Status) IsValid() bool {
	return s == StatusUpcoming || s == StatusOngoing || s == StatusPast
}

type Event struct {
	ID            string    `json:"id"`
	ExternalID    string    `json:"externalId"`
	Title         string    `json:"title"`
	Club          string    `json:"club"`
	Date          string    `json:"date"`
	Description   string    `json:"description,omitempty"`
	Status        Status    `json:"status"`
	Registrations int       `json:"registrations"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// with pointers if optional, it will be nil
type ListEventsFilter struct {
	Club   *string
	Status *Status
}

type CreateEventRequest struct {
	Title         string `json:"title" binding:"required,min=2,max=160"`
	Club          string `json:"club" binding:"required,min=2,max=80"`
	Date          string `json:"date" binding:"required,isodate"`
	Description   string `json:"description" binding:"omitempty,max=2000"`
	Status        Status `json:"status" binding:"omitempty,oneof=upcoming ongoing past"`
	Registrations *int   `json:"registrations" binding:"omitempty,min=0,max=100000"`
}

// UpdateEventRequest is a partial update.
type UpdateEventRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=2,max=160"`
	Club          *string `json:"club" binding:"omitempty,min=2,max=80"`
	Date          *string `json:"date" binding:"omitempty,isodate"`
	Description   *string `json:"description" binding:"omitempty,max=2000"`
	Status        *Status `json:"status" binding:"omitempty,oneof=upcoming ongoing past"`
	Registrations *int    `json:"registrations" binding:"omitempty,min=0,max=100000"`
}

func (e *Event) Apply(req UpdateEventRequest) {
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Club != nil {
		e.Club = *req.Club
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	if req.Registrations != nil {
		e.Registrations = *req.Registrations
	}
	e.UpdatedAt = time.Now().UTC()
}

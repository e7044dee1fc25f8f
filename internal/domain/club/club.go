package club

import (
	"errors"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/displayid"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("club not found")

type Club struct {
	ID          string    `json:"id"`
	ExternalID  string    `json:"externalId"`
	Name        string    `json:"name"`
	Accent      string    `json:"accent"`
	Members     int       `json:"members"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=80"`
	Accent      string `json:"accent" binding:"required,hexcolor"`
	Members     *int   `json:"members" binding:"omitempty,min=0,max=100000"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=80"`
	Accent      *string `json:"accent" binding:"omitempty,hexcolor"`
	Members     *int    `json:"members" binding:"omitempty,min=0,max=100000"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

func NewFromCreateRequest(req CreateRequest) Club {
	now := time.Now().UTC()

	c := Club{
		ID:          uuid.NewString(),
		ExternalID:  displayid.New(displayid.Club),
		Name:        req.Name,
		Accent:      req.Accent,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Members != nil {
		c.Members = *req.Members
	}
	return c
}

func (c *Club) Apply(req UpdateRequest) {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Accent != nil {
		c.Accent = *req.Accent
	}
	if req.Members != nil {
		c.Members = *req.Members
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	c.UpdatedAt = time.Now().UTC()
}

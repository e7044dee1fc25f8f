package event

import (
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/displayid"
	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateEventRequest) Event {
	now := time.Now().UTC()

	status := req.Status
	if status == "" {
		status = StatusUpcoming
	}

	registrations := 0
	if req.Registrations != nil {
		registrations = *req.Registrations
	}

	return Event{
		ID:            uuid.NewString(),
		ExternalID:    displayid.New(displayid.Event),
		Title:         req.Title,
		Club:          req.Club,
		Date:          req.Date,
		Description:   req.Description,
		Status:        status,
		Registrations: registrations,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

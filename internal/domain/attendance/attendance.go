package attendance

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("attendance record not found")

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

type Record struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Date      string    `json:"date"`
	Subject   string    `json:"subject"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListFilter: nil StudentIDs means every student, empty matches nothing.
type ListFilter struct {
	StudentIDs []string
	Date       *string
}

type CreateRequest struct {
	StudentID string `json:"studentId" binding:"required,max=64"`
	Date      string `json:"date" binding:"required,isodate"`
	Subject   string `json:"subject" binding:"required,min=1,max=120"`
	Status    Status `json:"status" binding:"required,oneof=present absent"`
}

type UpdateRequest struct {
	Status Status `json:"status" binding:"required,oneof=present absent"`
}

func NewFromCreateRequest(studentID string, req CreateRequest) Record {
	return Record{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Date:      req.Date,
		Subject:   req.Subject,
		Status:    req.Status,
		CreatedAt: time.Now().UTC(),
	}
}

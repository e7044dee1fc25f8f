package mark

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("mark not found")

const (
	MaxInternal   = 50
	MaxAssignment = 20
	MaxTotal      = 2*MaxInternal + MaxAssignment
)

type Mark struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"studentId"`
	Subject    string    `json:"subject"`
	Internal1  int       `json:"internal1"`
	Internal2  int       `json:"internal2"`
	Assignment int       `json:"assignment"`
	Total      int       `json:"total"`
	Grade      string    `json:"grade"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ListFilter restricts a listing to the given students. A nil slice means
// every student; an empty slice matches nothing.
type ListFilter struct {
	StudentIDs []string
}

type CreateRequest struct {
	StudentID  string `json:"studentId" binding:"required,max=64"`
	Subject    string `json:"subject" binding:"required,min=2,max=120"`
	Internal1  *int   `json:"internal1" binding:"required,min=0,max=50"`
	Internal2  *int   `json:"internal2" binding:"required,min=0,max=50"`
	Assignment *int   `json:"assignment" binding:"required,min=0,max=20"`
}

// UpdateRequest changes any subset of the components. Total and grade are
// never accepted from the client.
type UpdateRequest struct {
	Internal1  *int `json:"internal1" binding:"omitempty,min=0,max=50"`
	Internal2  *int `json:"internal2" binding:"omitempty,min=0,max=50"`
	Assignment *int `json:"assignment" binding:"omitempty,min=0,max=20"`
}

// Grade maps a total to its letter grade.
func Grade(total int) string {
	switch {
	case total >= 90:
		return "A+"
	case total >= 80:
		return "A"
	case total >= 70:
		return "B+"
	case total >= 60:
		return "B"
	case total >= 50:
		return "C"
	default:
		return "F"
	}
}

func (m *Mark) Recalculate() {
	m.Total = m.Internal1 + m.Internal2 + m.Assignment
	m.Grade = Grade(m.Total)
}

func (m *Mark) Apply(req UpdateRequest) {
	if req.Internal1 != nil {
		m.Internal1 = *req.Internal1
	}
	if req.Internal2 != nil {
		m.Internal2 = *req.Internal2
	}
	if req.Assignment != nil {
		m.Assignment = *req.Assignment
	}
	m.Recalculate()
	m.UpdatedAt = time.Now().UTC()
}

// NewFromCreateRequest builds a mark for an already resolved student id.
func NewFromCreateRequest(studentID string, req CreateRequest) Mark {
	now := time.Now().UTC()

	m := Mark{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Subject:   req.Subject,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Internal1 != nil {
		m.Internal1 = *req.Internal1
	}
	if req.Internal2 != nil {
		m.Internal2 = *req.Internal2
	}
	if req.Assignment != nil {
		m.Assignment = *req.Assignment
	}
	m.Recalculate()

	return m
}

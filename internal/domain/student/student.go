package student

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("student not found")

type Student struct {
	ID                string    `json:"id"`
	ExternalID        string    `json:"externalId"`
	AccountID         *string   `json:"accountId,omitempty"`
	GuardianAccountID *string   `json:"guardianAccountId,omitempty"`
	Name              string    `json:"name"`
	Department        string    `json:"department"`
	Year              int       `json:"year"`
	Hostel            bool      `json:"hostel"`
	Attendance        int       `json:"attendance"`
	CGPA              float64   `json:"cgpa"`
	Photo             string    `json:"photo,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type ListFilter struct {
	Department *string
}

// UpdateRequest is a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Name              *string  `json:"name" binding:"omitempty,min=2,max=120"`
	Department        *string  `json:"department" binding:"omitempty,min=2,max=120"`
	Year              *int     `json:"year" binding:"omitempty,min=1,max=6"`
	Hostel            *bool    `json:"hostel"`
	Attendance        *int     `json:"attendance" binding:"omitempty,min=0,max=100"`
	CGPA              *float64 `json:"cgpa" binding:"omitempty,min=0,max=10"`
	Photo             *string  `json:"photo" binding:"omitempty,max=500"`
	GuardianAccountID *string  `json:"guardianAccountId" binding:"omitempty,uuid"`
}

func (s *Student) Apply(req UpdateRequest) {
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Department != nil {
		s.Department = *req.Department
	}
	if req.Year != nil {
		s.Year = *req.Year
	}
	if req.Hostel != nil {
		s.Hostel = *req.Hostel
	}
	if req.Attendance != nil {
		s.Attendance = *req.Attendance
	}
	if req.CGPA != nil {
		s.CGPA = *req.CGPA
	}
	if req.Photo != nil {
		s.Photo = *req.Photo
	}
	if req.GuardianAccountID != nil {
		id := *req.GuardianAccountID
		s.GuardianAccountID = &id
	}
	s.UpdatedAt = time.Now().UTC()
}

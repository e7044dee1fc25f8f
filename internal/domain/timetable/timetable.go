package timetable

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrNotFound   = errors.New("timetable row not found")
	ErrInvalidDay = errors.New("invalid day")
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	return r, r == RoleStudent || r == RoleTeacher
}

type Slot struct {
	Subject string `json:"subject" binding:"required,max=120"`
	Room    string `json:"room" binding:"omitempty,max=40"`
}

type Row struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Day       string    `json:"day"`
	Slots     []Slot    `json:"slots"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UpsertRequest struct {
	Slots []Slot `json:"slots" binding:"required,max=12,dive"`
}

// ParseDay accepts any casing of an English weekday name and returns the
// canonical form ("Monday").
func ParseDay(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == s {
			return d.String(), nil
		}
	}
	return "", ErrInvalidDay
}

// weekday index with Monday first
func dayIndex(day string) int {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == day {
			return (int(d) + 6) % 7
		}
	}
	return 7
}

// SortRows orders rows Monday..Sunday.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return dayIndex(rows[i].Day) < dayIndex(rows[j].Day)
	})
}

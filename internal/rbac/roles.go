package rbac

import "strings"

type Role string

const (
	Admin   Role = "ADMIN"
	Teacher Role = "TEACHER"
	Student Role = "STUDENT"
	Parent  Role = "PARENT"
	Club    Role = "CLUB"
)

var AllRoles = []Role{Admin, Teacher, Student, Parent, Club}

func (r Role) IsValid() bool {
	switch r {
	case Admin, Teacher, Student, Parent, Club:
		return true
	default:
		return false
	}
}

// ParseRole accepts any casing ("teacher", "TEACHER").
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	return r, r.IsValid()
}

// Staff roles may read any student's academic rows.
func (r Role) IsStaff() bool {
	return r == Admin || r == Teacher
}

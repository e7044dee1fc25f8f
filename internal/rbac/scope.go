package rbac

import "slices"

// Scope is the ownership predicate for one caller. Stores receive the
// filters it produces; handlers never build ownership conditions themselves.
type Scope struct {
	Role      Role
	AccountID string

	// StudentIDs are the student profiles the caller owns (STUDENT) or is
	// guardian of (PARENT). Ignored when Restricted is false.
	StudentIDs []string
	Restricted bool
}

// NewScope builds the scope for a verified caller. linkedStudents is only
// consulted for restricted roles.
func NewScope(role Role, accountID string, linkedStudents []string) Scope {
	if role.IsStaff() {
		return Scope{Role: role, AccountID: accountID}
	}
	return Scope{
		Role:       role,
		AccountID:  accountID,
		StudentIDs: slices.Clone(linkedStudents),
		Restricted: true,
	}
}

// Students returns the student ids a student-linked query must be limited
// to. A nil result with an unrestricted scope means "all students".
// A restricted caller never widens past its own set: a requested id that is
// not theirs is ignored.
func (s Scope) Students(requested string) []string {
	if !s.Restricted {
		if requested == "" {
			return nil
		}
		return []string{requested}
	}

	if requested != "" && slices.Contains(s.StudentIDs, requested) {
		return []string{requested}
	}

	out := slices.Clone(s.StudentIDs)
	if out == nil {
		out = []string{}
	}
	return out
}

func (s Scope) OwnsStudent(studentID string) bool {
	return !s.Restricted || slices.Contains(s.StudentIDs, studentID)
}

func (s Scope) OwnsAccount(accountID string) bool {
	return accountID != "" && accountID == s.AccountID
}

// HasProfile reports whether a restricted caller is linked to any student.
func (s Scope) HasProfile() bool {
	return !s.Restricted || len(s.StudentIDs) > 0
}

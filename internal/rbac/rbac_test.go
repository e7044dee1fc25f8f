package rbac

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyAuthorize(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name    string
		method  string
		route   string
		role    Role
		denied  bool
		wantErr error
	}{
		{"admin_writes_announcements", http.MethodPost, "/announcements", Admin, false, nil},
		{"any_role_reads_events", http.MethodGet, "/events", Parent, false, nil},
		{"club_creates_event", http.MethodPost, "/events", Club, false, nil},
		{"student_pays_fee", http.MethodPatch, "/fees/:id/pay", Student, false, nil},
		{"teacher_cannot_pay_fee", http.MethodPatch, "/fees/:id/pay", Teacher, true, nil},
		{"student_cannot_list_students", http.MethodGet, "/students", Student, true, nil},
		{"club_cannot_read_marks", http.MethodGet, "/marks", Club, true, nil},
		{"unknown_route", http.MethodGet, "/secrets", Admin, false, ErrNoRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Authorize(tt.method, tt.route, tt.role)

			switch {
			case tt.denied:
				var denied *DeniedError
				require.ErrorAs(t, err, &denied)
				assert.Equal(t, tt.role, denied.Role)
			case tt.wantErr != nil:
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestDeniedErrorMessageNamesRoles(t *testing.T) {
	err := DefaultPolicy().Authorize(http.MethodGet, "/students", Student)

	require.Error(t, err)
	assert.Equal(t, "Access denied. Required role: ADMIN or TEACHER. Your role: STUDENT", err.Error())
}

func TestAuthenticatedRuleRejectsUnknownRole(t *testing.T) {
	assert.False(t, Authenticated.Permits(Role("JANITOR")))
	assert.True(t, Authenticated.Permits(Club))
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" teacher ")
	assert.True(t, ok)
	assert.Equal(t, Teacher, r)

	_, ok = ParseRole("root")
	assert.False(t, ok)
}

func TestScopeStudents(t *testing.T) {
	tests := []struct {
		name      string
		scope     Scope
		requested string
		want      []string
	}{
		{"staff_all", NewScope(Teacher, "t1", nil), "", nil},
		{"staff_exact", NewScope(Admin, "a1", nil), "s9", []string{"s9"}},
		{"student_own", NewScope(Student, "u1", []string{"s1"}), "", []string{"s1"}},
		{"student_guess_ignored", NewScope(Student, "u1", []string{"s1"}), "s2", []string{"s1"}},
		{"parent_narrows_to_child", NewScope(Parent, "p1", []string{"s1", "s2"}), "s2", []string{"s2"}},
		{"parent_all_children", NewScope(Parent, "p1", []string{"s1", "s2"}), "", []string{"s1", "s2"}},
		{"club_nothing", NewScope(Club, "c1", nil), "s1", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scope.Students(tt.requested))
		})
	}
}

func TestScopeOwnership(t *testing.T) {
	s := NewScope(Student, "u1", []string{"s1"})

	assert.True(t, s.OwnsAccount("u1"))
	assert.False(t, s.OwnsAccount("u2"))
	assert.False(t, s.OwnsAccount(""))
	assert.True(t, s.OwnsStudent("s1"))
	assert.False(t, s.OwnsStudent("s2"))
	assert.True(t, s.HasProfile())

	assert.False(t, NewScope(Student, "u3", nil).HasProfile())
	assert.True(t, NewScope(Admin, "a", nil).OwnsStudent("anything"))
}

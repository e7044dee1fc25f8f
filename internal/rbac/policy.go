package rbac

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Rule is the allow-list for one route.
type Rule struct {
	AnyRole bool
	Roles   []Role
}

func Allow(roles ...Role) Rule {
	return Rule{Roles: roles}
}

// Authenticated admits every verified role.
var Authenticated = Rule{AnyRole: true}

func (r Rule) Permits(role Role) bool {
	if r.AnyRole {
		return role.IsValid()
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Policy maps "METHOD /route/pattern" to its rule. Patterns use gin's syntax.
type Policy map[string]Rule

func Key(method, route string) string {
	return method + " " + route
}

var ErrNoRule = errors.New("no authorization rule for route")

// DeniedError names what the route requires and what the caller has.
type DeniedError struct {
	Required []Role
	Role     Role
}

func (e *DeniedError) Error() string {
	names := make([]string, len(e.Required))
	for i, r := range e.Required {
		names[i] = string(r)
	}
	return fmt.Sprintf("Access denied. Required role: %s. Your role: %s", strings.Join(names, " or "), e.Role)
}

func (p Policy) Authorize(method, route string, role Role) error {
	rule, ok := p[Key(method, route)]
	if !ok {
		return ErrNoRule
	}
	if !rule.Permits(role) {
		return &DeniedError{Required: rule.Roles, Role: role}
	}
	return nil
}

// DefaultPolicy is the campus route table. Every authenticated route the
// router registers must appear here.
func DefaultPolicy() Policy {
	const (
		get   = http.MethodGet
		post  = http.MethodPost
		put   = http.MethodPut
		patch = http.MethodPatch
		del   = http.MethodDelete
	)

	staff := Allow(Admin, Teacher)
	academic := Allow(Admin, Teacher, Student, Parent)
	adminOnly := Allow(Admin)

	return Policy{
		Key(get, "/auth/me"):      Authenticated,
		Key(post, "/auth/logout"): Authenticated,

		Key(get, "/students"):     staff,
		Key(get, "/students/me"):  Allow(Student),
		Key(get, "/students/:id"): staff,
		Key(put, "/students/:id"): adminOnly,

		Key(get, "/teachers"):     Authenticated,
		Key(get, "/teachers/me"):  Allow(Teacher),
		Key(get, "/teachers/:id"): Authenticated,

		Key(get, "/marks"):     academic,
		Key(post, "/marks"):    staff,
		Key(put, "/marks/:id"): staff,

		Key(get, "/attendance"):       academic,
		Key(post, "/attendance"):      staff,
		Key(patch, "/attendance/:id"): staff,

		Key(get, "/fees"):           Allow(Student, Parent),
		Key(get, "/fees/all"):       adminOnly,
		Key(patch, "/fees/:id/pay"): Allow(Student),

		Key(get, "/events"):     Authenticated,
		Key(get, "/events/:id"): Authenticated,
		Key(post, "/events"):    Allow(Admin, Club),
		Key(put, "/events/:id"): Allow(Admin, Club),
		Key(del, "/events/:id"): adminOnly,

		Key(get, "/clubs"):     Authenticated,
		Key(get, "/clubs/:id"): Authenticated,
		Key(post, "/clubs"):    adminOnly,
		Key(put, "/clubs/:id"): adminOnly,
		Key(del, "/clubs/:id"): adminOnly,

		Key(get, "/announcements"):     Authenticated,
		Key(get, "/announcements/:id"): Authenticated,
		Key(post, "/announcements"):    adminOnly,
		Key(del, "/announcements/:id"): adminOnly,

		Key(get, "/requests"):       adminOnly,
		Key(get, "/requests/mine"):  Authenticated,
		Key(post, "/requests"):      Authenticated,
		Key(patch, "/requests/:id"): adminOnly,
		Key(del, "/requests/:id"):   adminOnly,

		Key(get, "/notifications"):            Authenticated,
		Key(patch, "/notifications/:id/read"): Authenticated,
		Key(patch, "/notifications/read-all"): Authenticated,

		Key(get, "/timetable"):            Authenticated,
		Key(get, "/timetable/:role"):      Authenticated,
		Key(put, "/timetable/:role/:day"): adminOnly,
	}
}

// Package apierror defines the error kinds the API exposes to clients and
// their HTTP status and wire code.
package apierror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	InvalidCredentials
	MissingToken
	InvalidToken
	ExpiredToken
	Unauthenticated
	Forbidden
	InvalidRequest
	NotFound
	Conflict
	RateLimited
	UnsupportedMedia
	RouteNotFound
	MethodNotAllowed
)

var kinds = map[Kind]struct {
	status int
	code   string
}{
	Internal:           {http.StatusInternalServerError, "internal_error"},
	InvalidCredentials: {http.StatusUnauthorized, "invalid_credentials"},
	MissingToken:       {http.StatusUnauthorized, "missing_token"},
	InvalidToken:       {http.StatusUnauthorized, "invalid_token"},
	ExpiredToken:       {http.StatusUnauthorized, "expired_token"},
	Unauthenticated:    {http.StatusUnauthorized, "unauthenticated"},
	Forbidden:          {http.StatusForbidden, "forbidden"},
	InvalidRequest:     {http.StatusBadRequest, "invalid_request"},
	NotFound:           {http.StatusNotFound, "not_found"},
	Conflict:           {http.StatusConflict, "invalid_transition"},
	RateLimited:        {http.StatusTooManyRequests, "rate_limited"},
	UnsupportedMedia:   {http.StatusUnsupportedMediaType, "unsupported_media_type"},
	RouteNotFound:      {http.StatusNotFound, "route_not_found"},
	MethodNotAllowed:   {http.StatusMethodNotAllowed, "method_not_allowed"},
}

func (k Kind) Status() int {
	if v, ok := kinds[k]; ok {
		return v.status
	}
	return http.StatusInternalServerError
}

func (k Kind) Code() string {
	if v, ok := kinds[k]; ok {
		return v.code
	}
	return "internal_error"
}

// Error carries a Kind plus the client-safe message. Err, when set, is the
// underlying cause and is never sent to the client.
type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.Code() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.Code() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return Internal
}

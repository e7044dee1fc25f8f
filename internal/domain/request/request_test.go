package request

import (
	"errors"
	"testing"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name     string
		from, to Status
		noop     bool
		wantErr  error
	}{
		{"approve_pending", StatusPending, StatusApproved, false, nil},
		{"reject_pending", StatusPending, StatusRejected, false, nil},
		{"approve_twice", StatusApproved, StatusApproved, true, nil},
		{"reject_twice", StatusRejected, StatusRejected, true, nil},
		{"pending_again", StatusPending, StatusPending, true, nil},
		{"approved_to_rejected", StatusApproved, StatusRejected, false, ErrInvalidTransition},
		{"rejected_to_approved", StatusRejected, StatusApproved, false, ErrInvalidTransition},
		{"back_to_pending", StatusApproved, StatusPending, false, ErrInvalidTransition},
		{"rejected_to_pending", StatusRejected, StatusPending, false, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noop, err := Transition(tt.from, tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected err %v, got %v", tt.wantErr, err)
			}
			if noop != tt.noop {
				t.Fatalf("expected noop=%v, got %v", tt.noop, noop)
			}
		})
	}
}

func TestNewFromCreateRequestDefaults(t *testing.T) {
	r := NewFromCreateRequest("acc-1", CreateRequest{Type: "Leave", FromName: "Arjun", Reason: "fever"})

	if r.Status != StatusPending {
		t.Fatalf("expected pending, got %s", r.Status)
	}
	if r.RequesterAccountID == nil || *r.RequesterAccountID != "acc-1" {
		t.Fatalf("expected requester acc-1, got %v", r.RequesterAccountID)
	}
	if len(r.Date) != len("2006-01-02") {
		t.Fatalf("expected a default date, got %q", r.Date)
	}
	if len(r.ExternalID) < 4 || r.ExternalID[:3] != "REQ" {
		t.Fatalf("expected REQ display id, got %q", r.ExternalID)
	}
}

package jobs

import "strings"

// ValidatePayload checks that payload is the struct t expects and that the
// fields the processor routes on are present.
func ValidatePayload(t JobType, payload any) error {
	switch t {
	case JobNotifyAccount:
		p, err := as[NotifyAccountPayload](payload)
		if err != nil {
			return err
		}
		return required(p.AccountID, p.Title)
	case JobNotifyStudent:
		p, err := as[NotifyStudentPayload](payload)
		if err != nil {
			return err
		}
		return required(p.StudentID, p.Title)
	case JobNotifyBroadcast:
		p, err := as[NotifyBroadcastPayload](payload)
		if err != nil {
			return err
		}
		return required(p.Title)
	default:
		return ErrInvalidJobType
	}
}

// as accepts both P and *P.
func as[P any](payload any) (P, error) {
	switch v := payload.(type) {
	case P:
		return v, nil
	case *P:
		if v != nil {
			return *v, nil
		}
	}
	var zero P
	return zero, ErrPayloadTypeMismatch
}

func required(fields ...string) error {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return ErrInvalidJobPayload
		}
	}
	return nil
}

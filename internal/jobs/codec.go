package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/job"
)

func EncodePayload(t JobType, payload any) ([]byte, error) {
	if !t.IsValid() {
		return nil, ErrInvalidJobType
	}

	switch t {
	case JobNotifyAccount:
		switch payload.(type) {
		case NotifyAccountPayload, *NotifyAccountPayload:
		default:
			return nil, ErrPayloadTypeMismatch
		}

	case JobNotifyBroadcast:
		switch payload.(type) {
		case NotifyBroadcastPayload, *NotifyBroadcastPayload:
		default:
			return nil, ErrPayloadTypeMismatch
		}

	case JobNotifyStudent:
		switch payload.(type) {
		case NotifyStudentPayload, *NotifyStudentPayload:
		default:
			return nil, ErrPayloadTypeMismatch
		}
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
	}

	return b, nil
}

// DecodePayload unmarshals job.Payload into the correct typed payload struct.
func DecodePayload(j job.Job) (any, error) {
	t := JobType(j.Type)
	if !t.IsValid() {
		return nil, ErrInvalidJobType
	}
	if len(j.Payload) == 0 {
		return nil, ErrInvalidJobPayload
	}

	var p any
	switch t {
	case JobNotifyAccount:
		p = &NotifyAccountPayload{}
	case JobNotifyBroadcast:
		p = &NotifyBroadcastPayload{}
	case JobNotifyStudent:
		p = &NotifyStudentPayload{}
	}

	if err := json.Unmarshal(j.Payload, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
	}

	switch v := p.(type) {
	case *NotifyAccountPayload:
		return *v, nil
	case *NotifyBroadcastPayload:
		return *v, nil
	case *NotifyStudentPayload:
		return *v, nil
	default:
		return nil, ErrInvalidJobType
	}
}

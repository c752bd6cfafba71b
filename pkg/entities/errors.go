package entities

import (
	"errors"
	"fmt"
)

// ErrMalformedNotification is matched by every *MalformedNotificationError.
var ErrMalformedNotification = errors.New("malformed notification")

// ServerError is the {"error": "..."} record the remote instance returns in
// place of any endpoint's normal payload.
type ServerError struct {
	Message string `json:"error"`
}

func (e *ServerError) Error() string {
	return "server error: " + e.Message
}

// DecodeError reports a buffer that could not be parsed into Target.
type DecodeError struct {
	Target string
	Field  string
	Err    error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("decode %s: field %q: %v", e.Target, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("decode %s: field %q", e.Target, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("decode %s: %v", e.Target, e.Err)
	default:
		return fmt.Sprintf("decode %s", e.Target)
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MalformedNotificationError is returned when a notification's type requires a
// field (status or account) that the record does not carry.
type MalformedNotificationError struct {
	ID      NotificationID
	Type    string
	Missing string
}

func (e *MalformedNotificationError) Error() string {
	return fmt.Sprintf("malformed %s notification %s: missing %s", e.Type, e.ID, e.Missing)
}

func (e *MalformedNotificationError) Is(target error) bool {
	return target == ErrMalformedNotification
}

package entities

import (
	"bytes"
	"fmt"
	"strconv"
)

// StatusID identifies a status on the remote instance.
type StatusID uint64

// UserID identifies an account on the remote instance.
type UserID uint64

// NotificationID identifies a notification on the remote instance.
type NotificationID uint64

func (id StatusID) String() string       { return strconv.FormatUint(uint64(id), 10) }
func (id UserID) String() string         { return strconv.FormatUint(uint64(id), 10) }
func (id NotificationID) String() string { return strconv.FormatUint(uint64(id), 10) }

// ParseStatusID parses the decimal form of a status id.
func ParseStatusID(s string) (StatusID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return StatusID(v), err
}

// ParseUserID parses the decimal form of an account id.
func ParseUserID(s string) (UserID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return UserID(v), err
}

// ParseNotificationID parses the decimal form of a notification id.
func ParseNotificationID(s string) (NotificationID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return NotificationID(v), err
}

// Ids are written as decimal strings, the form current instances emit. Older
// instances send bare numbers, so both forms are accepted on decode.
func (id StatusID) MarshalJSON() ([]byte, error)       { return marshalID(uint64(id)) }
func (id UserID) MarshalJSON() ([]byte, error)         { return marshalID(uint64(id)) }
func (id NotificationID) MarshalJSON() ([]byte, error) { return marshalID(uint64(id)) }

func (id *StatusID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalID("StatusID", data)
	if err != nil {
		return err
	}
	*id = StatusID(v)
	return nil
}

func (id *UserID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalID("UserID", data)
	if err != nil {
		return err
	}
	*id = UserID(v)
	return nil
}

func (id *NotificationID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalID("NotificationID", data)
	if err != nil {
		return err
	}
	*id = NotificationID(v)
	return nil
}

func marshalID(v uint64) ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatUint(v, 10))), nil
}

func unmarshalID(target string, data []byte) (uint64, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0, &DecodeError{Target: target, Err: fmt.Errorf("empty id token")}
	}

	digits := string(data)
	if data[0] == '"' {
		var s string
		if err := codec.Unmarshal(data, &s); err != nil {
			return 0, &DecodeError{Target: target, Err: err}
		}
		digits = s
	}

	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, &DecodeError{Target: target, Err: fmt.Errorf("invalid id %s", data)}
	}
	return v, nil
}

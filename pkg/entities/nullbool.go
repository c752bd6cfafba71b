package entities

import (
	"bytes"
	"fmt"
)

// CoalesceBool decodes a JSON token for a boolean field that some instances
// send as null. null reads as false; anything other than true, false or null
// is a *DecodeError.
func CoalesceBool(raw []byte) (bool, error) {
	switch string(bytes.TrimSpace(raw)) {
	case "true":
		return true, nil
	case "false", "null":
		return false, nil
	default:
		return false, &DecodeError{Target: "bool", Err: fmt.Errorf("expected true, false or null, got %s", snippet(raw))}
	}
}

// NullBool is a bool that decodes JSON null as false.
type NullBool bool

// UnmarshalJSON accepts true, false or null.
func (b *NullBool) UnmarshalJSON(data []byte) error {
	v, err := CoalesceBool(data)
	if err != nil {
		return err
	}
	*b = NullBool(v)
	return nil
}

func snippet(raw []byte) string {
	const maxLen = 64
	s := string(bytes.TrimSpace(raw))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

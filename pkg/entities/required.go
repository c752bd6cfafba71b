package entities

import (
	"bytes"
	"encoding/json"
	"errors"
)

// requireFields checks that data is a JSON object carrying every key in fields
// with a non-null value. encoding/json leaves missing keys at their zero value,
// which would let unrelated objects decode as any record.
func requireFields(target string, data []byte, fields ...string) error {
	var obj map[string]json.RawMessage
	if err := codec.Unmarshal(data, &obj); err != nil {
		return &DecodeError{Target: target, Err: err}
	}
	if obj == nil {
		return &DecodeError{Target: target, Err: errNotObject}
	}
	for _, f := range fields {
		raw, ok := obj[f]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return &DecodeError{Target: target, Field: f, Err: errMissingField}
		}
	}
	return nil
}

var (
	errMissingField = errors.New("missing required field")
	errNotObject    = errors.New("expected a JSON object")
)

// Package decode turns raw API response bodies into typed values. The remote
// instance does not reliably report failures through the HTTP status, so the
// body alone decides whether a call failed.
package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/bytedance/sonic"

	"github.com/samvad-hq/mastodon-relay/pkg/entities"
)

// codec is std-compatible so the Unmarshalers in entities behave the same as
// under encoding/json.
var codec = sonic.ConfigStd

var (
	errEmptyBody   = errors.New("empty response body")
	errInvalidJSON = errors.New("response body is not a single JSON value")
	errNotArray    = errors.New("response body is not a JSON array")
)

// Response decodes body as T. The body must hold exactly one JSON value;
// anything after it fails the whole response. A body shaped like
// {"error": "..."} is returned as *entities.ServerError without attempting T.
// Otherwise a failed parse is returned as *entities.DecodeError carrying the
// T diagnostic.
func Response[T any](body []byte) (T, error) {
	var zero T

	trimmed, err := single(body)
	if err != nil {
		return zero, &entities.DecodeError{Target: targetName[T](), Err: err}
	}
	if serverErr, ok := asServerError(trimmed); ok {
		return zero, serverErr
	}

	var v T
	if err := codec.Unmarshal(trimmed, &v); err != nil {
		return zero, &entities.DecodeError{Target: targetName[T](), Err: err}
	}
	return v, nil
}

// Sequence decodes body as a JSON array of T, preserving order. A null or
// any other non-array body is a *entities.DecodeError.
func Sequence[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] != '[' && trimmed[0] != '{' {
		return nil, &entities.DecodeError{Target: targetName[[]T](), Err: errNotArray}
	}
	return Response[[]T](body)
}

// single trims body and checks that it is one well-formed JSON value.
func single(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errEmptyBody
	}
	if !codec.Valid(trimmed) {
		return nil, errInvalidJSON
	}
	return trimmed, nil
}

// asServerError reports whether the trimmed body is an object whose "error"
// key holds a string. Extra keys such as error_description are tolerated.
func asServerError(body []byte) (*entities.ServerError, bool) {
	if body[0] != '{' {
		return nil, false
	}

	var fields map[string]json.RawMessage
	if err := codec.Unmarshal(body, &fields); err != nil {
		return nil, false
	}
	raw, ok := fields["error"]
	if !ok {
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return nil, false
	}

	var msg string
	if err := codec.Unmarshal(raw, &msg); err != nil {
		return nil, false
	}
	return &entities.ServerError{Message: msg}, true
}

func targetName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Slice {
		return fmt.Sprintf("sequence<%s>", t.Elem().Name())
	}
	return t.Name()
}

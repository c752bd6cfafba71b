package mastodon

import "fmt"

// TransportError reports a call that did not complete (DNS, TLS, connection,
// timeout). The response body, if any, is never parsed.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RequestError reports a request body rejected before it was sent. Field is
// the JSON name of the offending field.
type RequestError struct {
	Path  string
	Field string
	Err   error
}

func (e *RequestError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid request for %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid request for %s: field %s: %v", e.Path, e.Field, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

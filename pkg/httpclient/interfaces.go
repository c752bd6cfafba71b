package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Request describes one outbound call. Body, when non-nil, is sent as JSON.
type Request struct {
	Method      string
	URL         string
	Headers     map[string]string
	BearerToken string
	Body        any
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}

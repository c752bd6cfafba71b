// Package mastodon is an authenticated client for the Mastodon REST API.
// Every response body goes through package decode, so a call yields either the
// requested value or one of *entities.ServerError, *entities.DecodeError,
// *entities.MalformedNotificationError or *TransportError.
package mastodon

import (
	"context"
	"net/http"
	"time"

	"github.com/samvad-hq/mastodon-relay/pkg/decode"
	"github.com/samvad-hq/mastodon-relay/pkg/httpclient"
)

// Session issues calls against one instance with one token. It holds no
// mutable state and is safe for concurrent use.
type Session struct {
	cfg     Config
	baseURL string
	client  httpclient.Client
	log     Logger
}

// Option customizes a Session.
type Option func(*Session)

// WithHTTPClient replaces the default resty-backed transport.
func WithHTTPClient(c httpclient.Client) Option {
	return func(s *Session) {
		if c != nil {
			s.client = c
		}
	}
}

// WithLogger attaches a logger for per-call diagnostics.
func WithLogger(l Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// New validates cfg and builds a Session.
func New(cfg Config, opts ...Option) (*Session, error) {
	cfg, err := cfg.normalized()
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:     cfg,
		baseURL: cfg.baseURL(),
		log:     noopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = httpclient.NewRestyClient(cfg.Timeout)
	}
	return s, nil
}

// Domain returns the instance this session talks to.
func (s *Session) Domain() string { return s.cfg.Domain }

// Issue performs one authenticated call and returns the raw body. A body is
// returned for every completed exchange whatever its HTTP status; only calls
// that did not complete fail, with *TransportError.
func (s *Session) Issue(ctx context.Context, method, path string, body any) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	headers := map[string]string{"Accept": "application/json"}
	if s.cfg.UserAgent != "" {
		headers["User-Agent"] = s.cfg.UserAgent
	}

	start := time.Now()
	resp, err := s.client.Do(ctx, httpclient.Request{
		Method:      method,
		URL:         s.baseURL + path,
		Headers:     headers,
		BearerToken: s.cfg.Token,
		Body:        body,
	})
	if err != nil {
		s.log.WarnObj("mastodon call failed", "mastodon_call", map[string]any{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		})
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	raw := resp.Body()
	s.log.DebugObj("mastodon call completed", "mastodon_call", map[string]any{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode(),
		"bytes":      len(raw),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return raw, nil
}

func get[T any](ctx context.Context, s *Session, path string) (T, error) {
	body, err := s.Issue(ctx, http.MethodGet, path, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode.Response[T](body)
}

func getSequence[T any](ctx context.Context, s *Session, path string) ([]T, error) {
	body, err := s.Issue(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decode.Sequence[T](body)
}

func post[T any](ctx context.Context, s *Session, path string, payload any) (T, error) {
	body, err := s.Issue(ctx, http.MethodPost, path, payload)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode.Response[T](body)
}

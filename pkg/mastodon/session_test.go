package mastodon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/mastodon-relay/pkg/entities"
	"github.com/samvad-hq/mastodon-relay/pkg/httpclient"
)

const testToken = "secret-token"

func account(id int) string {
	return fmt.Sprintf(`{"id":"%d","username":"u%d","acct":"u%d","followers_count":0,"following_count":0,"statuses_count":0}`, id, id, id)
}

func status(id int) string {
	return fmt.Sprintf(`{"id":"%d","account":%s,"content":"<p>s%d</p>","created_at":"2017-04-08T12:00:00Z",
		"visibility":"public","reblogs_count":0,"favourites_count":0,"reblogged":null,"favourited":null}`, id, account(1), id)
}

func list(items ...string) string { return "[" + strings.Join(items, ",") + "]" }

func newTestSession(t *testing.T, routes map[string]string) *Session {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer "+testToken {
			t.Errorf("unexpected authorization header %q", got)
		}
		body, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Record not found"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	s, err := New(Config{Domain: srv.URL, Token: testToken, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return s
}

func TestEndpoints(t *testing.T) {
	s := newTestSession(t, map[string]string{
		"GET /api/v1/statuses/5":               status(5),
		"GET /api/v1/statuses/5/context":       `{"ancestors":[` + status(4) + `],"descendants":[]}`,
		"GET /api/v1/statuses/5/card":          `{}`,
		"GET /api/v1/statuses/5/reblogged_by":  list(account(2), account(3)),
		"GET /api/v1/statuses/5/favourited_by": list(account(4)),
		"GET /api/v1/accounts/1":               account(1),
		"GET /api/v1/accounts/1/statuses":      list(status(5), status(6)),
		"GET /api/v1/accounts/1/following":     list(),
		"GET /api/v1/accounts/1/followers":     list(account(9)),
		"GET /api/v1/timelines/home":           list(status(7)),
		"GET /api/v1/timelines/public":         list(status(8), status(9), status(10)),
		"GET /api/v1/timelines/mentions":       list(),
		"GET /api/v1/instance":                 `{"uri":"example.social","title":"Example","description":"","email":"admin@example.social"}`,
	})
	ctx := context.Background()

	st, err := s.Status(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusID(5), st.ID)

	thread, err := s.StatusContext(ctx, 5)
	require.NoError(t, err)
	require.Len(t, thread.Ancestors, 1)
	assert.Equal(t, entities.StatusID(4), thread.Ancestors[0].ID)

	card, err := s.StatusCard(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, entities.Card{}, card)

	boosters, err := s.RebloggedBy(ctx, 5)
	require.NoError(t, err)
	require.Len(t, boosters, 2)
	assert.Equal(t, entities.UserID(2), boosters[0].ID)
	assert.Equal(t, entities.UserID(3), boosters[1].ID)

	favs, err := s.FavouritedBy(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, favs, 1)

	acct, err := s.Account(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "u1", acct.Username)

	posts, err := s.AccountStatuses(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	following, err := s.Following(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, following)

	followers, err := s.Followers(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, followers, 1)

	home, err := s.HomeTimeline(ctx)
	require.NoError(t, err)
	assert.Len(t, home, 1)

	public, err := s.PublicTimeline(ctx)
	require.NoError(t, err)
	require.Len(t, public, 3)
	assert.Equal(t, entities.StatusID(10), public[2].ID)

	mentions, err := s.Mentions(ctx)
	require.NoError(t, err)
	assert.Empty(t, mentions)

	inst, err := s.Instance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Example", inst.Title)
}

func TestServerErrorSurfacesRegardlessOfStatusCode(t *testing.T) {
	s := newTestSession(t, map[string]string{
		"GET /api/v1/timelines/home": `{"error":"This method requires an authenticated user"}`,
	})

	_, err := s.Status(context.Background(), 404)
	var serverErr *entities.ServerError
	require.True(t, errors.As(err, &serverErr), "got %v", err)
	assert.Equal(t, "Record not found", serverErr.Message)

	_, err = s.HomeTimeline(context.Background())
	require.True(t, errors.As(err, &serverErr), "got %v", err)
	assert.Equal(t, "This method requires an authenticated user", serverErr.Message)
}

func TestNotifications(t *testing.T) {
	mention := `{"type":"mention","id":"1","created_at":"2017-04-09T08:00:00Z","account":` + account(2) + `,"status":` + status(3) + `}`
	reblog := `{"type":"reblog","id":"2","created_at":"2017-04-09T08:00:00Z","account":` + account(2) + `,"status":` + status(3) + `}`
	other := `{"type":"poll","id":"3","created_at":"2017-04-09T08:00:00Z","account":` + account(2) + `}`
	broken := `{"type":"favourite","id":"4","created_at":"2017-04-09T08:00:00Z","account":` + account(2) + `}`

	s := newTestSession(t, map[string]string{
		"GET /api/v1/notifications":   list(mention, reblog, other),
		"GET /api/v1/notifications/4": broken,
	})

	ns, err := s.Notifications(context.Background())
	require.NoError(t, err)
	require.Len(t, ns, 3)
	assert.IsType(t, entities.MentionNotification{}, ns[0])
	assert.IsType(t, entities.ReblogNotification{}, ns[1])
	assert.IsType(t, entities.UnknownNotification{}, ns[2])

	_, err = s.Notification(context.Background(), 4)
	assert.ErrorIs(t, err, entities.ErrMalformedNotification)
}

func TestPostStatus(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/statuses" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		_, _ = w.Write([]byte(status(42)))
	}))
	defer srv.Close()

	s, err := New(Config{Domain: srv.URL, Token: testToken})
	require.NoError(t, err)

	reply := entities.StatusID(7)
	st, err := s.PostStatus(context.Background(), NewStatus{Status: "hello", InReplyToID: &reply})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusID(42), st.ID)
	assert.Equal(t, "hello", got["status"])
	assert.Equal(t, "7", got["in_reply_to_id"])
	assert.Equal(t, "public", got["visibility"])
	assert.Equal(t, false, got["sensitive"])
	_, hasSpoiler := got["spoiler_text"]
	assert.False(t, hasSpoiler)
}

func TestPostStatusValidation(t *testing.T) {
	s, err := New(Config{Domain: "example.invalid", Token: testToken}, WithHTTPClient(failingClient{t: t}))
	require.NoError(t, err)

	cases := map[string]struct {
		req   NewStatus
		field string
	}{
		"empty status":       {req: NewStatus{}, field: "status"},
		"unknown visibility": {req: NewStatus{Status: "x", Visibility: "followers"}, field: "visibility"},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			_, err := s.PostStatus(context.Background(), c.req)

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr), "got %T: %v", err, err)
			assert.Equal(t, "/api/v1/statuses", reqErr.Path)
			assert.Equal(t, c.field, reqErr.Field)
			assert.Contains(t, err.Error(), c.field)

			var fieldErrs validator.ValidationErrors
			assert.True(t, errors.As(err, &fieldErrs))

			var transportErr *TransportError
			assert.False(t, errors.As(err, &transportErr))
		})
	}
}

type failingClient struct {
	t   *testing.T
	err error
}

func (f failingClient) Do(context.Context, httpclient.Request) (httpclient.Response, error) {
	if f.err == nil {
		f.t.Fatalf("transport must not be called")
	}
	return nil, f.err
}

func TestTransportErrorPassesThrough(t *testing.T) {
	cause := errors.New("tls handshake failure")
	s, err := New(Config{Token: testToken}, WithHTTPClient(failingClient{t: t, err: cause}))
	require.NoError(t, err)

	_, err = s.Account(context.Background(), 1)
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr), "got %v", err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "/api/v1/accounts/1", transportErr.Path)

	var decodeErr *entities.DecodeError
	assert.False(t, errors.As(err, &decodeErr))
}

type deadlineClient struct{}

func (deadlineClient) Do(ctx context.Context, _ httpclient.Request) (httpclient.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestIssueAppliesTimeout(t *testing.T) {
	s, err := New(Config{Token: testToken, Timeout: 20 * time.Millisecond}, WithHTTPClient(deadlineClient{}))
	require.NoError(t, err)

	_, err = s.Issue(context.Background(), http.MethodGet, "/api/v1/timelines/home", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("TEST_MASTODON_TOKEN", " abc ")
	cfg, err := FromEnv("TEST_MASTODON_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.Token)
	assert.Equal(t, DefaultDomain, cfg.Domain)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)

	_, err = FromEnv("TEST_MASTODON_TOKEN_UNSET")
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, "TEST_MASTODON_TOKEN_UNSET", cfgErr.Field)
}

func TestNewRejectsMissingToken(t *testing.T) {
	_, err := New(Config{Domain: "example.social"})
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestBaseURL(t *testing.T) {
	s, err := New(Config{Token: testToken})
	require.NoError(t, err)
	assert.Equal(t, "https://mastodon.social", s.baseURL)

	s, err = New(Config{Domain: "http://127.0.0.1:3000/", Token: testToken})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:3000", s.baseURL)
}

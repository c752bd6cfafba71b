package entities

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalesceBool(t *testing.T) {
	cases := map[string]struct {
		in   string
		out  bool
		fail bool
	}{
		"true":   {in: "true", out: true},
		"false":  {in: "false", out: false},
		"null":   {in: "null", out: false},
		"padded": {in: "  true ", out: true},
		"string": {in: `"x"`, fail: true},
		"number": {in: "1", fail: true},
		"object": {in: "{}", fail: true},
		"array":  {in: "[]", fail: true},
		"empty":  {in: "", fail: true},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			got, err := CoalesceBool([]byte(c.in))
			if c.fail {
				var decErr *DecodeError
				assert.True(t, errors.As(err, &decErr), "expected DecodeError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.out, got)
		})
	}
}

func TestStatusNullBoolFields(t *testing.T) {
	var s Status
	require.NoError(t, json.Unmarshal([]byte(statusJSON), &s))
	assert.False(t, s.Reblogged)
	assert.True(t, s.Favourited)
}

func TestStatusRejectsNonBooleanReblogged(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(statusJSON), &raw))
	raw["reblogged"] = "x"
	data, err := json.Marshal(raw)
	require.NoError(t, err)

	var s Status
	err = json.Unmarshal(data, &s)
	var decErr *DecodeError
	assert.True(t, errors.As(err, &decErr))
}

func TestStatusDecodesAllFields(t *testing.T) {
	var s Status
	require.NoError(t, json.Unmarshal([]byte(statusJSON), &s))

	assert.Equal(t, StatusID(1001), s.ID)
	assert.Equal(t, UserID(23), s.Account.ID)
	assert.Equal(t, "alice", s.Account.Username)
	assert.Nil(t, s.InReplyToID)
	require.NotNil(t, s.InReplyToAccountID)
	assert.Equal(t, UserID(7), *s.InReplyToAccountID)
	assert.Nil(t, s.Reblog)
	assert.Equal(t, time.Date(2017, 4, 8, 12, 30, 0, 0, time.UTC), s.CreatedAt.UTC())
	assert.Equal(t, uint64(3), s.ReblogsCount)
	assert.Equal(t, uint64(5), s.FavouritesCount)
	assert.Equal(t, VisibilityPublic, s.Visibility)
	require.Len(t, s.MediaAttachments, 1)
	assert.Equal(t, MediaImage, s.MediaAttachments[0].Kind)
	assert.Equal(t, "https://files/1s.png", s.MediaAttachments[0].PreviewURL)
	require.Len(t, s.Mentions, 1)
	assert.Equal(t, "bob", s.Mentions[0].Acct)
	require.Len(t, s.Tags, 1)
	assert.Equal(t, "#go", s.Tags[0].String())
	require.NotNil(t, s.Application)
	assert.Equal(t, "Web", s.Application.Name)
	assert.Nil(t, s.Application.Website)
	assert.Same(t, &s, s.Original())
}

func TestStatusReblogIsOriginal(t *testing.T) {
	data := `{"id":"5","account":` + accountJSON + `,"content":"","created_at":"2017-04-08T12:30:00Z",
		"visibility":"public","reblogs_count":0,"favourites_count":0,"reblog":` + statusJSON + `}`

	var s Status
	require.NoError(t, json.Unmarshal([]byte(data), &s))
	require.NotNil(t, s.Reblog)
	assert.Equal(t, StatusID(1001), s.Original().ID)
	assert.Nil(t, s.Reblog.Reblog)
}

func TestStatusRequiredFields(t *testing.T) {
	cases := map[string]struct {
		body  string
		field string
	}{
		"unrelated object": {body: `{"foo":123}`, field: "id"},
		"null content": {
			body:  `{"id":"1","account":` + accountJSON + `,"content":null}`,
			field: "content",
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			var s Status
			err := json.Unmarshal([]byte(c.body), &s)
			var decErr *DecodeError
			require.True(t, errors.As(err, &decErr), "got %v", err)
			assert.Equal(t, c.field, decErr.Field)
		})
	}
}

func TestClosedEnumsRejectUnknownValues(t *testing.T) {
	var v Visibility
	assert.Error(t, json.Unmarshal([]byte(`"followers"`), &v))
	require.NoError(t, json.Unmarshal([]byte(`"direct"`), &v))
	assert.Equal(t, VisibilityDirect, v)

	var m MediaAttachment
	assert.Error(t, json.Unmarshal([]byte(`{"type":"audio","url":"u","preview_url":"p"}`), &m))
	require.NoError(t, json.Unmarshal([]byte(`{"type":"gifv","url":"u","preview_url":"p"}`), &m))
	assert.Equal(t, MediaGifV, m.Kind)
}

func TestIdentifiers(t *testing.T) {
	cases := map[string]struct {
		in   string
		out  StatusID
		fail bool
	}{
		"string": {in: `"109"`, out: 109},
		"number": {in: `109`, out: 109},
		"signed": {in: `"-1"`, fail: true},
		"alpha":  {in: `"abc"`, fail: true},
		"null":   {in: `null`, fail: true},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			var id StatusID
			err := json.Unmarshal([]byte(c.in), &id)
			if c.fail {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.out, id)
			assert.Equal(t, "109", id.String())
		})
	}

	parsed, err := ParseUserID("42")
	require.NoError(t, err)
	assert.Equal(t, UserID(42), parsed)
	_, err = ParseNotificationID("x")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	var status Status
	require.NoError(t, json.Unmarshal([]byte(statusJSON), &status))
	reblog := status
	reblog.ID = 2002
	reblog.Reblog = &status

	website := "https://example.app"
	values := []any{
		&status,
		&reblog,
		&status.Account,
		&Tag{Name: "go", URL: "https://example.social/tags/go"},
		&Mention{ID: 7, URL: "u", Username: "bob", Acct: "bob"},
		&Application{Name: "app", Website: &website},
		&MediaAttachment{Kind: MediaVideo, URL: "u", PreviewURL: "p"},
		&Instance{URI: "example.social", Title: "Example", Description: "d", Email: "e"},
		&Card{URL: "u", Title: "t"},
		&Context{Ancestors: []Status{status}, Descendants: []Status{}},
		&ServerError{Message: "Record not found"},
	}
	for _, v := range values {
		data, err := json.Marshal(v)
		require.NoError(t, err)

		out := newLike(v)
		require.NoError(t, json.Unmarshal(data, out), "%T", v)
		assert.Equal(t, v, out)
	}
}

func newLike(v any) any {
	switch v.(type) {
	case *Status:
		return new(Status)
	case *Account:
		return new(Account)
	case *Tag:
		return new(Tag)
	case *Mention:
		return new(Mention)
	case *Application:
		return new(Application)
	case *MediaAttachment:
		return new(MediaAttachment)
	case *Instance:
		return new(Instance)
	case *Card:
		return new(Card)
	case *Context:
		return new(Context)
	case *ServerError:
		return new(ServerError)
	}
	panic("unhandled type")
}

func TestDecodeIsIdempotent(t *testing.T) {
	var a, b Status
	require.NoError(t, json.Unmarshal([]byte(statusJSON), &a))
	require.NoError(t, json.Unmarshal([]byte(statusJSON), &b))
	assert.Equal(t, a, b)
}

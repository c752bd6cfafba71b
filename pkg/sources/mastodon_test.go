package sources

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/mastodon-relay/internal/domain"
	"github.com/samvad-hq/mastodon-relay/pkg/entities"
)

type fakeAPI struct {
	notifications []entities.Notification
	statuses      []entities.Status
	err           error
	calls         []string
	accountID     entities.UserID
}

func (f *fakeAPI) Notifications(context.Context) ([]entities.Notification, error) {
	f.calls = append(f.calls, TypeNotifications)
	return f.notifications, f.err
}

func (f *fakeAPI) HomeTimeline(context.Context) ([]entities.Status, error) {
	f.calls = append(f.calls, TypeHome)
	return f.statuses, f.err
}

func (f *fakeAPI) PublicTimeline(context.Context) ([]entities.Status, error) {
	f.calls = append(f.calls, TypePublic)
	return f.statuses, f.err
}

func (f *fakeAPI) Mentions(context.Context) ([]entities.Status, error) {
	f.calls = append(f.calls, TypeMentions)
	return f.statuses, f.err
}

func (f *fakeAPI) AccountStatuses(_ context.Context, id entities.UserID) ([]entities.Status, error) {
	f.calls = append(f.calls, TypeAccountStatuses)
	f.accountID = id
	return f.statuses, f.err
}

var created = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func status(id entities.StatusID) entities.Status {
	return entities.Status{
		ID:         id,
		Account:    entities.Account{ID: 7, Username: "alice", Acct: "alice"},
		Content:    "<p>hello</p>",
		CreatedAt:  created,
		Visibility: entities.VisibilityPublic,
	}
}

func header(id entities.NotificationID) entities.NotificationHeader {
	return entities.NotificationHeader{ID: id, CreatedAt: created}
}

func TestDefaultFetcherRegistryResolvesEveryType(t *testing.T) {
	api := &fakeAPI{statuses: []entities.Status{status(1)}}
	reg := DefaultFetcherRegistry(api)

	for _, typ := range []string{TypeNotifications, TypeHome, TypePublic, TypeMentions, TypeAccountStatuses} {
		f, err := reg.FetcherFor(Source{ID: "src-" + typ, Type: typ})
		require.NoError(t, err, typ)
		assert.Equal(t, typ, f.Type())
	}

	_, err := reg.FetcherFor(Source{ID: "x", Type: "trends"})
	assert.Error(t, err)
	_, err = reg.FetcherFor(Source{Type: TypeHome})
	assert.Error(t, err)
}

func TestFetcherRegistryPrefersIDOverride(t *testing.T) {
	api := &fakeAPI{}
	override := NewTimelineFetcher(TypeHome, api.PublicTimeline)
	reg := NewFetcherRegistry([]Fetcher{NewTimelineFetcher(TypeHome, api.HomeTimeline)}, map[string]Fetcher{"Special": override})

	f, err := reg.FetcherFor(Source{ID: "special", Type: TypeHome})
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), Source{ID: "special", Type: TypeHome})
	require.NoError(t, err)
	assert.Equal(t, []string{TypePublic}, api.calls)
}

func TestTimelineFetchers(t *testing.T) {
	reblog := status(3)
	inner := status(2)
	reblog.Reblog = &inner
	api := &fakeAPI{statuses: []entities.Status{status(1), reblog}}
	reg := DefaultFetcherRegistry(api)

	cases := map[string]struct {
		src  Source
		keys []string
	}{
		"home": {
			src:  Source{ID: "h", Type: TypeHome},
			keys: []string{"status:1", "status:3"},
		},
		"public without reblogs": {
			src:  Source{ID: "p", Type: TypePublic, Config: map[string]any{ConfigExcludeReblogsKey: true}},
			keys: []string{"status:1"},
		},
		"mentions": {
			src:  Source{ID: "m", Type: TypeMentions},
			keys: []string{"status:1", "status:3"},
		},
		"account statuses": {
			src:  Source{ID: "a", Type: TypeAccountStatuses, AccountID: "42"},
			keys: []string{"status:1", "status:3"},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			f, err := reg.FetcherFor(c.src)
			require.NoError(t, err)
			items, err := f.Fetch(context.Background(), c.src)
			require.NoError(t, err)
			assert.Equal(t, c.keys, keys(items))
			for _, it := range items {
				assert.Equal(t, domain.KindStatus, it.Kind)
			}
		})
	}
	assert.Equal(t, entities.UserID(42), api.accountID)
}

func TestNotificationsFetcherFiltersTypes(t *testing.T) {
	acct := entities.Account{ID: 9, Username: "bob", Acct: "bob@example.org"}
	api := &fakeAPI{notifications: []entities.Notification{
		entities.MentionNotification{NotificationHeader: header(1), Account: acct},
		entities.FollowNotification{NotificationHeader: header(2), Account: acct},
		entities.FavouriteNotification{NotificationHeader: header(3), Account: acct, Status: status(5)},
		entities.UnknownNotification{NotificationHeader: header(4)},
	}}
	f := NewNotificationsFetcher(api)

	items, err := f.Fetch(context.Background(), Source{ID: "n", Type: TypeNotifications})
	require.NoError(t, err)
	assert.Equal(t, []string{"notification:1", "notification:2", "notification:3", "notification:4"}, keys(items))

	items, err = f.Fetch(context.Background(), Source{ID: "n", Type: TypeNotifications, Config: map[string]any{
		ConfigNotificationTypesKey: []any{"Favourite", "mention"},
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"notification:1", "notification:3"}, keys(items))
}

func TestFetchersPropagateErrors(t *testing.T) {
	boom := errors.New("boom")
	api := &fakeAPI{err: boom}

	_, err := NewNotificationsFetcher(api).Fetch(context.Background(), Source{ID: "n", Type: TypeNotifications})
	assert.ErrorIs(t, err, boom)

	_, err = NewTimelineFetcher(TypeHome, api.HomeTimeline).Fetch(context.Background(), Source{ID: "h", Type: TypeHome})
	assert.ErrorIs(t, err, boom)

	_, err = NewAccountStatusesFetcher(api).Fetch(context.Background(), Source{ID: "a", Type: TypeAccountStatuses, AccountID: "x"})
	assert.Error(t, err)
}

func TestFetcherRejectsIncompatibleType(t *testing.T) {
	_, err := NewNotificationsFetcher(&fakeAPI{}).Fetch(context.Background(), Source{ID: "h", Type: TypeHome})
	assert.Error(t, err)
}

func keys(items []domain.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Key)
	}
	return out
}

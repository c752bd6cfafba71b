package sources

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/samvad-hq/mastodon-relay/internal/domain"
	"github.com/samvad-hq/mastodon-relay/pkg/entities"
)

type notificationsFetcher struct {
	api API
}

// NewNotificationsFetcher relays normalized notifications. The "types" config
// key narrows which notification types are kept.
func NewNotificationsFetcher(api API) Fetcher {
	return &notificationsFetcher{api: api}
}

func (f *notificationsFetcher) Type() string { return TypeNotifications }

func (f *notificationsFetcher) Fetch(ctx context.Context, src Source) ([]domain.Item, error) {
	if err := checkType(f, src); err != nil {
		return nil, err
	}
	notifications, err := f.api.Notifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s notifications: %w", src.ID, err)
	}

	allowed := ConfigStrings(src, ConfigNotificationTypesKey)
	items := make([]domain.Item, 0, len(notifications))
	for _, n := range notifications {
		if len(allowed) > 0 && !slices.Contains(allowed, n.Type()) {
			continue
		}
		items = append(items, domain.NotificationItem(n))
	}
	return items, nil
}

// TimelineFunc is one of the Session's parameterless status timelines.
type TimelineFunc func(ctx context.Context) ([]entities.Status, error)

type timelineFetcher struct {
	typ  string
	list TimelineFunc
}

// NewTimelineFetcher relays the statuses returned by list under source type typ.
func NewTimelineFetcher(typ string, list TimelineFunc) Fetcher {
	return &timelineFetcher{typ: typ, list: list}
}

func (f *timelineFetcher) Type() string { return f.typ }

func (f *timelineFetcher) Fetch(ctx context.Context, src Source) ([]domain.Item, error) {
	if err := checkType(f, src); err != nil {
		return nil, err
	}
	statuses, err := f.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s timeline: %w", src.ID, f.typ, err)
	}
	return statusItems(src, statuses), nil
}

type accountStatusesFetcher struct {
	api API
}

// NewAccountStatusesFetcher relays the statuses posted by the source's account_id.
func NewAccountStatusesFetcher(api API) Fetcher {
	return &accountStatusesFetcher{api: api}
}

func (f *accountStatusesFetcher) Type() string { return TypeAccountStatuses }

func (f *accountStatusesFetcher) Fetch(ctx context.Context, src Source) ([]domain.Item, error) {
	if err := checkType(f, src); err != nil {
		return nil, err
	}
	id, err := entities.ParseUserID(src.AccountID)
	if err != nil {
		return nil, fmt.Errorf("source %q account_id: %w", src.ID, err)
	}
	statuses, err := f.api.AccountStatuses(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch %s statuses of account %s: %w", src.ID, id, err)
	}
	return statusItems(src, statuses), nil
}

func checkType(f Fetcher, src Source) error {
	if !strings.EqualFold(src.Type, f.Type()) {
		return fmt.Errorf("%s fetcher received incompatible source type %q", f.Type(), src.Type)
	}
	return nil
}

func statusItems(src Source, statuses []entities.Status) []domain.Item {
	skipReblogs := ConfigBool(src, ConfigExcludeReblogsKey, false)
	items := make([]domain.Item, 0, len(statuses))
	for _, s := range statuses {
		if skipReblogs && s.Reblog != nil {
			continue
		}
		items = append(items, domain.StatusItem(s))
	}
	return items
}

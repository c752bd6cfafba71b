package sources

import (
	"context"

	"github.com/samvad-hq/mastodon-relay/internal/domain"
	"github.com/samvad-hq/mastodon-relay/pkg/entities"
)

// Fetcher retrieves the current items for a source.
type Fetcher interface {
	Type() string
	Fetch(ctx context.Context, src Source) ([]domain.Item, error)
}

// FetcherRegistry resolves the fetcher implementation for a given source.
type FetcherRegistry interface {
	FetcherFor(src Source) (Fetcher, error)
}

// API is the slice of *mastodon.Session the fetchers read from.
type API interface {
	Notifications(ctx context.Context) ([]entities.Notification, error)
	HomeTimeline(ctx context.Context) ([]entities.Status, error)
	PublicTimeline(ctx context.Context) ([]entities.Status, error)
	Mentions(ctx context.Context) ([]entities.Status, error)
	AccountStatuses(ctx context.Context, id entities.UserID) ([]entities.Status, error)
}

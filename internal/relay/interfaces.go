package relay

import (
	"context"

	"github.com/samvad-hq/mastodon-relay/internal/domain"
	"github.com/samvad-hq/mastodon-relay/pkg/publishers"
	"github.com/samvad-hq/mastodon-relay/pkg/sources"
)

// ItemEnricher derives extra fields (plain text, links) for fetched items.
type ItemEnricher interface {
	Enrich(ctx context.Context, src sources.Source, items []domain.Item) []domain.Item
}

// EventPublisher publishes events downstream and reports how many sinks accepted each one.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers which item keys were already relayed.
type Deduper interface {
	SeenItem(key string) (bool, error)
	MarkItem(key string) error
}

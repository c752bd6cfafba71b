package mastodon

import (
	"context"

	"github.com/samvad-hq/mastodon-relay/pkg/entities"
)

// HomeTimeline returns the latest statuses from accounts the user follows.
func (s *Session) HomeTimeline(ctx context.Context) ([]entities.Status, error) {
	return getSequence[entities.Status](ctx, s, "/api/v1/timelines/home")
}

// PublicTimeline returns the latest public statuses known to the instance.
func (s *Session) PublicTimeline(ctx context.Context) ([]entities.Status, error) {
	return getSequence[entities.Status](ctx, s, "/api/v1/timelines/public")
}

// Mentions returns the latest statuses that mention the authenticated user.
func (s *Session) Mentions(ctx context.Context) ([]entities.Status, error) {
	return getSequence[entities.Status](ctx, s, "/api/v1/timelines/mentions")
}

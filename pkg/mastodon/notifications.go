package mastodon

import (
	"context"

	"github.com/samvad-hq/mastodon-relay/pkg/entities"
)

// Notifications fetches the latest notifications and normalizes them. A
// favourite or reblog without a status fails the whole call.
func (s *Session) Notifications(ctx context.Context) ([]entities.Notification, error) {
	raws, err := getSequence[entities.RawNotification](ctx, s, "/api/v1/notifications")
	if err != nil {
		return nil, err
	}
	return entities.NormalizeAll(raws)
}

// Notification fetches and normalizes a single notification.
func (s *Session) Notification(ctx context.Context, id entities.NotificationID) (entities.Notification, error) {
	raw, err := get[entities.RawNotification](ctx, s, "/api/v1/notifications/"+id.String())
	if err != nil {
		return nil, err
	}
	return entities.Normalize(raw)
}

// Instance describes the server the session is bound to.
func (s *Session) Instance(ctx context.Context) (entities.Instance, error) {
	return get[entities.Instance](ctx, s, "/api/v1/instance")
}

package mastodon

import (
	"context"

	"github.com/samvad-hq/mastodon-relay/pkg/entities"
)

// Account fetches a single account profile.
func (s *Session) Account(ctx context.Context, id entities.UserID) (entities.Account, error) {
	return get[entities.Account](ctx, s, "/api/v1/accounts/"+id.String())
}

// AccountStatuses returns the latest statuses posted by an account.
func (s *Session) AccountStatuses(ctx context.Context, id entities.UserID) ([]entities.Status, error) {
	return getSequence[entities.Status](ctx, s, "/api/v1/accounts/"+id.String()+"/statuses")
}

// Following lists the accounts id follows, first page only.
func (s *Session) Following(ctx context.Context, id entities.UserID) ([]entities.Account, error) {
	return getSequence[entities.Account](ctx, s, "/api/v1/accounts/"+id.String()+"/following")
}

// Followers lists the accounts following id, first page only.
func (s *Session) Followers(ctx context.Context, id entities.UserID) ([]entities.Account, error) {
	return getSequence[entities.Account](ctx, s, "/api/v1/accounts/"+id.String()+"/followers")
}

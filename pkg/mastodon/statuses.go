package mastodon

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/samvad-hq/mastodon-relay/pkg/entities"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkRequest validates body, returning *RequestError naming the first
// failing field.
func checkRequest(path string, body any) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}
	reqErr := &RequestError{Path: path, Err: err}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		reqErr.Field = fieldErrs[0].Field()
	}
	return reqErr
}

// NewStatus is the request body for PostStatus. Visibility defaults to public.
type NewStatus struct {
	Status      string              `json:"status" validate:"required"`
	InReplyToID *entities.StatusID  `json:"in_reply_to_id,omitempty"`
	Sensitive   bool                `json:"sensitive"`
	SpoilerText string              `json:"spoiler_text,omitempty"`
	Visibility  entities.Visibility `json:"visibility" validate:"omitempty,oneof=public unlisted private direct"`
}

// Status fetches a single status.
func (s *Session) Status(ctx context.Context, id entities.StatusID) (entities.Status, error) {
	return get[entities.Status](ctx, s, "/api/v1/statuses/"+id.String())
}

// StatusContext fetches the ancestors and descendants of a status.
func (s *Session) StatusContext(ctx context.Context, id entities.StatusID) (entities.Context, error) {
	return get[entities.Context](ctx, s, "/api/v1/statuses/"+id.String()+"/context")
}

// StatusCard fetches the link preview card of a status.
func (s *Session) StatusCard(ctx context.Context, id entities.StatusID) (entities.Card, error) {
	return get[entities.Card](ctx, s, "/api/v1/statuses/"+id.String()+"/card")
}

// RebloggedBy lists the accounts that boosted a status.
func (s *Session) RebloggedBy(ctx context.Context, id entities.StatusID) ([]entities.Account, error) {
	return getSequence[entities.Account](ctx, s, "/api/v1/statuses/"+id.String()+"/reblogged_by")
}

// FavouritedBy lists the accounts that favourited a status.
func (s *Session) FavouritedBy(ctx context.Context, id entities.StatusID) ([]entities.Account, error) {
	return getSequence[entities.Account](ctx, s, "/api/v1/statuses/"+id.String()+"/favourited_by")
}

// PostStatus publishes a new status. An invalid req fails with *RequestError
// and nothing is sent.
func (s *Session) PostStatus(ctx context.Context, req NewStatus) (entities.Status, error) {
	if req.Visibility == "" {
		req.Visibility = entities.VisibilityPublic
	}
	const path = "/api/v1/statuses"
	if err := checkRequest(path, req); err != nil {
		return entities.Status{}, err
	}
	return post[entities.Status](ctx, s, path, req)
}

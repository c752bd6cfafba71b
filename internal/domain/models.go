package domain

import (
	"github.com/samvad-hq/mastodon-relay/pkg/entities"
)

// Domain contains the relay's core models.

// ItemKind distinguishes what an Item carries.
type ItemKind string

const (
	KindNotification ItemKind = "notification"
	KindStatus       ItemKind = "status"
)

// Item is one relayable unit pulled from a source. Exactly one of
// Notification and Status is set, matching Kind.
type Item struct {
	Key          string                `json:"key"`
	Kind         ItemKind              `json:"kind"`
	Notification entities.Notification `json:"notification,omitempty"`
	Status       *entities.Status      `json:"status,omitempty"`
	Text         string                `json:"text,omitempty"`
	Links        []string              `json:"links,omitempty"`
}

// NotificationItem wraps a normalized notification.
func NotificationItem(n entities.Notification) Item {
	return Item{
		Key:          string(KindNotification) + ":" + n.Header().ID.String(),
		Kind:         KindNotification,
		Notification: n,
	}
}

// StatusItem wraps a status.
func StatusItem(s entities.Status) Item {
	return Item{
		Key:    string(KindStatus) + ":" + s.ID.String(),
		Kind:   KindStatus,
		Status: &s,
	}
}

// Content returns the HTML body attached to the item, if any. Reblogs
// resolve to the reblogged status.
func (i Item) Content() string {
	if s := i.Subject(); s != nil {
		return s.Original().Content
	}
	return ""
}

// Subject returns the status the item is about: the status itself, or the one
// a favourite or reblog notification refers to.
func (i Item) Subject() *entities.Status {
	if i.Status != nil {
		return i.Status
	}
	switch n := i.Notification.(type) {
	case entities.FavouriteNotification:
		return &n.Status
	case entities.ReblogNotification:
		return &n.Status
	}
	return nil
}

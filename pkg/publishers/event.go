package publishers

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/samvad-hq/mastodon-relay/internal/domain"
)

var codec = sonic.ConfigStd

// Event represents the payload published downstream.
type Event struct {
	ID          string      `json:"id"`
	SourceID    string      `json:"source_id"`
	SourceName  string      `json:"source_name"`
	Item        domain.Item `json:"item"`
	CollectedAt time.Time   `json:"collected_at"`
}

// NewEvent constructs an Event for the given source + item.
func NewEvent(sourceID, sourceName string, item domain.Item) Event {
	return Event{
		ID:          uuid.NewString(),
		SourceID:    sourceID,
		SourceName:  sourceName,
		Item:        item,
		CollectedAt: time.Now().UTC(),
	}
}

// Encode renders the event as JSON.
func (e Event) Encode() ([]byte, error) {
	return codec.Marshal(e)
}

// attributes are the routing hints attached to queue and topic messages.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_id":  e.ID,
		"source_id": e.SourceID,
		"item_kind": string(e.Item.Kind),
	}
}

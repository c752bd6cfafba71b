package entities

import (
	"fmt"
)

// MediaKind is the closed set of attachment variants.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaGifV  MediaKind = "gifv"
)

func (k *MediaKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := codec.Unmarshal(data, &s); err != nil {
		return &DecodeError{Target: "MediaKind", Err: err}
	}
	switch kind := MediaKind(s); kind {
	case MediaImage, MediaVideo, MediaGifV:
		*k = kind
		return nil
	default:
		return &DecodeError{Target: "MediaKind", Err: fmt.Errorf("unknown attachment type %q", s)}
	}
}

// MediaAttachment is an image, video or gifv attached to a status.
type MediaAttachment struct {
	Kind       MediaKind `json:"type"`
	URL        string    `json:"url"`
	PreviewURL string    `json:"preview_url"`
}

// UnmarshalJSON rejects attachment types outside MediaKind.
func (m *MediaAttachment) UnmarshalJSON(data []byte) error {
	if err := requireFields("MediaAttachment", data, "type", "url", "preview_url"); err != nil {
		return err
	}
	type plain MediaAttachment
	if err := codec.Unmarshal(data, (*plain)(m)); err != nil {
		return &DecodeError{Target: "MediaAttachment", Err: err}
	}
	return nil
}

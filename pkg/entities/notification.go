package entities

import (
	"time"
)

// Notification types the normalizer recognizes. Anything else becomes an
// UnknownNotification.
const (
	NotificationTypeMention   = "mention"
	NotificationTypeFollow    = "follow"
	NotificationTypeFavourite = "favourite"
	NotificationTypeReblog    = "reblog"
	NotificationTypeUnknown   = "unknown"
)

// RawNotification is the single polymorphic record the instance sends for
// every notification type.
type RawNotification struct {
	Type      string         `json:"type"`
	ID        NotificationID `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Account   *Account       `json:"account,omitempty"`
	Status    *Status        `json:"status,omitempty"`
}

// UnmarshalJSON requires type, id and created_at before decoding the rest.
func (n *RawNotification) UnmarshalJSON(data []byte) error {
	if err := requireFields("RawNotification", data, "type", "id", "created_at"); err != nil {
		return err
	}
	type plain RawNotification
	if err := codec.Unmarshal(data, (*plain)(n)); err != nil {
		return &DecodeError{Target: "RawNotification", Err: err}
	}
	return nil
}

// Notification is one of MentionNotification, FollowNotification,
// FavouriteNotification, ReblogNotification or UnknownNotification.
type Notification interface {
	Header() NotificationHeader
	Type() string
	Raw() RawNotification
	sealed()
}

// NotificationHeader carries the fields every variant has.
type NotificationHeader struct {
	ID        NotificationID
	CreatedAt time.Time
}

// Header returns the shared fields of any variant.
func (h NotificationHeader) Header() NotificationHeader { return h }

// MentionNotification is a status that mentions the authenticated user.
type MentionNotification struct {
	NotificationHeader
	Account Account
}

// FollowNotification reports a new follower.
type FollowNotification struct {
	NotificationHeader
	Account Account
}

// FavouriteNotification reports that Account favourited Status.
type FavouriteNotification struct {
	NotificationHeader
	Account Account
	Status  Status
}

// ReblogNotification reports that Account reblogged Status.
type ReblogNotification struct {
	NotificationHeader
	Account Account
	Status  Status
}

// UnknownNotification stands in for types this package does not model.
type UnknownNotification struct {
	NotificationHeader
}

func (MentionNotification) Type() string   { return NotificationTypeMention }
func (FollowNotification) Type() string    { return NotificationTypeFollow }
func (FavouriteNotification) Type() string { return NotificationTypeFavourite }
func (ReblogNotification) Type() string    { return NotificationTypeReblog }
func (UnknownNotification) Type() string   { return NotificationTypeUnknown }

func (MentionNotification) sealed()   {}
func (FollowNotification) sealed()    {}
func (FavouriteNotification) sealed() {}
func (ReblogNotification) sealed()    {}
func (UnknownNotification) sealed()   {}

// Raw converts a variant back to the wire shape.
func (n MentionNotification) Raw() RawNotification {
	return rawFrom(n.NotificationHeader, n.Type(), &n.Account, nil)
}

func (n FollowNotification) Raw() RawNotification {
	return rawFrom(n.NotificationHeader, n.Type(), &n.Account, nil)
}

func (n FavouriteNotification) Raw() RawNotification {
	return rawFrom(n.NotificationHeader, n.Type(), &n.Account, &n.Status)
}

func (n ReblogNotification) Raw() RawNotification {
	return rawFrom(n.NotificationHeader, n.Type(), &n.Account, &n.Status)
}

func (n UnknownNotification) Raw() RawNotification {
	return rawFrom(n.NotificationHeader, n.Type(), nil, nil)
}

func rawFrom(h NotificationHeader, typ string, account *Account, status *Status) RawNotification {
	return RawNotification{
		Type:      typ,
		ID:        h.ID,
		CreatedAt: h.CreatedAt,
		Account:   account,
		Status:    status,
	}
}

// MarshalJSON writes a variant in the same shape RawNotification decodes from,
// so a marshalled notification can be fed back through DecodeNotification.
func (n MentionNotification) MarshalJSON() ([]byte, error)   { return codec.Marshal(n.Raw()) }
func (n FollowNotification) MarshalJSON() ([]byte, error)    { return codec.Marshal(n.Raw()) }
func (n FavouriteNotification) MarshalJSON() ([]byte, error) { return codec.Marshal(n.Raw()) }
func (n ReblogNotification) MarshalJSON() ([]byte, error)    { return codec.Marshal(n.Raw()) }
func (n UnknownNotification) MarshalJSON() ([]byte, error)   { return codec.Marshal(n.Raw()) }

// Normalize maps the wire record onto its variant. Favourite and reblog
// notifications without a status fail with *MalformedNotificationError; they
// never fall back to UnknownNotification. A status on a mention or follow is
// ignored.
func Normalize(raw RawNotification) (Notification, error) {
	header := NotificationHeader{ID: raw.ID, CreatedAt: raw.CreatedAt}

	switch raw.Type {
	case NotificationTypeMention:
		if raw.Account == nil {
			return nil, malformed(raw, "account")
		}
		return MentionNotification{NotificationHeader: header, Account: *raw.Account}, nil
	case NotificationTypeFollow:
		if raw.Account == nil {
			return nil, malformed(raw, "account")
		}
		return FollowNotification{NotificationHeader: header, Account: *raw.Account}, nil
	case NotificationTypeFavourite:
		if raw.Account == nil {
			return nil, malformed(raw, "account")
		}
		if raw.Status == nil {
			return nil, malformed(raw, "status")
		}
		return FavouriteNotification{NotificationHeader: header, Account: *raw.Account, Status: *raw.Status}, nil
	case NotificationTypeReblog:
		if raw.Account == nil {
			return nil, malformed(raw, "account")
		}
		if raw.Status == nil {
			return nil, malformed(raw, "status")
		}
		return ReblogNotification{NotificationHeader: header, Account: *raw.Account, Status: *raw.Status}, nil
	default:
		return UnknownNotification{NotificationHeader: header}, nil
	}
}

func malformed(raw RawNotification, missing string) error {
	return &MalformedNotificationError{ID: raw.ID, Type: raw.Type, Missing: missing}
}

// NormalizeAll normalizes raws in order, stopping at the first malformed record.
func NormalizeAll(raws []RawNotification) ([]Notification, error) {
	out := make([]Notification, 0, len(raws))
	for _, raw := range raws {
		n, err := Normalize(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// DecodeNotification parses and normalizes a single wire record.
func DecodeNotification(data []byte) (Notification, error) {
	var raw RawNotification
	if err := codec.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Target: "Notification", Err: err}
	}
	return Normalize(raw)
}

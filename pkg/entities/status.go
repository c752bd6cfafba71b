package entities

import (
	"fmt"
	"time"
)

// Visibility controls who can see a status.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPrivate  Visibility = "private"
	VisibilityDirect   Visibility = "direct"
)

// Valid reports whether v is one of the known visibilities.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPrivate, VisibilityDirect:
		return true
	}
	return false
}

func (v *Visibility) UnmarshalJSON(data []byte) error {
	var s string
	if err := codec.Unmarshal(data, &s); err != nil {
		return &DecodeError{Target: "Visibility", Err: err}
	}
	if !Visibility(s).Valid() {
		return &DecodeError{Target: "Visibility", Err: fmt.Errorf("unknown visibility %q", s)}
	}
	*v = Visibility(s)
	return nil
}

// Status is a post. Reblog holds the boosted status when this one is a
// reblog; instances only ever nest one level.
type Status struct {
	ID                 StatusID          `json:"id"`
	URI                string            `json:"uri"`
	URL                string            `json:"url"`
	Account            Account           `json:"account"`
	InReplyToID        *StatusID         `json:"in_reply_to_id"`
	InReplyToAccountID *UserID           `json:"in_reply_to_account_id"`
	Reblog             *Status           `json:"reblog"`
	Content            string            `json:"content"`
	CreatedAt          time.Time         `json:"created_at"`
	ReblogsCount       uint64            `json:"reblogs_count"`
	FavouritesCount    uint64            `json:"favourites_count"`
	Reblogged          bool              `json:"reblogged"`
	Favourited         bool              `json:"favourited"`
	Sensitive          bool              `json:"sensitive"`
	SpoilerText        string            `json:"spoiler_text"`
	Visibility         Visibility        `json:"visibility"`
	MediaAttachments   []MediaAttachment `json:"media_attachments"`
	Mentions           []Mention         `json:"mentions"`
	Tags               []Tag             `json:"tags"`
	Application        *Application      `json:"application"`
}

// Original returns the reblogged status, or s itself when s is not a reblog.
func (s *Status) Original() *Status {
	if s.Reblog != nil {
		return s.Reblog
	}
	return s
}

// UnmarshalJSON reads null reblogged and favourited flags as false.
func (s *Status) UnmarshalJSON(data []byte) error {
	if err := requireFields("Status", data,
		"id", "account", "content", "created_at", "visibility", "reblogs_count", "favourites_count",
	); err != nil {
		return err
	}

	type plain Status
	aux := struct {
		*plain
		Reblogged  NullBool `json:"reblogged"`
		Favourited NullBool `json:"favourited"`
	}{plain: (*plain)(s)}

	if err := codec.Unmarshal(data, &aux); err != nil {
		return &DecodeError{Target: "Status", Err: err}
	}
	s.Reblogged = bool(aux.Reblogged)
	s.Favourited = bool(aux.Favourited)
	return nil
}

package entities

import (
	"time"
)

// Account is a user profile on the remote instance.
type Account struct {
	ID             UserID    `json:"id"`
	Username       string    `json:"username"`
	Acct           string    `json:"acct"`
	DisplayName    string    `json:"display_name"`
	Note           string    `json:"note"`
	URL            string    `json:"url"`
	Avatar         string    `json:"avatar"`
	Header         string    `json:"header"`
	Locked         bool      `json:"locked"`
	CreatedAt      time.Time `json:"created_at"`
	FollowersCount uint64    `json:"followers_count"`
	FollowingCount uint64    `json:"following_count"`
	StatusesCount  uint64    `json:"statuses_count"`
}

// UnmarshalJSON fails with *DecodeError naming the first missing field.
func (a *Account) UnmarshalJSON(data []byte) error {
	if err := requireFields("Account", data,
		"id", "username", "acct", "followers_count", "following_count", "statuses_count",
	); err != nil {
		return err
	}
	type plain Account
	if err := codec.Unmarshal(data, (*plain)(a)); err != nil {
		return &DecodeError{Target: "Account", Err: err}
	}
	return nil
}

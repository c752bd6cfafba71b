package mastodon

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultDomain is the instance used when Config.Domain is empty.
	DefaultDomain = "mastodon.social"
	// DefaultTokenEnv names the environment variable FromEnv reads by default.
	DefaultTokenEnv = "MASTODON_ACCESS_TOKEN"
	// DefaultTimeout bounds a single call when Config.Timeout is not set.
	DefaultTimeout = 15 * time.Second
)

// ErrMissingCredential is matched by a *ConfigError raised for an absent token.
var ErrMissingCredential = errors.New("missing credential")

// Config is the immutable session configuration.
type Config struct {
	// Domain is the instance host, e.g. "mastodon.social". A value carrying a
	// scheme ("http://127.0.0.1:3000") is used verbatim as the base URL.
	Domain    string
	Token     string
	Timeout   time.Duration
	UserAgent string
}

// ConfigError reports an unusable session configuration.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mastodon config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FromEnv builds a Config whose token is read from the environment variable
// envVar (DefaultTokenEnv when empty). Domain and timeout take their defaults.
func FromEnv(envVar string) (Config, error) {
	if strings.TrimSpace(envVar) == "" {
		envVar = DefaultTokenEnv
	}
	token, ok := os.LookupEnv(envVar)
	if !ok || strings.TrimSpace(token) == "" {
		return Config{}, &ConfigError{Field: envVar, Err: ErrMissingCredential}
	}
	return Config{
		Domain:  DefaultDomain,
		Token:   strings.TrimSpace(token),
		Timeout: DefaultTimeout,
	}, nil
}

func (c Config) normalized() (Config, error) {
	c.Domain = strings.TrimRight(strings.TrimSpace(c.Domain), "/")
	if c.Domain == "" {
		c.Domain = DefaultDomain
	}
	c.Token = strings.TrimSpace(c.Token)
	if c.Token == "" {
		return Config{}, &ConfigError{Field: "token", Err: ErrMissingCredential}
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c, nil
}

func (c Config) baseURL() string {
	if strings.Contains(c.Domain, "://") {
		return c.Domain
	}
	return "https://" + c.Domain
}

package sources

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/mastodon-relay/pkg/entities"
)

// Package sources describes which Mastodon timelines the relay polls and how
// each one is fetched.

const (
	TypeNotifications   = "notifications"
	TypeHome            = "home"
	TypePublic          = "public"
	TypeMentions        = "mentions"
	TypeAccountStatuses = "account_statuses"
)

// Source is one configured timeline to poll.
type Source struct {
	ID             string         `json:"id" yaml:"id" validate:"required"`
	Name           string         `json:"name" yaml:"name" validate:"required"`
	Type           string         `json:"type" yaml:"type" validate:"required,oneof=notifications home public mentions account_statuses"`
	AccountID      string         `json:"account_id" yaml:"account_id" validate:"required_if=Type account_statuses"`
	Enabled        *bool          `json:"enabled" yaml:"enabled"`
	RequestDelayMs int            `json:"request_delay_ms" yaml:"request_delay_ms" validate:"gte=0"`
	Config         map[string]any `json:"config" yaml:"config"`
}

// Registry is an immutable, validated set of sources.
type Registry struct {
	sources []Source
	idx     map[string]Source
}

type registryFile struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

var (
	validate              = newValidator()
	defaultRequestDelayMs = 250
)

// newValidator reports fields by their file key rather than the Go name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadRegistry loads the sources file at path. The format follows the extension
// (.yaml, .yml or .json); files without one are tried as YAML then JSON.
func LoadRegistry(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sources file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	parsed, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(parsed.Sources...)
}

// NewRegistry validates srcs and indexes them by id.
func NewRegistry(srcs ...Source) (*Registry, error) {
	if len(srcs) == 0 {
		return nil, errors.New("sources file contains no sources entries")
	}

	reg := &Registry{
		sources: make([]Source, 0, len(srcs)),
		idx:     make(map[string]Source, len(srcs)),
	}
	for i := range srcs {
		s := sanitizeSource(srcs[i])
		if err := validateSource(s); err != nil {
			return nil, fmt.Errorf("source[%d]: %w", i, err)
		}
		if _, exists := reg.idx[s.ID]; exists {
			return nil, fmt.Errorf("duplicate source id %q", s.ID)
		}
		reg.sources = append(reg.sources, s)
		reg.idx[s.ID] = s
	}
	return reg, nil
}

// All returns the enabled sources in file order.
func (r *Registry) All() []Source {
	if r == nil {
		return nil
	}
	out := make([]Source, 0, len(r.sources))
	for _, s := range r.sources {
		if s.IsEnabled() {
			out = append(out, s)
		}
	}
	return out
}

// ByID returns the source with the given id, enabled or not.
func (r *Registry) ByID(id string) (Source, bool) {
	if r == nil {
		return Source{}, false
	}
	s, ok := r.idx[strings.TrimSpace(id)]
	return s, ok
}

func parseRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: sonic.ConfigStd.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg registryFile
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("sources file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func sanitizeSource(s Source) Source {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	s.AccountID = strings.TrimSpace(s.AccountID)

	if s.Config == nil {
		s.Config = map[string]any{}
	}
	if s.RequestDelayMs <= 0 {
		s.RequestDelayMs = defaultRequestDelayMs
	}
	return s
}

func validateSource(s Source) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("source %q: field %s failed %q validation", s.ID, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("source %q: %w", s.ID, err)
	}
	if s.AccountID != "" {
		if _, err := entities.ParseUserID(s.AccountID); err != nil {
			return fmt.Errorf("source %q: account_id %q is not a numeric id", s.ID, s.AccountID)
		}
	}
	return nil
}

// IsEnabled reports whether the source takes part in relay passes. Sources are
// enabled unless explicitly switched off.
func (s Source) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// RequestDelay returns the pause observed after fetching this source.
func (s Source) RequestDelay() time.Duration {
	if s.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(s.RequestDelayMs) * time.Millisecond
}

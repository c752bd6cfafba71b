package sources

import (
	"fmt"
	"strings"
	"sync"
)

// fetcherRegistry implements FetcherRegistry.
type fetcherRegistry struct {
	fetchersByID   map[string]Fetcher
	fetchersByType map[string]Fetcher
	mu             sync.RWMutex
}

// NewFetcherRegistry builds a registry keyed by source type, with optional
// per-source overrides keyed by source id.
func NewFetcherRegistry(byType []Fetcher, byID map[string]Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{
		fetchersByID:   make(map[string]Fetcher),
		fetchersByType: make(map[string]Fetcher),
	}
	for _, f := range byType {
		if f != nil {
			reg.register(reg.fetchersByType, f.Type(), f)
		}
	}
	for id, f := range byID {
		reg.register(reg.fetchersByID, id, f)
	}
	return reg
}

func (r *fetcherRegistry) register(into map[string]Fetcher, key string, f Fetcher) {
	key = strings.ToLower(strings.TrimSpace(key))
	if f == nil || key == "" {
		return
	}
	r.mu.Lock()
	into[key] = f
	r.mu.Unlock()
}

// FetcherFor selects the fetcher for src, preferring an id override over its type.
func (r *fetcherRegistry) FetcherFor(src Source) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}
	if strings.TrimSpace(src.ID) == "" {
		return nil, fmt.Errorf("source id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.fetchersByID[strings.ToLower(strings.TrimSpace(src.ID))]; ok {
		return f, nil
	}
	if typ := strings.ToLower(strings.TrimSpace(src.Type)); typ != "" {
		if f, ok := r.fetchersByType[typ]; ok {
			return f, nil
		}
	}
	return nil, fmt.Errorf("no fetcher registered for source %q (type %q)", src.ID, src.Type)
}

// DefaultFetcherRegistry wires a fetcher for every built-in source type.
func DefaultFetcherRegistry(api API) FetcherRegistry {
	return NewFetcherRegistry([]Fetcher{
		NewNotificationsFetcher(api),
		NewTimelineFetcher(TypeHome, api.HomeTimeline),
		NewTimelineFetcher(TypePublic, api.PublicTimeline),
		NewTimelineFetcher(TypeMentions, api.Mentions),
		NewAccountStatusesFetcher(api),
	}, nil)
}

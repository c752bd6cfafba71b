package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/mastodon-relay/internal/config"
	"github.com/samvad-hq/mastodon-relay/internal/logger"
	"github.com/samvad-hq/mastodon-relay/internal/relay"
	"github.com/samvad-hq/mastodon-relay/internal/storage"
	"github.com/samvad-hq/mastodon-relay/pkg/mastodon"
	"github.com/samvad-hq/mastodon-relay/pkg/publishers"
	"github.com/samvad-hq/mastodon-relay/pkg/sources"
)

// Relay is the runtime that polls Mastodon sources on an interval and forwards
// new items to the configured publishers. It owns the session, the item store
// and the publisher connections.
type Relay struct {
	cfg          *config.Config
	session      *mastodon.Session
	sourceReg    *sources.Registry
	fanout       *publishers.Fanout
	relayService *relay.Service
	pollInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// NewRelay builds a relay runtime from config files and the environment.
func NewRelay(ctx context.Context, cfg *config.Config, log logger.Logger) (*Relay, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session, err := newSession(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init mastodon session: %w", err)
	}

	sourceReg, err := sources.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}
	sourceList := sourceReg.All()
	sourceIDs := make([]string, 0, len(sourceList))
	for _, s := range sourceList {
		sourceIDs = append(sourceIDs, s.ID)
	}
	log.InfoObj("sources registry loaded", "sources_meta", map[string]any{
		"count": len(sourceIDs),
		"ids":   sourceIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		ItemTTL:         cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"item_ttl_seconds":         int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	relayService := relay.NewService(sources.DefaultFetcherRegistry(session), fanout, log, store)

	return &Relay{
		cfg:          cfg,
		session:      session,
		sourceReg:    sourceReg,
		fanout:       fanout,
		relayService: relayService,
		pollInterval: cfg.PollInterval,
		log:          log,
		store:        store,
	}, nil
}

func newSession(cfg *config.Config, log logger.Logger) (*mastodon.Session, error) {
	mcfg, err := mastodon.FromEnv(cfg.MastodonTokenEnv)
	if err != nil {
		return nil, err
	}
	mcfg.Domain = cfg.MastodonDomain
	mcfg.Timeout = cfg.MastodonTimeout
	mcfg.UserAgent = cfg.MastodonUserAgent
	return mastodon.New(mcfg, mastodon.WithLogger(log))
}

// Run starts the poll loop until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	if r == nil || r.relayService == nil {
		return fmt.Errorf("relay is not initialized")
	}
	defer r.close()

	r.logInstance(ctx)

	srcs := r.sourceReg.All()
	if len(srcs) == 0 {
		r.log.WarnObj("no enabled sources; relay idle", "sources_file", r.cfg.SourcesFile)
		<-ctx.Done()
		return ctx.Err()
	}

	r.log.InfoObj("relay loop starting", "relay_state", map[string]any{
		"sources_count":    len(srcs),
		"publishers_count": r.fanout.Size(),
		"poll_interval":    r.pollInterval.String(),
		"domain":           r.session.Domain(),
	})

	if err := r.runOnce(ctx, srcs); err != nil {
		r.log.ErrorObj("initial relay pass failed", "error", err)
	}

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.InfoObj("relay loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := r.runOnce(ctx, srcs); err != nil {
				r.log.ErrorObj("scheduled relay pass failed", "error", err)
			}
		}
	}
}

// runOnce performs a single relay pass across all sources.
func (r *Relay) runOnce(ctx context.Context, srcs []sources.Source) error {
	start := time.Now()
	r.log.InfoObj("relay pass started", "pass_meta", map[string]any{
		"sources_count": len(srcs),
		"started_at":    start.UTC(),
	})
	if err := r.relayService.Run(ctx, srcs); err != nil {
		return err
	}
	r.log.InfoObj("relay pass completed", "pass_meta", map[string]any{
		"sources_count": len(srcs),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

// logInstance records which instance the token talks to. Failure is not fatal.
func (r *Relay) logInstance(ctx context.Context) {
	inst, err := r.session.Instance(ctx)
	if err != nil {
		r.log.WarnObj("instance lookup failed", "error", err.Error())
		return
	}
	r.log.InfoObj("connected to instance", "instance", map[string]any{
		"uri":   inst.URI,
		"title": inst.Title,
	})
}

func (r *Relay) close() {
	if r == nil {
		return
	}
	if r.fanout != nil {
		if err := r.fanout.Close(); err != nil {
			r.log.ErrorObj("publisher close failed", "error", err)
		}
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.log.ErrorObj("storage close failed", "error", err)
		}
	}
}

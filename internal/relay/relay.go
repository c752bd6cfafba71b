package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/mastodon-relay/internal/domain"
	"github.com/samvad-hq/mastodon-relay/internal/logger"
	"github.com/samvad-hq/mastodon-relay/pkg/publishers"
	"github.com/samvad-hq/mastodon-relay/pkg/sources"
)

// Service runs relay passes across multiple sources.
type Service struct {
	processor *SourceProcessor
	log       logger.Logger
}

// NewService wires a relay with the source fetcher registry, the sink fanout and the item store.
func NewService(reg sources.FetcherRegistry, pub EventPublisher, log logger.Logger, dedupe Deduper) *Service {
	log = logger.OrNop(log)
	return &Service{
		processor: NewSourceProcessor(reg, NewTextExtractor(), pub, log, dedupe),
		log:       log,
	}
}

// Run executes one relay pass over srcs. A failing source does not stop the
// others; all failures are returned joined.
func (s *Service) Run(ctx context.Context, srcs []sources.Source) error {
	if s == nil || s.processor == nil || s.processor.registry == nil {
		return fmt.Errorf("relay service is not initialized")
	}
	if len(srcs) == 0 {
		return fmt.Errorf("no sources configured for relaying")
	}

	return errors.Join(s.runAll(ctx, srcs)...)
}

func (s *Service) runAll(ctx context.Context, srcs []sources.Source) []error {
	errs := make([]error, 0, len(srcs))

	for i, src := range srcs {
		if ctx.Err() != nil {
			break
		}
		if err := s.processor.Process(ctx, src, i); err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("source relay failed", "source_error", map[string]any{
				"source_id": src.ID,
				"error":     err.Error(),
			})
		}

		if i < len(srcs)-1 && !sleep(ctx, src.RequestDelay()) {
			break
		}
	}

	return errs
}

// SourceProcessor relays the items of a single source.
type SourceProcessor struct {
	registry  sources.FetcherRegistry
	enricher  ItemEnricher
	publisher EventPublisher
	log       logger.Logger
	dedupe    Deduper
}

// NewSourceProcessor builds a processor. enricher, publisher and dedupe may be nil.
func NewSourceProcessor(reg sources.FetcherRegistry, enricher ItemEnricher, pub EventPublisher, log logger.Logger, dedupe Deduper) *SourceProcessor {
	return &SourceProcessor{
		registry:  reg,
		enricher:  enricher,
		publisher: pub,
		log:       logger.OrNop(log),
		dedupe:    dedupe,
	}
}

// Process fetches src, drops already relayed items, enriches the rest and
// publishes one event per item. An item is marked as relayed once at least
// one sink accepted it.
func (p *SourceProcessor) Process(ctx context.Context, src sources.Source, index int) error {
	fetcher, err := p.registry.FetcherFor(src)
	if err != nil {
		return fmt.Errorf("resolve fetcher for source %s: %w", src.ID, err)
	}

	items, err := fetcher.Fetch(ctx, src)
	if err != nil {
		return fmt.Errorf("fetch source %s: %w", src.ID, err)
	}
	fetched := len(items)

	items = p.filterNewItems(src, items)
	if p.enricher != nil && len(items) > 0 {
		items = p.enricher.Enrich(ctx, src, items)
	}

	published, errs := p.publishAll(ctx, src, items)

	p.log.InfoObj("source relay completed", "source_result", map[string]any{
		"source_id":       src.ID,
		"source_index":    index,
		"items_fetched":   fetched,
		"items_new":       len(items),
		"items_published": published,
		"publish_errors":  len(errs),
	})
	return errors.Join(errs...)
}

func (p *SourceProcessor) publishAll(ctx context.Context, src sources.Source, items []domain.Item) (int, []error) {
	if p.publisher == nil {
		return 0, nil
	}

	var errs []error
	published := 0
	for _, item := range items {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		evt := publishers.NewEvent(src.ID, src.Name, item)
		accepted, err := p.publisher.Publish(ctx, evt)
		if err != nil {
			errs = append(errs, fmt.Errorf("publish item %s from %s: %w", item.Key, src.ID, err))
		}
		if accepted == 0 {
			continue
		}

		published++
		if p.dedupe != nil {
			if err := p.dedupe.MarkItem(item.Key); err != nil {
				p.log.WarnObj("mark item failed", "dedupe_error", map[string]any{
					"source_id": src.ID,
					"item_key":  item.Key,
					"error":     err.Error(),
				})
			}
		}
	}
	return published, errs
}

// filterNewItems drops items the store already knows. Lookup failures keep the
// item so it is relayed rather than lost.
func (p *SourceProcessor) filterNewItems(src sources.Source, items []domain.Item) []domain.Item {
	if p.dedupe == nil {
		return items
	}

	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		seen, err := p.dedupe.SeenItem(item.Key)
		if err != nil {
			p.log.WarnObj("dedupe lookup failed", "dedupe_error", map[string]any{
				"source_id": src.ID,
				"item_key":  item.Key,
				"error":     err.Error(),
			})
			out = append(out, item)
			continue
		}
		if !seen {
			out = append(out, item)
		}
	}
	return out
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

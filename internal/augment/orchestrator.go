package augment

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"nextread/internal/cards"
	"nextread/internal/config"
	"nextread/internal/fetch"
	"nextread/internal/logging"
	"nextread/internal/metacache"
	"nextread/internal/render"
	"nextread/internal/scan"
	"nextread/internal/scheduler"
	"nextread/internal/visibility"
)

// Orchestrator turns page changes into scheduler work: it scans for
// candidate cards, consults the cache, and enqueues fetch-and-render tasks
// for the misses. Re-scans are idempotent; a card that reached Processed is
// never picked up again.
type Orchestrator struct {
	logger   *slog.Logger
	source   scan.Source
	cache    *metacache.Cache
	fetcher  fetch.Fetcher
	renderer render.Renderer

	state *cards.Tracker
	vis   *visibility.Tracker
	sched *scheduler.Scheduler

	debounce *debouncer
	pending  sync.WaitGroup

	mu     sync.Mutex
	runCtx context.Context
}

// New wires an orchestrator with its scheduler, visibility tracker, and card
// state register. The visibility tracker's off-to-on callback drives
// scheduler reprioritization.
func New(cfg *config.Config, source scan.Source, cache *metacache.Cache, fetcher fetch.Fetcher, renderer render.Renderer, logger *slog.Logger) *Orchestrator {
	o := &Orchestrator{
		logger:   logging.NewComponentLogger(logger, "augment"),
		source:   source,
		cache:    cache,
		fetcher:  fetcher,
		renderer: renderer,
		state:    cards.NewTracker(),
	}
	o.vis = visibility.NewTracker(cfg.Scan.VisibilityThreshold, func() {
		o.sched.Reprioritize()
	})
	o.sched = scheduler.New(cfg.Scheduler.MaxConcurrent, cfg.Stagger(), o.vis.IsVisible, logger)
	o.debounce = newDebouncer(cfg.Debounce(), o.rescan)
	return o
}

// Visibility exposes the tracker so the host can feed intersection reports.
func (o *Orchestrator) Visibility() *visibility.Tracker {
	return o.vis
}

// Start runs the initial scan and primes the scheduler pipeline. The context
// governs every fetch issued for the rest of the session.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	o.runCtx = ctx
	o.mu.Unlock()

	if err := o.Scan(ctx); err != nil {
		return err
	}
	o.sched.StartBatch()
	return nil
}

// NotifyChanged signals that the host page content changed. Bursts are
// coalesced: the re-scan fires once the page has been quiet for the debounce
// window.
func (o *Orchestrator) NotifyChanged() {
	o.debounce.trigger()
}

// Wait blocks until every enqueued task has finished.
func (o *Orchestrator) Wait() {
	o.pending.Wait()
}

// Stop cancels the debounce timer and shuts the scheduler down. In-flight
// tasks run to completion; queued work is discarded.
func (o *Orchestrator) Stop() {
	o.debounce.stop()
	o.sched.Stop()
}

// Scan discovers candidate cards and routes each one: malformed cards are
// retired immediately, cache hits render without touching the scheduler,
// and misses become fetch tasks.
func (o *Orchestrator) Scan(ctx context.Context) error {
	candidates, err := o.source.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan page: %w", err)
	}

	fresh := 0
	for _, candidate := range candidates {
		if !o.state.Eligible(candidate.Card) {
			continue
		}
		fresh++
		o.processCandidate(ctx, candidate)
	}

	o.logger.Debug("scan complete",
		logging.Int("candidates", len(candidates)),
		logging.Int("fresh", fresh))
	return nil
}

func (o *Orchestrator) processCandidate(ctx context.Context, candidate scan.Candidate) {
	card := candidate.Card

	if candidate.Malformed {
		// Nothing to fetch for; retire the card so re-scans skip it.
		o.state.MarkProcessed(card)
		o.logger.Debug("skipping malformed card", logging.String(logging.FieldCardID, card.ID()))
		return
	}

	// Loading and observation must both be in place before the task can be
	// enqueued, so a reprioritization never finds an untracked card.
	o.state.MarkLoading(card)
	o.vis.Observe(card)
	o.renderer.ShowLoading(card)

	if md, found := o.cache.Get(ctx, candidate.Query); found {
		o.renderer.ShowMetadata(card, candidate.Query, md)
		o.finishCard(card)
		return
	}

	query := candidate.Query
	o.pending.Add(1)
	o.sched.Enqueue(card, func(taskCtx context.Context) error {
		defer o.pending.Done()
		defer o.finishCard(card)

		md, err := o.fetcher.Fetch(taskCtx, query)
		if err != nil {
			if fetch.IsDisconnect(err) {
				// Host went away mid-flight; expected during reloads.
				return nil
			}
			return fmt.Errorf("fetch %q: %w", query.Title, err)
		}

		o.cache.Set(taskCtx, query, md)
		o.renderer.ShowMetadata(card, query, md)
		return nil
	})
}

// finishCard moves a card to its terminal state: loading indicator cleared,
// visibility observation released, Processed set. Runs exactly once per card
// on every path, including task failure.
func (o *Orchestrator) finishCard(card cards.Handle) {
	o.renderer.ClearLoading(card)
	o.vis.Unobserve(card)
	o.state.MarkProcessed(card)
}

func (o *Orchestrator) rescan() {
	o.mu.Lock()
	ctx := o.runCtx
	o.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}
	if err := o.Scan(ctx); err != nil {
		o.logger.Warn("debounced re-scan failed", logging.Error(err))
	}
}

package cards

import "sync"

// Handle is an opaque reference to one card on the host page. The host owns
// the underlying element; the pipeline only ever compares handles by ID and
// writes the processed/loading markers back through the renderer.
type Handle interface {
	ID() string
}

// Tracker is the per-card state register. It prevents duplicate or re-entrant
// processing: a card that reached Processed is ineligible for re-enqueue for
// the rest of the session, and a card marked Loading is skipped by re-scans
// while its fetch is pending. The tracker itself cannot fail.
type Tracker struct {
	mu        sync.Mutex
	loading   map[string]struct{}
	processed map[string]struct{}
}

// NewTracker returns an empty state register.
func NewTracker() *Tracker {
	return &Tracker{
		loading:   make(map[string]struct{}),
		processed: make(map[string]struct{}),
	}
}

// MarkLoading flags a card as having work in flight. Processed is terminal;
// marking a processed card is a no-op.
func (t *Tracker) MarkLoading(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, done := t.processed[h.ID()]; done {
		return
	}
	t.loading[h.ID()] = struct{}{}
}

// UnmarkLoading clears the in-flight flag.
func (t *Tracker) UnmarkLoading(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.loading, h.ID())
}

// IsLoading reports whether a card has work in flight.
func (t *Tracker) IsLoading(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.loading[h.ID()]
	return ok
}

// MarkProcessed records the terminal state for a card. There is no unmark;
// reprocessing requires a new handle (the host re-created the element).
func (t *Tracker) MarkProcessed(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.processed[h.ID()] = struct{}{}
	delete(t.loading, h.ID())
}

// IsProcessed reports whether a card reached the terminal state.
func (t *Tracker) IsProcessed(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.processed[h.ID()]
	return ok
}

// Eligible reports whether a scan should pick the card up: neither processed
// nor currently loading.
func (t *Tracker) Eligible(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.processed[h.ID()]; ok {
		return false
	}
	_, ok := t.loading[h.ID()]
	return !ok
}

// CardID is a minimal Handle for cards identified by a bare string.
type CardID string

// ID implements Handle.
func (c CardID) ID() string { return string(c) }

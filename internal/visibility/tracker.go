package visibility

import (
	"sync"

	"nextread/internal/cards"
)

// DefaultThreshold is the fraction of a card's area that must intersect the
// viewport for the card to count as visible.
const DefaultThreshold = 0.1

// Tracker maintains the set of currently visible cards from host-fed
// intersection reports. When a card transitions off-screen to on-screen the
// injected callback fires before Report returns, so the scheduler promotes
// the card before its next dispatch decision.
type Tracker struct {
	mu        sync.Mutex
	threshold float64
	observed  map[string]struct{}
	visible   map[string]struct{}
	onVisible func()
}

// NewTracker builds a tracker with the given visibility threshold. A zero or
// negative threshold falls back to DefaultThreshold. The callback may be nil.
func NewTracker(threshold float64, onVisible func()) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{
		threshold: threshold,
		observed:  make(map[string]struct{}),
		visible:   make(map[string]struct{}),
		onVisible: onVisible,
	}
}

// Observe begins tracking a card's intersection with the viewport.
func (t *Tracker) Observe(h cards.Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observed[h.ID()] = struct{}{}
}

// Unobserve stops tracking a card and drops it from the visible set.
func (t *Tracker) Unobserve(h cards.Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.observed, h.ID())
	delete(t.visible, h.ID())
}

// IsVisible reports whether a card is currently in the visible set.
func (t *Tracker) IsVisible(h cards.Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.visible[h.ID()]
	return ok
}

// Report feeds an intersection ratio for a card. Reports for cards that are
// not observed are ignored. An off-to-on transition invokes the callback
// synchronously, outside the tracker lock.
func (t *Tracker) Report(h cards.Handle, ratio float64) {
	t.mu.Lock()
	if _, ok := t.observed[h.ID()]; !ok {
		t.mu.Unlock()
		return
	}

	_, wasVisible := t.visible[h.ID()]
	nowVisible := ratio >= t.threshold
	switch {
	case nowVisible && !wasVisible:
		t.visible[h.ID()] = struct{}{}
	case !nowVisible && wasVisible:
		delete(t.visible, h.ID())
	}
	callback := t.onVisible
	t.mu.Unlock()

	if nowVisible && !wasVisible && callback != nil {
		callback()
	}
}

// VisibleCount returns the size of the visible set.
func (t *Tracker) VisibleCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.visible)
}

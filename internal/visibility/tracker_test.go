package visibility

import (
	"testing"

	"nextread/internal/cards"
)

func TestReportThreshold(t *testing.T) {
	tracker := NewTracker(0.1, nil)
	card := cards.CardID("card-1")
	tracker.Observe(card)

	tracker.Report(card, 0.05)
	if tracker.IsVisible(card) {
		t.Fatal("below-threshold ratio must not mark visible")
	}

	tracker.Report(card, 0.1)
	if !tracker.IsVisible(card) {
		t.Fatal("ratio at threshold must mark visible")
	}

	tracker.Report(card, 0.0)
	if tracker.IsVisible(card) {
		t.Fatal("card should leave the visible set when it scrolls away")
	}
}

func TestCallbackFiresOnlyOnOffToOn(t *testing.T) {
	calls := 0
	tracker := NewTracker(0.1, func() { calls++ })
	card := cards.CardID("card-2")
	tracker.Observe(card)

	tracker.Report(card, 0.5)
	tracker.Report(card, 0.9) // still visible, no transition
	tracker.Report(card, 0.0)
	tracker.Report(card, 0.5)

	if calls != 2 {
		t.Fatalf("expected 2 callback invocations, got %d", calls)
	}
}

func TestCallbackRunsBeforeReportReturns(t *testing.T) {
	tracker := NewTracker(0.1, nil)
	card := cards.CardID("card-3")

	fired := false
	tracker.onVisible = func() {
		fired = true
		// The visible set must already reflect the transition.
		if !tracker.IsVisible(card) {
			t.Error("callback observed stale visible set")
		}
	}

	tracker.Observe(card)
	tracker.Report(card, 0.5)
	if !fired {
		t.Fatal("callback did not fire before Report returned")
	}
}

func TestUnobservedReportsIgnored(t *testing.T) {
	calls := 0
	tracker := NewTracker(0.1, func() { calls++ })
	card := cards.CardID("card-4")

	tracker.Report(card, 0.9)
	if tracker.IsVisible(card) || calls != 0 {
		t.Fatal("unobserved card must not enter the visible set")
	}
}

func TestUnobserveRemovesFromVisibleSet(t *testing.T) {
	tracker := NewTracker(0.1, nil)
	card := cards.CardID("card-5")
	tracker.Observe(card)
	tracker.Report(card, 0.5)

	tracker.Unobserve(card)
	if tracker.IsVisible(card) {
		t.Fatal("unobserved card stayed visible")
	}
	if tracker.VisibleCount() != 0 {
		t.Fatalf("visible count = %d, want 0", tracker.VisibleCount())
	}
}

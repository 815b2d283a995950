package augment

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(30*time.Millisecond, func() { fired.Add(1) })
	defer d.stop()

	for i := 0; i < 10; i++ {
		d.trigger()
		time.Sleep(2 * time.Millisecond)
	}

	deadline := time.After(2 * time.Second)
	for fired.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("debouncer never fired")
		case <-time.After(5 * time.Millisecond):
		}
	}
	// Settle long enough for any stray second fire to land.
	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("burst fired %d times, want 1", got)
	}
}

func TestDebouncerFiresAgainAfterQuietPeriod(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(10*time.Millisecond, func() { fired.Add(1) })
	defer d.stop()

	d.trigger()
	time.Sleep(50 * time.Millisecond)
	d.trigger()
	time.Sleep(50 * time.Millisecond)

	if got := fired.Load(); got != 2 {
		t.Fatalf("fired %d times, want 2", got)
	}
}

func TestDebouncerStopSuppressesPendingFire(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(20*time.Millisecond, func() { fired.Add(1) })

	d.trigger()
	d.stop()
	time.Sleep(60 * time.Millisecond)

	if got := fired.Load(); got != 0 {
		t.Fatalf("stopped debouncer fired %d times", got)
	}
	d.trigger()
	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Fatal("trigger after stop must be ignored")
	}
}

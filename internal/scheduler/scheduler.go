package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"nextread/internal/cards"
	"nextread/internal/logging"
)

const (
	// DefaultMaxConcurrent bounds the number of in-flight fetch tasks.
	DefaultMaxConcurrent = 10
	// DefaultStagger is the delay between successive dispatch attempts.
	DefaultStagger = 50 * time.Millisecond
)

// Task is one unit of card work. Errors are logged and swallowed at the
// scheduler level; a failed task frees its slot exactly like a successful one.
type Task func(ctx context.Context) error

// VisibilityFunc reports whether a card is currently on screen. The scheduler
// consults it at enqueue and reprioritization time only; a running task is
// never affected by visibility changes.
type VisibilityFunc func(cards.Handle) bool

type queueItem struct {
	card cards.Handle
	task Task
}

// Scheduler dispatches card tasks under a global concurrency ceiling,
// always preferring visible-card work over background work. Within each
// queue order is FIFO; reprioritization is the only point where an item
// changes queue membership after enqueue.
type Scheduler struct {
	maxConcurrent int
	stagger       time.Duration
	isVisible     VisibilityFunc
	logger        *slog.Logger

	mu         sync.Mutex
	visible    []queueItem
	background []queueItem
	active     int
	members    map[string]struct{}
	closed     bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New constructs a scheduler. Zero maxConcurrent or a nil visibility func
// fall back to safe defaults; a negative stagger is treated as zero.
func New(maxConcurrent int, stagger time.Duration, isVisible VisibilityFunc, logger *slog.Logger) *Scheduler {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if stagger < 0 {
		stagger = 0
	}
	if isVisible == nil {
		isVisible = func(cards.Handle) bool { return false }
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		maxConcurrent: maxConcurrent,
		stagger:       stagger,
		isVisible:     isVisible,
		logger:        logging.NewComponentLogger(logger, "scheduler"),
		members:       make(map[string]struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Enqueue places a task for a card at the tail of the visible queue when the
// card is on screen, else at the tail of the background queue, and attempts a
// dispatch. A card already queued or in flight is dropped: at most one task
// per card exists at any time.
func (s *Scheduler) Enqueue(h cards.Handle, task Task) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if _, dup := s.members[h.ID()]; dup {
		s.mu.Unlock()
		s.logger.Warn("duplicate enqueue dropped", logging.String(logging.FieldCardID, h.ID()))
		return
	}
	s.members[h.ID()] = struct{}{}

	item := queueItem{card: h, task: task}
	if s.isVisible(h) {
		s.visible = append(s.visible, item)
	} else {
		s.background = append(s.background, item)
	}
	s.mu.Unlock()

	s.attemptDispatch()
}

// Reprioritize migrates background items whose cards became visible to the
// tail of the visible queue, preserving relative order on both sides, then
// attempts a dispatch. Called by the visibility tracker on every off-to-on
// transition.
func (s *Scheduler) Reprioritize() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	var promoted, remaining []queueItem
	for _, item := range s.background {
		if s.isVisible(item.card) {
			promoted = append(promoted, item)
		} else {
			remaining = append(remaining, item)
		}
	}
	if len(promoted) > 0 {
		s.visible = append(s.visible, promoted...)
		s.background = remaining
	}
	count := len(promoted)
	s.mu.Unlock()

	if count > 0 {
		s.logger.Debug("promoted background items", logging.Int("count", count))
	}
	s.attemptDispatch()
}

// StartBatch primes the pipeline with maxConcurrent staggered dispatch
// attempts so an initial burst of enqueued work ramps up smoothly.
func (s *Scheduler) StartBatch() {
	for i := 0; i < s.maxConcurrent; i++ {
		delay := time.Duration(i) * s.stagger
		if delay == 0 {
			s.attemptDispatch()
			continue
		}
		time.AfterFunc(delay, s.attemptDispatch)
	}
}

// Stop prevents further dispatch and waits for in-flight tasks to finish.
// Queued items are discarded; in-flight tasks run to completion.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.visible = nil
	s.background = nil
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// ActiveCount returns the number of in-flight tasks.
func (s *Scheduler) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// QueueDepths returns the current visible and background queue lengths.
func (s *Scheduler) QueueDepths() (visible, background int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visible), len(s.background)
}

// attemptDispatch pops at most one item, preferring the visible queue, and
// runs it when a slot is free. Completion frees the slot and schedules the
// next attempt after the stagger delay, smoothing completion bursts into a
// steady trickle.
func (s *Scheduler) attemptDispatch() {
	s.mu.Lock()
	if s.closed || s.active >= s.maxConcurrent {
		s.mu.Unlock()
		return
	}

	var item queueItem
	switch {
	case len(s.visible) > 0:
		item = s.visible[0]
		s.visible = s.visible[1:]
	case len(s.background) > 0:
		item = s.background[0]
		s.background = s.background[1:]
	default:
		s.mu.Unlock()
		return
	}

	s.active++
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(item)
}

func (s *Scheduler) run(item queueItem) {
	defer s.wg.Done()

	if err := item.task(s.ctx); err != nil {
		s.logger.Warn("task failed",
			logging.String(logging.FieldCardID, item.card.ID()),
			logging.Error(err))
	}

	s.mu.Lock()
	s.active--
	delete(s.members, item.card.ID())
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return
	}
	if s.stagger == 0 {
		s.attemptDispatch()
		return
	}
	time.AfterFunc(s.stagger, s.attemptDispatch)
}

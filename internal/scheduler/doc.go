// Package scheduler dispatches card fetch tasks under a global concurrency
// ceiling, preferring visible-card work over background work.
//
// Two FIFO queues hold pending items. Enqueue routes by current visibility;
// Reprioritize migrates background items whose cards scrolled into view,
// preserving relative order. Dispatch pops the visible head first and runs at
// most maxConcurrent tasks; each completion schedules the next attempt after
// a stagger delay so bursts of completions refill as a steady trickle.
//
// There is no preemption: a running task finishes even if its card leaves
// the viewport, and visibility changes only reorder queued work.
package scheduler

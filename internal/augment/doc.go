// Package augment wires the pipeline together: it scans the host surface
// for book cards, consults the metadata cache, schedules catalog fetches
// with visibility-aware priority, and hands results to a renderer. Change
// notifications from the host are debounced into periodic re-scans so new
// cards picked up later flow through the same path exactly once.
package augment

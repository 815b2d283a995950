// Package render abstracts how augmentation results reach the user: logged,
// recorded for a CLI summary, or discarded.
package render

// Package books defines the book query and metadata types shared across the
// augmentation pipeline, including the normalized cache key derivation.
package books

package queue

import "errors"

// Common queue storage errors
var (
	// ErrItemNotFound indicates that queue item was not found
	ErrItemNotFound = errors.New("queue item not found")

	// ErrSnapshotNotFound indicates that entity snapshot was not found
	ErrSnapshotNotFound = errors.New("entity snapshot not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidTransition indicates a forbidden item status transition
	ErrInvalidTransition = errors.New("invalid item status transition")

	// ErrInvalidItem indicates an item that cannot be enqueued
	ErrInvalidItem = errors.New("invalid queue item")
)

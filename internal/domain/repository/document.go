// Package repository defines the interfaces for the document-store side of the backend.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

// Subscription is a live-query registration held against the backend.
type Subscription interface {
	// Stop releases the registration. Once Stop returns no further callbacks are
	// delivered. Stop must not be called from inside one of the subscription's callbacks.
	Stop()
}

// InvalidDocument records a document that failed decoding or validation.
type InvalidDocument struct {
	ID  string
	Err error
}

// Snapshot is the full current set of documents delivered by a live-collection notification,
// split into decoded items and documents that were rejected.
type Snapshot[T any] struct {
	Items   []T
	Invalid []InvalidDocument
}

// SnapshotFunc receives every snapshot of a watched collection, in delivery order.
type SnapshotFunc[T any] func(snapshot Snapshot[T])

// ErrorFunc receives a terminal subscription failure. No snapshots follow it.
type ErrorFunc func(err error)

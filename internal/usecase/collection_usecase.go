package usecase

import (
	"context"

	"medapp/internal/domain/entity"
)

// CollectionPhase is where a live collection provider stands for the current identity.
type CollectionPhase string

const (
	// CollectionIdle means nobody is signed in.
	CollectionIdle    CollectionPhase = "idle"
	CollectionLoading CollectionPhase = "loading"
	CollectionReady   CollectionPhase = "ready"
)

// CollectionState is the observable projection of one user's collection.
type CollectionState[T any] struct {
	UID   string          `json:"uid,omitempty"`
	Items []T             `json:"items"`
	Count int             `json:"count"`
	Phase CollectionPhase `json:"phase"`

	// Stale is set while the live subscription is broken; Items holds the last known data.
	Stale bool   `json:"stale"`
	Err   string `json:"error,omitempty"`

	// InvalidIDs lists documents left out of Items because they failed validation.
	InvalidIDs []string `json:"invalidIds,omitempty"`
}

// CollectionUsecase projects a per-user backend collection that follows the signed-in identity.
type CollectionUsecase[T any] interface {
	// Start begins following the identity provider. It may be called once.
	Start(ctx context.Context) error

	// Current returns the latest state.
	Current() CollectionState[T]

	// Watch registers fn for state changes, starting with the current state.
	Watch(fn func(CollectionState[T])) (unsubscribe func())

	// Refresh drops the live subscription and opens a new one for the same identity.
	Refresh(ctx context.Context) error

	// Close tears down the subscription and stops following the identity provider.
	Close()
}

// CartUsecase is the live cart of the signed-in customer.
type CartUsecase = CollectionUsecase[entity.CartItem]

// WishlistUsecase is the live wishlist of the signed-in customer.
type WishlistUsecase = CollectionUsecase[entity.WishlistItem]

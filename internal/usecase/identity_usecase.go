// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"medapp/internal/domain/entity"
)

// IdentityPhase is where the identity provider stands in its lifecycle.
type IdentityPhase string

const (
	IdentityUninitialized IdentityPhase = "uninitialized"
	IdentityLoading       IdentityPhase = "loading"
	IdentitySignedIn      IdentityPhase = "signed_in"
	IdentitySignedOut     IdentityPhase = "signed_out"
)

// Rejection records why a signed-in principal was refused a session.
type Rejection struct {
	UID     string `json:"uid"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// IdentityState is the observable state of the identity provider.
// User is nil while signed out and while a new principal is being resolved.
type IdentityState struct {
	User      *entity.Identity `json:"user"`
	Loading   bool             `json:"loading"`
	Phase     IdentityPhase    `json:"phase"`
	Rejection *Rejection       `json:"rejection,omitempty"`
}

// IdentityUsecase is the single source of truth for who is signed in.
type IdentityUsecase interface {
	// Start registers the provider on the backend session stream. It may be called once.
	Start(ctx context.Context) error

	// Current returns the latest state.
	Current() IdentityState

	// Watch registers fn for state changes, starting with the current state.
	// fn must not call the returned unsubscribe function.
	Watch(fn func(IdentityState)) (unsubscribe func())

	// SignIn signs in with a password and waits until the provider has settled on the account.
	SignIn(ctx context.Context, email, password string) (*entity.Identity, error)

	// Logout signs out of the backend, clears the user, then navigates to the sign-in route.
	Logout(ctx context.Context) error

	// Close releases the session subscription and abandons in-flight resolutions.
	Close()
}

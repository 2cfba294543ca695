// Package service defines the ports to backend services that are not document storage.
package service

import (
	"context"

	"medapp/internal/domain/entity"
)

// AuthStateFunc is invoked with the signed-in principal, or nil once signed out.
type AuthStateFunc func(principal *entity.Principal)

// AuthService is the backend's session authority.
type AuthService interface {
	// OnAuthStateChanged registers fn on the session-state stream. fn first receives the
	// current state, then every change, one call at a time and in order. The returned
	// function unregisters fn.
	OnAuthStateChanged(fn AuthStateFunc) (unsubscribe func())

	// SignInWithPassword establishes a session. The stream reports the new principal.
	SignInWithPassword(ctx context.Context, email, password string) (*entity.Principal, error)

	// SignOut ends the current session. The stream reports nil once it succeeds.
	SignOut(ctx context.Context) error
}

// NewAccount describes an auth account to create.
type NewAccount struct {
	Email       string
	Password    string
	DisplayName string
}

// AccountService manages backend auth accounts.
type AccountService interface {
	// CreateAccount creates an account and returns its principal.
	CreateAccount(ctx context.Context, account NewAccount) (*entity.Principal, error)

	// DeleteAccount removes an account by uid.
	DeleteAccount(ctx context.Context, uid string) error
}

package repository

import (
	"context"
	"errors"

	"medapp/internal/domain/entity"
)

// ErrProfileNotFound is returned when no profile document exists for a uid.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository reads customer profile documents.
type ProfileRepository interface {
	// FindProfile fetches the profile document keyed by uid.
	FindProfile(ctx context.Context, uid string) (*entity.UserProfile, error)
}

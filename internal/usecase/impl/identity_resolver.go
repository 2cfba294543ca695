package impl

import (
	"context"
	"log/slog"

	"medapp/internal/domain/entity"
	domainerrors "medapp/internal/domain/errors"
	"medapp/internal/domain/repository"

	"github.com/pkg/errors"
)

// IdentityResolver turns a principal from the session stream into a session identity.
// A returned error rejects the principal: the provider signs it out and keeps the user empty.
type IdentityResolver interface {
	Resolve(ctx context.Context, principal *entity.Principal) (*entity.Identity, error)
}

// ProfileResolver hydrates customer identities from their profile document.
// It never rejects; a missing or unreadable profile leaves the minimal identity.
type ProfileResolver struct {
	profiles repository.ProfileRepository
	logger   *slog.Logger
}

// NewProfileResolver is the constructor for ProfileResolver.
func NewProfileResolver(profiles repository.ProfileRepository, logger *slog.Logger) *ProfileResolver {
	return &ProfileResolver{
		profiles: profiles,
		logger:   logger,
	}
}

// Resolve implements IdentityResolver.
func (r *ProfileResolver) Resolve(ctx context.Context, principal *entity.Principal) (*entity.Identity, error) {
	identity := entity.NewIdentity(principal)

	profile, err := r.profiles.FindProfile(ctx, principal.UID)
	switch {
	case err == nil:
		return identity.WithProfile(profile), nil
	case errors.Is(err, repository.ErrProfileNotFound):
		r.logger.Debug("No profile document, using minimal identity", slog.String("uid", principal.UID))
	case errors.Is(ctx.Err(), context.Canceled):
		// superseded by a newer principal
		r.logger.Debug("Profile fetch abandoned", slog.String("uid", principal.UID), slog.Any("error", err))
	default:
		r.logger.Warn("Profile fetch failed, using minimal identity",
			slog.String("uid", principal.UID),
			slog.Any("error", err),
		)
	}

	return identity, nil
}

// SellerResolver admits only principals with an approved seller record.
type SellerResolver struct {
	sellers repository.SellerRepository
	logger  *slog.Logger
}

// NewSellerResolver is the constructor for SellerResolver.
func NewSellerResolver(sellers repository.SellerRepository, logger *slog.Logger) *SellerResolver {
	return &SellerResolver{
		sellers: sellers,
		logger:  logger,
	}
}

// Resolve implements IdentityResolver. Every failure rejects.
func (r *SellerResolver) Resolve(ctx context.Context, principal *entity.Principal) (*entity.Identity, error) {
	seller, err := r.sellers.FindSeller(ctx, principal.UID)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return nil, errors.Wrap(domainerrors.ErrSellerNotFound, principal.UID)
		}

		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, domainerrors.NewBackendError(errors.Wrap(err, "fetch seller record"), principal.UID)
	}

	if !seller.Approved {
		r.logger.Info("Seller not approved yet", slog.String("uid", principal.UID))

		return nil, errors.Wrap(domainerrors.ErrSellerNotApproved, principal.UID)
	}

	return seller.Identity(principal), nil
}

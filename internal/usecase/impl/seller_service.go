package impl

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"medapp/config"
	deliverycontext "medapp/internal/delivery/context"
	"medapp/internal/domain/entity"
	domainerrors "medapp/internal/domain/errors"
	"medapp/internal/domain/lifecycle"
	"medapp/internal/domain/repository"
	"medapp/internal/domain/service"
	"medapp/internal/infra/document"
	"medapp/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sellerService implements the SellerUsecase interface.
type sellerService struct {
	accounts service.AccountService
	sellers  repository.SellerRepository
	storage  service.ObjectStorage
	logger   *slog.Logger

	licensePrefix  string
	maxLicenseSize int64
	now            func() time.Time
}

// NewSellerService is the constructor for sellerService.
func NewSellerService(
	accounts service.AccountService,
	sellers repository.SellerRepository,
	storage service.ObjectStorage,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.SellerUsecase {
	return &sellerService{
		accounts:       accounts,
		sellers:        sellers,
		storage:        storage,
		logger:         logger,
		licensePrefix:  cfg.Storage.LicensePrefix,
		maxLicenseSize: cfg.Storage.MaxLicenseSize,
		now:            time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sellerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterSeller implements usecase.SellerUsecase.
func (srv *sellerService) RegisterSeller(ctx context.Context, input usecase.RegisterSellerInput) (*entity.Seller, error) {
	if err := document.Validator().Struct(input); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}
	if len(input.License.Data) == 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "license file is empty")
	}
	if srv.maxLicenseSize > 0 && int64(len(input.License.Data)) > srv.maxLicenseSize {
		return nil, errors.Wrapf(domainerrors.ErrLicenseTooLarge, "%d bytes", len(input.License.Data))
	}

	// 1. Create the auth account
	principal, err := srv.accounts.CreateAccount(ctx, service.NewAccount{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.Name,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create seller account")
	}
	srv.log(ctx).Info("Seller account created", slog.String("uid", principal.UID))

	// 2. Store the license under the new uid
	key := path.Join(srv.licensePrefix, principal.UID, uuid.NewString()+strings.ToLower(filepath.Ext(input.License.Filename)))
	licenseURL, err := srv.storage.Upload(ctx, key, input.License.Data, input.License.ContentType)
	if err != nil {
		srv.compensate(ctx, principal.UID, "")

		return nil, errors.Wrap(err, "failed to upload license")
	}

	// 3. Write the seller record, unapproved until reviewed
	seller := &entity.Seller{
		ID:            principal.UID,
		Name:          input.Name,
		Email:         input.Email,
		PharmacyName:  input.PharmacyName,
		Address:       input.Address,
		LicenseNumber: input.LicenseNumber,
		LicenseURL:    licenseURL,
		Approved:      false,
		CreatedAt:     srv.now().UTC(),
	}
	if err := srv.sellers.CreateSeller(ctx, seller); err != nil {
		srv.compensate(ctx, principal.UID, key)

		return nil, errors.Wrap(err, "failed to create seller record")
	}

	srv.log(ctx).Info("Seller registered, awaiting approval",
		slog.String("uid", seller.ID),
		slog.String("pharmacy", seller.PharmacyName),
	)

	return seller, nil
}

// compensate undoes a partial registration so the email can be reused.
func (srv *sellerService) compensate(ctx context.Context, uid, licenseKey string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
	defer cancel()

	if licenseKey != "" {
		if err := srv.storage.Delete(ctx, licenseKey); err != nil {
			srv.log(ctx).Error("Failed to delete orphaned license", slog.String("key", licenseKey), slog.Any("error", err))
		}
	}
	if err := srv.accounts.DeleteAccount(ctx, uid); err != nil {
		srv.log(ctx).Error("Failed to delete orphaned seller account", slog.String("uid", uid), slog.Any("error", err))
	}
}

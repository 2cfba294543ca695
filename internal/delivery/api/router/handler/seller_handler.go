package handler

import (
	"io"
	"log/slog"
	"net/http"

	"medapp/config"
	"medapp/internal/delivery/api/response"
	domainerrors "medapp/internal/domain/errors"
	"medapp/internal/usecase"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// licenseField is the multipart field carrying the license file
const licenseField = "license"

// SellerHandlerParams holds dependencies for SellerHandler, injected by Fx.
type SellerHandlerParams struct {
	fx.In

	SellerUC usecase.SellerUsecase
	Config   *config.Config
	Logger   *slog.Logger
}

// SellerHandler handles seller registration
type SellerHandler struct {
	sellerUC       usecase.SellerUsecase
	maxLicenseSize int64
	logger         *slog.Logger
}

// NewSellerHandler is the constructor for SellerHandler
func NewSellerHandler(params SellerHandlerParams) *SellerHandler {
	return &SellerHandler{
		sellerUC:       params.SellerUC,
		maxLicenseSize: params.Config.Storage.MaxLicenseSize,
		logger:         params.Logger,
	}
}

// RegisterSeller handles the multipart seller sign-up form
func (h *SellerHandler) RegisterSeller(c echo.Context) error {
	var input usecase.RegisterSellerInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid registration form")
	}

	license, err := h.readLicense(c)
	if err != nil {
		return err
	}
	input.License = license

	seller, err := h.sellerUC.RegisterSeller(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, seller)
}

// readLicense loads the uploaded file, trusting its bytes rather than the declared type.
func (h *SellerHandler) readLicense(c echo.Context) (*usecase.LicenseFile, error) {
	header, err := c.FormFile(licenseField)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "license file is required")
	}
	if h.maxLicenseSize > 0 && header.Size > h.maxLicenseSize {
		return nil, errors.Wrapf(domainerrors.ErrLicenseTooLarge, "%d bytes", header.Size)
	}

	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open license upload")
	}
	defer file.Close()

	reader := io.Reader(file)
	if h.maxLicenseSize > 0 {
		reader = io.LimitReader(file, h.maxLicenseSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read license upload")
	}

	return &usecase.LicenseFile{
		Filename:    header.Filename,
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}

package usecase

import (
	"context"

	"medapp/internal/domain/entity"
)

// LicenseFile is the uploaded pharmacy license.
type LicenseFile struct {
	Filename    string `validate:"required"`
	ContentType string `validate:"required,oneof=application/pdf image/png image/jpeg image/webp"`
	Data        []byte `validate:"required"`
}

// RegisterSellerInput is what the seller sign-up form submits.
type RegisterSellerInput struct {
	Name          string       `json:"name" form:"name" validate:"required,max=120"`
	Email         string       `json:"email" form:"email" validate:"required,email"`
	Password      string       `json:"password" form:"password" validate:"required,min=6"`
	PharmacyName  string       `json:"pharmacyName" form:"pharmacyName" validate:"required,max=200"`
	Address       string       `json:"address" form:"address" validate:"required"`
	LicenseNumber string       `json:"licenseNumber" form:"licenseNumber" validate:"required"`
	License       *LicenseFile `json:"-" form:"-" validate:"required"`
}

// SellerUsecase registers seller accounts.
type SellerUsecase interface {
	// RegisterSeller creates the account, stores the license and writes an unapproved seller record.
	RegisterSeller(ctx context.Context, input RegisterSellerInput) (*entity.Seller, error)
}

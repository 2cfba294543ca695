package repository

import (
	"context"
	"errors"

	"medapp/internal/domain/entity"
)

// ErrSellerNotFound is returned when no seller document exists for a uid.
var ErrSellerNotFound = errors.New("seller not found")

// SellerRepository defines the operations on seller records.
type SellerRepository interface {
	// FindSeller fetches the seller document keyed by uid.
	FindSeller(ctx context.Context, uid string) (*entity.Seller, error)

	// CreateSeller writes a new seller document under seller.ID. An existing document is
	// never overwritten: the call fails with the domain ErrAccountAlreadyExists.
	CreateSeller(ctx context.Context, seller *entity.Seller) error

	// DeleteSeller removes the seller document keyed by uid.
	DeleteSeller(ctx context.Context, uid string) error
}

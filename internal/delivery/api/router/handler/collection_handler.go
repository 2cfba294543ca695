package handler

import (
	"net/http"

	"medapp/internal/delivery/api/response"
	"medapp/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CollectionHandlerParams holds dependencies for CollectionHandler, injected by Fx.
type CollectionHandlerParams struct {
	fx.In

	CartUC     usecase.CartUsecase
	WishlistUC usecase.WishlistUsecase
}

// CollectionHandler exposes the live cart and wishlist
type CollectionHandler struct {
	cartUC     usecase.CartUsecase
	wishlistUC usecase.WishlistUsecase
}

// NewCollectionHandler is the constructor for CollectionHandler
func NewCollectionHandler(params CollectionHandlerParams) *CollectionHandler {
	return &CollectionHandler{
		cartUC:     params.CartUC,
		wishlistUC: params.WishlistUC,
	}
}

// GetCart returns the cart state
func (h *CollectionHandler) GetCart(c echo.Context) error {
	return response.OK(c, h.cartUC.Current())
}

// RefreshCart reopens the cart subscription
func (h *CollectionHandler) RefreshCart(c echo.Context) error {
	if err := h.cartUC.Refresh(c.Request().Context()); err != nil {
		return err
	}

	return response.Success(c, http.StatusAccepted, h.cartUC.Current())
}

// GetWishlist returns the wishlist state
func (h *CollectionHandler) GetWishlist(c echo.Context) error {
	return response.OK(c, h.wishlistUC.Current())
}

// RefreshWishlist reopens the wishlist subscription
func (h *CollectionHandler) RefreshWishlist(c echo.Context) error {
	if err := h.wishlistUC.Refresh(c.Request().Context()); err != nil {
		return err
	}

	return response.Success(c, http.StatusAccepted, h.wishlistUC.Current())
}

package repository

import (
	"context"

	"medapp/internal/domain/entity"
)

// CartRepository observes a customer's cart collection.
type CartRepository interface {
	// WatchCart subscribes to the cart of uid. onSnapshot fires with the full current
	// cart on every change; onError fires at most once when the subscription breaks.
	WatchCart(ctx context.Context, uid string, onSnapshot SnapshotFunc[entity.CartItem], onError ErrorFunc) (Subscription, error)
}

// WishlistRepository observes a customer's wishlist collection.
type WishlistRepository interface {
	// WatchWishlist subscribes to the wishlist of uid with the same contract as WatchCart.
	WatchWishlist(ctx context.Context, uid string, onSnapshot SnapshotFunc[entity.WishlistItem], onError ErrorFunc) (Subscription, error)
}

// Package router contains routing for the local HTTP API.
package router

import (
	"medapp/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers to register. The collection and seller handlers are
// only present in the app that provides their usecases.
type RouterParams struct {
	fx.In

	SessionHandler    *handler.SessionHandler
	EventsHandler     *handler.EventsHandler
	CollectionHandler *handler.CollectionHandler `optional:"true"`
	SellerHandler     *handler.SellerHandler     `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler    *handler.SessionHandler
	eventsHandler     *handler.EventsHandler
	collectionHandler *handler.CollectionHandler
	sellerHandler     *handler.SellerHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler:    params.SessionHandler,
		eventsHandler:     params.EventsHandler,
		collectionHandler: params.CollectionHandler,
		sellerHandler:     params.SellerHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")

	sessionGroup := apiV1.Group("/session")
	{
		sessionGroup.GET("", r.sessionHandler.GetSession)
		sessionGroup.POST("", r.sessionHandler.SignIn)
		sessionGroup.DELETE("", r.sessionHandler.Logout)
	}

	apiV1.GET("/events", r.eventsHandler.Stream)

	if r.collectionHandler != nil {
		apiV1.GET("/cart", r.collectionHandler.GetCart)
		apiV1.POST("/cart/refresh", r.collectionHandler.RefreshCart)
		apiV1.GET("/wishlist", r.collectionHandler.GetWishlist)
		apiV1.POST("/wishlist/refresh", r.collectionHandler.RefreshWishlist)
	}

	if r.sellerHandler != nil {
		apiV1.POST("/sellers", r.sellerHandler.RegisterSeller)
	}
}

package main

import (
	"context"
	"log/slog"
	"os"

	"medapp/config"
	"medapp/internal/delivery"
	"medapp/internal/delivery/api"
	"medapp/internal/delivery/api/router/handler"
	"medapp/internal/infra/backend"
	logs "medapp/internal/infra/log"
	"medapp/internal/usecase"
	"medapp/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

type startProvidersParams struct {
	fx.In

	Lc         fx.Lifecycle
	IdentityUC usecase.IdentityUsecase
	CartUC     usecase.CartUsecase
	WishlistUC usecase.WishlistUsecase
	Logger     *slog.Logger
}

func main() {
	fx.New(
		injectInfra(),
		backend.Module,
		injectUsecase(),
		injectHandler(),
		api.Module,
		fx.Invoke(
			startProviders,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				impl.NewProfileResolver,
				fx.As(new(impl.IdentityResolver)),
			),
			impl.NewIdentityProvider,
			impl.NewCartProvider,
			impl.NewWishlistProvider,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
			handler.NewCollectionHandler,
			handler.NewEventsHandler,
		),
	)
}

// startProviders starts the collections before the identity provider so they see its first state.
func startProviders(params startProvidersParams) {
	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := params.CartUC.Start(ctx); err != nil {
				return err
			}
			if err := params.WishlistUC.Start(ctx); err != nil {
				return err
			}

			return params.IdentityUC.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing providers")
			params.CartUC.Close()
			params.WishlistUC.Close()
			params.IdentityUC.Close()

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

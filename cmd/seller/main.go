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

func main() {
	fx.New(
		injectInfra(),
		backend.Module,
		injectUsecase(),
		injectHandler(),
		api.Module,
		fx.Invoke(
			startIdentity,
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
			// only approved sellers hold a session in this app
			fx.Annotate(
				impl.NewSellerResolver,
				fx.As(new(impl.IdentityResolver)),
			),
			impl.NewIdentityProvider,
			impl.NewSellerService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
			handler.NewSellerHandler,
			handler.NewEventsHandler,
		),
	)
}

func startIdentity(lc fx.Lifecycle, identityUC usecase.IdentityUsecase, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: identityUC.Start,
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing identity provider")
			identityUC.Close()

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

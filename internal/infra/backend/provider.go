// Package backend selects the backend adapters for the configured provider.
package backend

import (
	"context"
	"log/slog"

	"medapp/config"
	"medapp/internal/domain/repository"
	"medapp/internal/domain/service"
	"medapp/internal/infra/firebase"
	"medapp/internal/infra/memory"
	"medapp/internal/infra/navigation"
	"medapp/internal/infra/storage"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the backend adapters, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// Ports groups the adapters the usecases depend on
type Ports struct {
	fx.Out

	Auth      service.AuthService
	Accounts  service.AccountService
	Profiles  repository.ProfileRepository
	Sellers   repository.SellerRepository
	Carts     repository.CartRepository
	Wishlists repository.WishlistRepository
}

// NewPorts creates the backend adapters based on configuration
func NewPorts(params Params) (Ports, error) {
	switch params.Config.Backend.Provider {
	case config.BackendMemory:
		return newMemoryPorts(params)
	case config.BackendFirebase:
		return newFirebasePorts(params)
	default:
		return Ports{}, errors.Errorf("unknown backend provider: %s", params.Config.Backend.Provider)
	}
}

func newMemoryPorts(params Params) (Ports, error) {
	logger := params.Logger
	b := memory.New(params.Config.Collections, logger)

	if seedPath := params.Config.Backend.Memory.SeedPath; seedPath != "" {
		seed, err := memory.LoadSeedFile(seedPath)
		if err != nil {
			return Ports{}, err
		}
		if err := seed.Apply(b); err != nil {
			return Ports{}, err
		}
		logger.Info("Memory backend seeded",
			slog.String("path", seedPath),
			slog.Int("accounts", len(seed.Accounts)),
		)
	}
	logger.Info("Using in-process memory backend")

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing memory backend")
			b.Close()

			return nil
		},
	})

	return Ports{
		Auth:      b,
		Accounts:  b,
		Profiles:  b,
		Sellers:   b,
		Carts:     b,
		Wishlists: b,
	}, nil
}

func newFirebasePorts(params Params) (Ports, error) {
	cfg := params.Config.Firebase
	logger := params.Logger
	if cfg == nil || cfg.ProjectID == "" {
		return Ports{}, errors.New("firebase project ID is required for firebase provider")
	}
	if cfg.APIKey == "" && cfg.AuthEmulatorHost == "" {
		return Ports{}, errors.New("firebase API key is required outside the auth emulator")
	}

	clients, err := firebase.NewClients(params.Ctx, cfg, logger)
	if err != nil {
		return Ports{}, err
	}
	authService, err := firebase.NewAuthService(params.Ctx, clients.Auth, cfg, logger)
	if err != nil {
		_ = clients.Close()

		return Ports{}, err
	}
	store := firebase.NewStore(clients.Firestore, params.Config.Collections, logger)

	logger.Info("Using Firebase backend", slog.String("project_id", cfg.ProjectID))

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing Firebase clients")
			authService.Close()

			return clients.Close()
		},
	})

	return Ports{
		Auth:      authService,
		Accounts:  authService,
		Profiles:  store,
		Sellers:   store,
		Carts:     store,
		Wishlists: store,
	}, nil
}

// NewObjectStorage opens the configured bucket
func NewObjectStorage(params Params) (service.ObjectStorage, error) {
	cfg := params.Config.Storage
	bucketURL := cfg.BucketURL
	if bucketURL == "" && params.Config.Firebase != nil && params.Config.Firebase.StorageBucket != "" {
		bucketURL = "gs://" + params.Config.Firebase.StorageBucket
	}
	if bucketURL == "" {
		return nil, errors.New("storage bucket URL is required")
	}

	objects, err := storage.OpenBucket(params.Ctx, bucketURL, cfg.PublicBaseURL, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing object storage")

			return objects.Close()
		},
	})

	return objects, nil
}

// NewNavigator creates the route holder, starting on the home route
func NewNavigator(params Params) *navigation.Router {
	router := navigation.NewRouter(params.Config.Navigation.HomeRoute, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			router.Close()

			return nil
		},
	})

	return router
}

// Module provides the backend FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		NewPorts,
		NewObjectStorage,
		NewNavigator,
		func(router *navigation.Router) service.Navigator { return router },
	),
)

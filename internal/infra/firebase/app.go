// Package firebase adapts the hosted Firebase backend (Auth, Firestore) to the domain ports.
package firebase

import (
	"context"
	"log/slog"
	"os"

	"medapp/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

const (
	authEmulatorEnv      = "FIREBASE_AUTH_EMULATOR_HOST"
	firestoreEmulatorEnv = "FIRESTORE_EMULATOR_HOST"
)

// Clients holds the process-wide Firebase handles.
type Clients struct {
	App       *firebase.App
	Auth      *auth.Client
	Firestore *firestore.Client
}

// NewClients initializes the Firebase app and its Auth and Firestore clients.
// Emulator hosts from cfg are exported to the environment the SDKs read them from.
func NewClients(ctx context.Context, cfg *config.FirebaseConfig, logger *slog.Logger) (*Clients, error) {
	if cfg == nil {
		return nil, errors.New("firebase config is missing")
	}

	if cfg.AuthEmulatorHost != "" {
		if err := os.Setenv(authEmulatorEnv, cfg.AuthEmulatorHost); err != nil {
			return nil, errors.WithStack(err)
		}
		logger.Info("Using Firebase Auth emulator", slog.String("host", cfg.AuthEmulatorHost))
	}
	if cfg.FirestoreEmulatorHost != "" {
		if err := os.Setenv(firestoreEmulatorEnv, cfg.FirestoreEmulatorHost); err != nil {
			return nil, errors.WithStack(err)
		}
		logger.Info("Using Firestore emulator", slog.String("host", cfg.FirestoreEmulatorHost))
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get firestore client")
	}

	return &Clients{
		App:       app,
		Auth:      authClient,
		Firestore: firestoreClient,
	}, nil
}

// Close releases the Firestore connection. The Auth client holds no connection.
func (c *Clients) Close() error {
	return errors.WithStack(c.Firestore.Close())
}

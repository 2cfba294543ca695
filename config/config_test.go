package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  env: test
  serviceName: medapp
  log:
    level: debug
http:
  port: 8081
backend:
  provider: firebase
firebase:
  projectId: medapp-test
  apiKey: yaml-key
identity:
  profileFetchTimeout: 2s
collections:
  cart: carts/{uid}/items
`

func TestLoadWithEnv_YAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testYAML), 0o600))
	t.Chdir(dir)
	t.Setenv("FIREBASE_APIKEY", "env-key")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, BackendFirebase, cfg.Backend.Provider)
	require.NotNil(t, cfg.Firebase)
	assert.Equal(t, "medapp-test", cfg.Firebase.ProjectID)
	assert.Equal(t, "env-key", cfg.Firebase.APIKey)
	assert.Equal(t, 2*time.Second, cfg.Identity.ProfileFetchTimeout)
	assert.Equal(t, "carts/{uid}/items", cfg.Collections.Cart)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	assert.ErrorContains(t, err, "config.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, BackendMemory, cfg.Backend.Provider)
	assert.Equal(t, "users/{uid}/cart", cfg.Collections.Cart)
	assert.Equal(t, "users/{uid}/wishlist", cfg.Collections.Wishlist)
	assert.Equal(t, "sellers", cfg.Collections.Sellers)
	assert.Equal(t, time.Second, cfg.Collections.Retry.InitialBackoff)
	assert.Equal(t, 5*time.Second, cfg.Identity.ProfileFetchTimeout)
	assert.Equal(t, "mem://", cfg.Storage.BucketURL)
	assert.Equal(t, "/login", cfg.Navigation.SignInRoute)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "firebase without section",
			cfg:     Config{Backend: BackendConfig{Provider: BackendFirebase}},
			wantErr: "firebase section is missing",
		},
		{
			name:    "firebase without api key",
			cfg:     Config{Backend: BackendConfig{Provider: BackendFirebase}, Firebase: &FirebaseConfig{}},
			wantErr: "firebase.apiKey is required",
		},
		{
			name: "firebase emulator without api key",
			cfg:  Config{Backend: BackendConfig{Provider: BackendFirebase}, Firebase: &FirebaseConfig{AuthEmulatorHost: "localhost:9099"}},
		},
		{
			name:    "unknown provider",
			cfg:     Config{Backend: BackendConfig{Provider: "sqlite"}},
			wantErr: "unknown backend provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCollectionPath(t *testing.T) {
	assert.Equal(t, "users/u1/cart", CollectionPath("users/{uid}/cart", "u1"))
	assert.Equal(t, "sellers", CollectionPath("sellers", "u1"))
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "12MB"

	// BackendFirebase selects the hosted Firebase backend.
	BackendFirebase = "firebase"
	// BackendMemory selects the in-process backend used for local runs.
	BackendMemory = "memory"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Backend selects and configures the document/auth backend
	Backend BackendConfig `json:"backend" yaml:"backend"`

	// Firebase configuration for the hosted backend
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// Collections names the backend collections the providers read
	Collections CollectionsConfig `json:"collections" yaml:"collections"`

	// Identity configuration for the identity provider
	Identity IdentityConfig `json:"identity" yaml:"identity"`

	// Storage configuration for uploaded files
	Storage StorageConfig `json:"storage" yaml:"storage"`

	// Navigation routes used by session side effects
	Navigation NavigationConfig `json:"navigation" yaml:"navigation"`
}

// BackendConfig selects the backend implementation
type BackendConfig struct {
	// Provider type: "firebase" for the hosted backend or "memory" for the in-process one
	Provider string `json:"provider" yaml:"provider"`

	Memory struct {
		// Optional YAML file with accounts and documents to preload
		SeedPath string `json:"seedPath" yaml:"seedPath"`
	} `json:"memory" yaml:"memory"`
}

// FirebaseConfig defines Firebase configuration for auth, Firestore and storage
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`

	// Web API key used for password sign-in through the Identity Toolkit API
	APIKey string `json:"apiKey" yaml:"apiKey"`

	// Identity Toolkit base URL, overridden when AuthEmulatorHost is set
	AuthEndpoint string `json:"authEndpoint" yaml:"authEndpoint"`

	// Emulator hosts (host:port); empty means production
	AuthEmulatorHost      string `json:"authEmulatorHost" yaml:"authEmulatorHost"`
	FirestoreEmulatorHost string `json:"firestoreEmulatorHost" yaml:"firestoreEmulatorHost"`

	StorageBucket string `json:"storageBucket" yaml:"storageBucket"`

	// Revoke the user's refresh tokens on sign-out, ending their sessions on every device
	RevokeOnSignOut bool `json:"revokeOnSignOut" yaml:"revokeOnSignOut"`
}

// CollectionsConfig names collections; "{uid}" is replaced with the signed-in uid
type CollectionsConfig struct {
	Profiles string `json:"profiles" yaml:"profiles"`
	Sellers  string `json:"sellers" yaml:"sellers"`
	Cart     string `json:"cart" yaml:"cart"`
	Wishlist string `json:"wishlist" yaml:"wishlist"`

	Retry struct {
		InitialBackoff time.Duration `json:"initialBackoff" yaml:"initialBackoff"`
		MaxBackoff     time.Duration `json:"maxBackoff" yaml:"maxBackoff"`
	} `json:"retry" yaml:"retry"`
}

// IdentityConfig defines identity provider timing
type IdentityConfig struct {
	// Upper bound for the profile or seller record fetch after sign-in
	ProfileFetchTimeout time.Duration `json:"profileFetchTimeout" yaml:"profileFetchTimeout"`

	// Upper bound for SignIn to wait until the session settles
	SignInTimeout time.Duration `json:"signInTimeout" yaml:"signInTimeout"`
}

// StorageConfig defines object storage for uploaded files
type StorageConfig struct {
	// gocloud.dev bucket URL, e.g. gs://bucket, file:///tmp/medapp, mem://
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// Public base URL prepended to object keys; empty means the bucket URL is used
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`

	LicensePrefix  string `json:"licensePrefix" yaml:"licensePrefix"`
	MaxLicenseSize int64  `json:"maxLicenseSize" yaml:"maxLicenseSize"`
}

// NavigationConfig names the routes session changes navigate to
type NavigationConfig struct {
	SignInRoute string `json:"signInRoute" yaml:"signInRoute"`
	HomeRoute   string `json:"homeRoute" yaml:"homeRoute"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: FIREBASE_APIKEY -> firebase.apiKey (not firebase.apikey)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Backend.Provider == "" {
		cfg.Backend.Provider = BackendMemory
	}
	if cfg.Collections.Profiles == "" {
		cfg.Collections.Profiles = "users"
	}
	if cfg.Collections.Sellers == "" {
		cfg.Collections.Sellers = "sellers"
	}
	if cfg.Collections.Cart == "" {
		cfg.Collections.Cart = "users/{uid}/cart"
	}
	if cfg.Collections.Wishlist == "" {
		cfg.Collections.Wishlist = "users/{uid}/wishlist"
	}
	if cfg.Collections.Retry.InitialBackoff <= 0 {
		cfg.Collections.Retry.InitialBackoff = time.Second
	}
	if cfg.Collections.Retry.MaxBackoff <= 0 {
		cfg.Collections.Retry.MaxBackoff = 30 * time.Second
	}
	if cfg.Identity.ProfileFetchTimeout <= 0 {
		cfg.Identity.ProfileFetchTimeout = 5 * time.Second
	}
	if cfg.Identity.SignInTimeout <= 0 {
		cfg.Identity.SignInTimeout = 15 * time.Second
	}
	if cfg.Storage.BucketURL == "" {
		cfg.Storage.BucketURL = "mem://"
	}
	if cfg.Storage.LicensePrefix == "" {
		cfg.Storage.LicensePrefix = "licenses"
	}
	if cfg.Storage.MaxLicenseSize <= 0 {
		cfg.Storage.MaxLicenseSize = 10 << 20
	}
	if cfg.Navigation.SignInRoute == "" {
		cfg.Navigation.SignInRoute = "/login"
	}
	if cfg.Navigation.HomeRoute == "" {
		cfg.Navigation.HomeRoute = "/"
	}
}

// Validate checks cross-field requirements that defaults cannot fill in.
func (cfg *Config) Validate() error {
	switch cfg.Backend.Provider {
	case BackendMemory:
	case BackendFirebase:
		if cfg.Firebase == nil {
			return errors.New("backend.provider is firebase but the firebase section is missing")
		}
		if cfg.Firebase.APIKey == "" && cfg.Firebase.AuthEmulatorHost == "" {
			return errors.New("firebase.apiKey is required outside the auth emulator")
		}
	default:
		return errors.Errorf("unknown backend provider: %s", cfg.Backend.Provider)
	}

	return nil
}

// CollectionPath expands the "{uid}" placeholder of a collection template.
func CollectionPath(template, uid string) string {
	return strings.ReplaceAll(template, "{uid}", uid)
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/folio/internal/backend/cdn"
	"github.com/aussiebroadwan/folio/pkg/envx"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
)

// Verifier modes.
const (
	VerifierLocal  = "local"
	VerifierRemote = "remote"
)

// Store drivers.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

type Config struct {
	TokenServiceURL     string        // Base URL of the token service (default: http://localhost:4000)
	TokenServiceKey     string        // Optional: X-Service-Key sent to the token service
	TokenServiceTimeout time.Duration // Timeout of each token service call (default: 5s)
	VerifierMode        string        // local or remote (default: local)
	AccessSecret        string        // Required in local mode: access token secret shared with the token service
	Issuer              string        // Optional: expected iss claim (default: folio-token)

	StoreDriver   string // mongo or sqlite (default: mongo)
	MongoURI      string // MongoDB connection string (default: mongodb://localhost:27017)
	MongoDatabase string // MongoDB database name (default: folio)
	DatabaseFile  string // SQLite database file path (default: data/folio.db)
	PepperFile    string // Path to pepper file for password hashing (default: data/pepper)

	RedisURL string // Optional: redis:// URL of the revocation list

	CDNBucket      string // Optional: avatar bucket; uploads are disabled without it
	CDNRegion      string // Bucket region (default: us-east-1)
	CDNEndpoint    string // Optional: S3 compatible endpoint
	CDNPublicURL   string // Optional: public base URL of the bucket
	MaxAvatarBytes int64  // Avatar size limit (default: 5 MiB)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the environment, after loading DOTENV_PATH (default .env)
// when it exists.
func LoadConfig() (Config, error) {
	if err := envx.LoadDotenv(envx.String("DOTENV_PATH", ".env")); err != nil {
		return Config{}, err
	}

	cfg := Config{
		TokenServiceURL:     envx.String("TOKEN_SERVICE_URL", "http://localhost:4000"),
		TokenServiceKey:     envx.String("TOKEN_SERVICE_API_KEY", ""),
		TokenServiceTimeout: envx.Duration("TOKEN_SERVICE_TIMEOUT", 5*time.Second),
		VerifierMode:        envx.String("VERIFIER_MODE", VerifierLocal),
		AccessSecret:        envx.String("ACCESS_TOKEN_SECRET", ""),
		Issuer:              envx.String("TOKEN_ISSUER", "folio-token"),

		StoreDriver:   envx.String("STORE_DRIVER", DriverMongo),
		MongoURI:      envx.String("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: envx.String("MONGO_DATABASE", "folio"),
		DatabaseFile:  envx.String("DATABASE_FILE", "data/folio.db"),
		PepperFile:    envx.String("PEPPER_FILE", "data/pepper"),

		RedisURL: envx.String("REDIS_URL", ""),

		CDNBucket:      envx.String("CDN_BUCKET", ""),
		CDNRegion:      envx.String("CDN_REGION", "us-east-1"),
		CDNEndpoint:    envx.String("CDN_ENDPOINT", ""),
		CDNPublicURL:   envx.String("CDN_PUBLIC_URL", ""),
		MaxAvatarBytes: envx.Int64("MAX_AVATAR_BYTES", cdn.DefaultMaxBytes),

		Env:                 envx.String("ENV", "dev"),
		LogLevel:            envx.String("LOG_LEVEL", "info"),
		LogFormat:           envx.String("LOG_FORMAT", "json"),
		Port:                envx.Int("PORT", 8080),
		ShutdownGracePeriod: envx.Duration("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg, cfg.Validate()
}

// SecureCookies reports whether the refresh cookie is marked Secure.
func (c Config) SecureCookies() bool {
	return c.Env == "prod"
}

// CDN returns the bucket settings, or false when uploads are disabled.
func (c Config) CDN() (cdn.Config, bool) {
	if c.CDNBucket == "" {
		return cdn.Config{}, false
	}
	return cdn.Config{
		Bucket:    c.CDNBucket,
		Region:    c.CDNRegion,
		Endpoint:  c.CDNEndpoint,
		PublicURL: c.CDNPublicURL,
		MaxBytes:  c.MaxAvatarBytes,
	}, true
}

func (c Config) Validate() error {
	if c.TokenServiceURL == "" {
		return errors.New("config: TOKEN_SERVICE_URL is required")
	}
	if c.TokenServiceTimeout <= 0 {
		return fmt.Errorf("config: invalid TOKEN_SERVICE_TIMEOUT %s", c.TokenServiceTimeout)
	}

	switch c.VerifierMode {
	case VerifierLocal:
		if c.AccessSecret == "" {
			return errors.New("config: ACCESS_TOKEN_SECRET is required when VERIFIER_MODE=local")
		}
		if len(c.AccessSecret) < jwtx.MinSecretLength {
			return fmt.Errorf("config: ACCESS_TOKEN_SECRET: %w", jwtx.ErrWeakSecret)
		}
	case VerifierRemote:
	default:
		return fmt.Errorf("config: unknown VERIFIER_MODE %q", c.VerifierMode)
	}

	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return errors.New("config: MONGO_URI and MONGO_DATABASE are required for the mongo driver")
		}
	case DriverSQLite:
		if c.DatabaseFile == "" {
			return errors.New("config: DATABASE_FILE is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.MaxAvatarBytes <= 0 {
		return fmt.Errorf("config: invalid MAX_AVATAR_BYTES %d", c.MaxAvatarBytes)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid PORT %d", c.Port)
	}
	return nil
}

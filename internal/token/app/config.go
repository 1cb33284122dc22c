package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/folio/pkg/envx"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
)

type Config struct {
	AccessSecret        string        // Required: HMAC secret for access tokens, at least 32 bytes
	RefreshSecret       string        // Required: HMAC secret for refresh tokens, distinct from AccessSecret
	Issuer              string        // Optional: iss claim stamped and enforced on tokens (default: folio-token)
	ServiceKey          string        // Optional: shared key required on the minting routes
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 4000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the environment, after loading DOTENV_PATH (default .env)
// when it exists.
func LoadConfig() (Config, error) {
	if err := envx.LoadDotenv(envx.String("DOTENV_PATH", ".env")); err != nil {
		return Config{}, err
	}

	cfg := Config{
		AccessSecret:        envx.String("ACCESS_TOKEN_SECRET", ""),
		RefreshSecret:       envx.String("REFRESH_TOKEN_SECRET", ""),
		Issuer:              envx.String("TOKEN_ISSUER", "folio-token"),
		ServiceKey:          envx.String("TOKEN_SERVICE_API_KEY", ""),
		Env:                 envx.String("ENV", "dev"),
		LogLevel:            envx.String("LOG_LEVEL", "info"),
		LogFormat:           envx.String("LOG_FORMAT", "json"),
		Port:                envx.Int("PORT", 4000),
		ShutdownGracePeriod: envx.Duration("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg, cfg.Validate()
}

// Secrets returns the signing secrets for both token classes.
func (c Config) Secrets() jwtx.Secrets {
	return jwtx.Secrets{
		Access:  []byte(c.AccessSecret),
		Refresh: []byte(c.RefreshSecret),
	}
}

func (c Config) Validate() error {
	if c.AccessSecret == "" || c.RefreshSecret == "" {
		return errors.New("config: ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}
	if err := c.Secrets().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid PORT %d", c.Port)
	}
	return nil
}

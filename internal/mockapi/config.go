package mockapi

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/todayseafood/seafood/internal/logging"
)

const envconfigPrefix = "SEAFOOD_MOCKAPI"

// Config represents configuration for the mock API server.
type Config struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	TLSEnabled      bool          `envconfig:"TLS_ENABLED"`
	TLSCertPath     string        `envconfig:"TLS_CERT_PATH"`
	TLSKeyPath      string        `envconfig:"TLS_KEY_PATH"`
	AccessTokenTTL  time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"336h"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"` // nolint: lll
	BcryptCost      int           `envconfig:"BCRYPT_COST"`
	Log             logging.Config
}

// NewConfigWithDefaults returns a Config object with default values already
// applied. Callers are then free to set custom values for the remaining fields
// and/or override default values.
func NewConfigWithDefaults() Config {
	return Config{
		Port:            8080,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 14 * 24 * time.Hour,
		AllowedOrigins:  []string{"http://localhost:5173"},
		Log: logging.Config{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// GetConfigFromEnvironment returns configuration derived from environment
// variables
func GetConfigFromEnvironment() (Config, error) {
	c := NewConfigWithDefaults()
	err := envconfig.Process(envconfigPrefix, &c)
	return c, err
}

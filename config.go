package flowpay

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig wraps environment parsing failures from ConfigFromEnv.
var ErrParsingConfig = errors.New("failed to parse flowpay configuration")

// Config holds client configuration. Only APIKey is required; everything else
// has production defaults.
type Config struct {
	// APIKey authenticates every API request. Required.
	APIKey string `env:"FLOWPAY_API_KEY,required"`
	// BaseURL overrides the production API host. Trailing slashes are stripped.
	BaseURL string `env:"FLOWPAY_BASE_URL"`
	// Timeout bounds each physical request attempt. Default is 30 seconds.
	Timeout time.Duration `env:"FLOWPAY_TIMEOUT" envDefault:"30s"`
	// MaxRetries is the retry budget after the first attempt. Default is 2.
	MaxRetries int `env:"FLOWPAY_MAX_RETRIES" envDefault:"2"`
	// Sandbox routes requests to the test environment via a marker header.
	Sandbox bool `env:"FLOWPAY_SANDBOX" envDefault:"false"`
	// WebhookSecret verifies inbound webhook deliveries. Optional unless
	// Client.ConstructEvent is used.
	WebhookSecret string `env:"FLOWPAY_WEBHOOK_SECRET"`
}

var defaultEnvLoaded sync.Once

// ConfigFromEnv loads configuration from FLOWPAY_* environment variables,
// reading a .env file first when one exists.
func ConfigFromEnv() (Config, error) {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional; absence is not an error.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

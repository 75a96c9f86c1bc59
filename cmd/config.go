package cmd

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries everything the service needs from the environment. Carrier
// and email credentials are optional: without them the matching adapter is
// not constructed and the dependent flows degrade to no-ops.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DatabaseDSN string `env:"DATABASE_DSN,required"`

	OrderNumberPrefix string `env:"ORDER_NUMBER_PREFIX" envDefault:"TI"`
	OrderNumberFloor  int64  `env:"ORDER_NUMBER_FLOOR" envDefault:"10000"`

	CarrierAPIURL string `env:"CARRIER_API_URL"`
	CarrierAPIKey string `env:"CARRIER_API_KEY"`

	EmailAPIURL string `env:"EMAIL_API_URL"`
	EmailAPIKey string `env:"EMAIL_API_KEY"`
	EmailFrom   string `env:"EMAIL_FROM" envDefault:"trade-in@example.com"`

	TrackingSyncSchedule string        `env:"TRACKING_SYNC_SCHEDULE" envDefault:"0 */10 * * * *"`
	AutoRequoteSchedule  string        `env:"AUTO_REQUOTE_SCHEDULE" envDefault:"0 0 * * * *"`
	AutoRequoteGrace     time.Duration `env:"AUTO_REQUOTE_GRACE" envDefault:"1h"`
}

// LoadConfig reads .env when present and parses the environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

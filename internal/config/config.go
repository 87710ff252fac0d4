package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultTimeout         = 5 * time.Second
	DefaultNotificationURL = "https://webhook.site/123-abc"
	DefaultPayerEmail      = "test_user_123@testuser.com"
)

// MercadoPago holds the SDK credentials and the fixed data used to build
// sandbox requests.
type MercadoPago struct {
	AccessToken       string        `env:"MERCADOPAGO_ACCESS_TOKEN"`
	LegacyAccessToken string        `env:"ML_ACCESS_TOKEN"`
	Timeout           time.Duration `env:"MERCADOPAGO_TIMEOUT" envDefault:"5s"`
	NotificationURL   string        `env:"MERCADOPAGO_NOTIFICATION_URL" envDefault:"https://webhook.site/123-abc"`
	PayerEmail        string        `env:"MERCADOPAGO_TEST_PAYER_EMAIL" envDefault:"test_user_123@testuser.com"`
	CardExpYear       string        `env:"MERCADOPAGO_TEST_CARD_EXPIRATION_YEAR" envDefault:"2030"`
	Mock              bool          `env:"PAYMENT_GATEWAY_MOCK"`
	LegacyMock        bool          `env:"MERCADOPAGO_MOCK"`
}

// Token returns the configured access token. ML_ACCESS_TOKEN is accepted for
// older .env files.
func (m MercadoPago) Token() string {
	if v := strings.TrimSpace(m.AccessToken); v != "" {
		return v
	}
	return strings.TrimSpace(m.LegacyAccessToken)
}

func (m MercadoPago) MockEnabled() bool {
	return m.Mock || m.LegacyMock
}

type Server struct {
	Port int `env:"HTTP_PORT" envDefault:"3000"`
}

func (s Server) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}

type Logger struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// DynamoDB supports local endpoints; the SDK requires credentials even when
// the local emulator ignores them.
type DynamoDB struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	Endpoint        string `env:"DYNAMODB_ENDPOINT"`
}

type Notifications struct {
	StoreEnabled bool   `env:"NOTIFICATIONS_STORE_ENABLED"`
	Table        string `env:"NOTIFICATIONS_TABLE" envDefault:"notifications"`
}

type Config struct {
	Server        Server
	Logger        Logger
	MercadoPago   MercadoPago
	DynamoDB      DynamoDB
	Notifications Notifications
}

// Load reads the configuration from the process environment. Credentials are
// not validated here; a missing token only shows up as failed provider calls.
func Load() (Config, error) {
	const op = "config.Load"

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	if cfg.MercadoPago.Timeout <= 0 {
		cfg.MercadoPago.Timeout = DefaultTimeout
	}
	return cfg, nil
}

// MustLoad is Load for main: a malformed environment aborts startup.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config is resolved once at startup and injected into components at
// construction time. Nothing re-reads the environment mid-request, so a
// settings change cannot produce inconsistent behavior within one call.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Gateway  GatewayConfig
	Offline  OfflineConfig
	SMTP     SMTPConfig
	Billing  BillingConfig
}

type ServerConfig struct {
	Port string `validate:"required"`
}

type DatabaseConfig struct {
	URL string `validate:"required"`
}

type JWTConfig struct {
	Secret string `validate:"required,min=16"`
	TTL    time.Duration
}

// GatewayConfig carries the mobile-wallet gateway merchant credentials.
// Configured() gates the online channel: with any credential missing the
// channel fails fast before a transaction row is created.
type GatewayConfig struct {
	Enabled        bool
	Endpoint       string `validate:"omitempty,url"`
	MerchantUID    string
	APIUserID      string
	APIKey         string
	MerchantNumber string
	Timeout        time.Duration
}

func (g GatewayConfig) Configured() bool {
	return g.Endpoint != "" && g.MerchantUID != "" && g.APIUserID != "" && g.APIKey != ""
}

// OfflineConfig drives the manual-transfer channel. Instructions is the
// operator-written text shown to payers (bank account, wallet number, etc).
type OfflineConfig struct {
	Enabled      bool
	Instructions string
}

func (o OfflineConfig) Configured() bool {
	return o.Enabled && o.Instructions != ""
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	AppName  string
}

func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.From != ""
}

type BillingConfig struct {
	// MinimumPrice is the floor for any chargeable plan, in the plan's own
	// currency. Defaults to 0.01.
	MinimumPrice decimal.Decimal
}

func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: envOr("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("POSTGRES_URL"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			TTL:    durationOr("JWT_TTL", time.Hour),
		},
		Gateway: GatewayConfig{
			Enabled:        boolOr("GATEWAY_ENABLED", false),
			Endpoint:       os.Getenv("GATEWAY_ENDPOINT"),
			MerchantUID:    os.Getenv("GATEWAY_MERCHANT_UID"),
			APIUserID:      os.Getenv("GATEWAY_API_USER_ID"),
			APIKey:         os.Getenv("GATEWAY_API_KEY"),
			MerchantNumber: os.Getenv("GATEWAY_MERCHANT_NUMBER"),
			Timeout:        durationOr("GATEWAY_TIMEOUT", 30*time.Second),
		},
		Offline: OfflineConfig{
			Enabled:      boolOr("OFFLINE_PAYMENTS_ENABLED", false),
			Instructions: os.Getenv("OFFLINE_PAYMENT_INSTRUCTIONS"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     intOr("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
			FromName: envOr("SMTP_FROM_NAME", "Xisaabi"),
			AppName:  envOr("APP_NAME", "Xisaabi"),
		},
		Billing: BillingConfig{
			MinimumPrice: decimalOr("BILLING_MINIMUM_PRICE", decimal.NewFromFloat(0.01)),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolOr(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func intOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func decimalOr(key string, fallback decimal.Decimal) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return fallback
	}
	return d
}

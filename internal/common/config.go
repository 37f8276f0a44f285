package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	SMTP    SMTPConfig
	PayPal  PayPalConfig
	Prices  PricesConfig
	Receipt ReceiptConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
	MaxBodyBytes   int64
}

// SMTPConfig holds outbound mail configuration
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	StaffEmail string
}

// PayPalConfig holds webhook verification configuration
type PayPalConfig struct {
	APIBaseURL   string
	ClientID     string
	ClientSecret string
	WebhookID    string
}

// PricesConfig holds the metal-price lookup configuration
type PricesConfig struct {
	APIURL      string
	APIKey      string
	RefreshCron string
	Timeout     time.Duration
}

// ReceiptConfig holds counter, template and layout configuration
type ReceiptConfig struct {
	CounterPath    string
	CounterBackend string // "file" or "bolt"
	CounterDBPath  string
	AssetsDir      string
	S3Bucket       string
	LayoutPath     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           getEnv("ADDR", ":5000"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{
				"https://soshumanistes.fr", "https://*.soshumanistes.fr",
				"https://soshumanistes.com", "https://*.soshumanistes.com",
				"https://soshumanistes.org", "https://*.soshumanistes.org",
				"https://soshumanistes.ch", "https://*.soshumanistes.ch",
				"https://sospalestine.fr", "https://*.sospalestine.fr",
				"http://localhost:5173", "http://localhost:3000",
			}),
			RateLimit:      getEnvAsInt("RATE_LIMIT", 100),
			RateWindow:     getEnvAsDuration("RATE_WINDOW", 15*time.Minute),
			MaxBodyBytes:   int64(getEnvAsInt("MAX_BODY_BYTES", 10<<20)),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", "smtp.ionos.fr"),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Username:   getEnv("SMTP_USER", ""),
			Password:   getEnv("SMTP_PASS", ""),
			From:       getEnv("MAIL_FROM", "contact@sospalestine.fr"),
			StaffEmail: getEnv("STAFF_EMAIL", "contact@sospalestine.fr"),
		},
		PayPal: PayPalConfig{
			APIBaseURL:   getEnv("PAYPAL_API_URL", "https://api-m.paypal.com"),
			ClientID:     getEnv("PAYPAL_CLIENT_ID", ""),
			ClientSecret: getEnv("PAYPAL_CLIENT_SECRET", ""),
			WebhookID:    getEnv("PAYPAL_WEBHOOK_ID", ""),
		},
		Prices: PricesConfig{
			APIURL:      getEnv("GOLD_API_URL", "https://gold.g.apised.com/v1/latest?metals=XAU,XAG&base_currency=EUR&currencies=EUR&weight_unit=gram"),
			APIKey:      getEnv("GOLD_API_KEY", ""),
			RefreshCron: getEnv("PRICE_REFRESH_CRON", "0 */12 * * *"),
			Timeout:     getEnvAsDuration("PRICE_FETCH_TIMEOUT", 15*time.Second),
		},
		Receipt: ReceiptConfig{
			CounterPath:    getEnv("COUNTER_PATH", "data/receiptCounter.json"),
			CounterBackend: getEnv("COUNTER_BACKEND", "file"),
			CounterDBPath:  getEnv("COUNTER_DB_PATH", "data/counter.db"),
			AssetsDir:      getEnv("ASSETS_DIR", "."),
			S3Bucket:       getEnv("ASSETS_S3_BUCKET", ""),
			LayoutPath:     getEnv("LAYOUT_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.SMTP.Username == "" {
		return NewAppError("CONFIG_ERROR", "SMTP_USER is required", ErrInvalidInput)
	}
	if c.SMTP.Password == "" {
		return NewAppError("CONFIG_ERROR", "SMTP_PASS is required", ErrInvalidInput)
	}
	if c.Receipt.CounterBackend != "file" && c.Receipt.CounterBackend != "bolt" {
		return NewAppError("CONFIG_ERROR", "COUNTER_BACKEND must be file or bolt", ErrInvalidInput)
	}
	if c.PayPal.WebhookID != "" && (c.PayPal.ClientID == "" || c.PayPal.ClientSecret == "") {
		return NewAppError("CONFIG_ERROR", "PAYPAL_CLIENT_ID and PAYPAL_CLIENT_SECRET are required when PAYPAL_WEBHOOK_ID is set", ErrInvalidInput)
	}
	return nil
}

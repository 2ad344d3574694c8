package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	PublicBaseURL      string
	CORSAllowedOrigins []string

	// Square commerce/scheduling provider
	SquareAccessToken        string
	SquareEnvironment        string // "sandbox" or "production"
	SquareLocationID         string
	SquareDefaultTeamMember  string
	SquareVariationMapJSON   string
	SquareCurrency           string
	SquareForceDepositCents  int
	SquareAdminSecret        string

	// Phone normalization
	DefaultCountryCode string

	// Booking alert email
	BookingAlertsEnabled  bool
	SendGridAPIKey        string
	BookingAlertEmailTo   string
	BookingAlertEmailFrom string

	// Pending-draft store
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	DraftTTL      time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		PublicBaseURL:      getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),

		SquareAccessToken:       getEnv("SQUARE_ACCESS_TOKEN", ""),
		SquareEnvironment:       strings.ToLower(strings.TrimSpace(getEnv("SQUARE_ENVIRONMENT", "sandbox"))),
		SquareLocationID:        strings.TrimSpace(getEnv("SQUARE_LOCATION_ID", "")),
		SquareDefaultTeamMember: strings.TrimSpace(getEnv("SQUARE_DEFAULT_TEAM_MEMBER_ID", "")),
		SquareVariationMapJSON:  getEnv("SQUARE_APPOINTMENT_VARIATION_MAP", ""),
		SquareCurrency:          strings.ToUpper(strings.TrimSpace(getEnv("SQUARE_CURRENCY", "AUD"))),
		SquareForceDepositCents: getEnvAsInt("SQUARE_FORCE_DEPOSIT_CENTS", 0),
		SquareAdminSecret:       strings.TrimSpace(getEnv("SQUARE_ADMIN_SECRET", "")),

		DefaultCountryCode: getEnv("DEFAULT_COUNTRY_CODE", "+61"),

		BookingAlertsEnabled:  getEnvAsBool("BOOKING_ALERTS_ENABLED", true),
		SendGridAPIKey:        getEnv("SENDGRID_API_KEY", ""),
		BookingAlertEmailTo:   strings.TrimSpace(getEnv("BOOKING_ALERT_EMAIL_TO", "")),
		BookingAlertEmailFrom: strings.TrimSpace(getEnv("BOOKING_ALERT_EMAIL_FROM", "")),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		DraftTTL:      getEnvAsDuration("DRAFT_TTL", 24*time.Hour),
	}
}

// Validate reports operator-actionable configuration problems. The Square token
// is the only hard requirement; everything else degrades explicitly.
func (c *Config) Validate() error {
	if c.SquareAccessToken == "" {
		return fmt.Errorf("config: SQUARE_ACCESS_TOKEN is required")
	}
	if c.SquareEnvironment != "sandbox" && c.SquareEnvironment != "production" {
		return fmt.Errorf("config: SQUARE_ENVIRONMENT must be sandbox or production, got %q", c.SquareEnvironment)
	}
	if c.SquareVariationMapJSON != "" {
		var m map[string]string
		if err := json.Unmarshal([]byte(c.SquareVariationMapJSON), &m); err != nil {
			return fmt.Errorf("config: SQUARE_APPOINTMENT_VARIATION_MAP is not valid JSON: %w", err)
		}
	}
	return nil
}

// VariationMap decodes the operator-configured service id to variation id mapping.
// Returns nil when unset or unparseable; a stale map is handled downstream.
func (c *Config) VariationMap() map[string]string {
	if c.SquareVariationMapJSON == "" {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(c.SquareVariationMapJSON), &m); err != nil {
		return nil
	}
	return m
}

// ForcedDepositCents returns the operator override for the deposit amount, or 0
// when unset or not a positive integer. A zero or negative override never applies.
func (c *Config) ForcedDepositCents() int {
	if c.SquareForceDepositCents <= 0 {
		return 0
	}
	return c.SquareForceDepositCents
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// Config holds application configuration values.
type Config struct {
	Port               string
	AppBaseURL         string
	StorageDriver      string
	MongoURI           string
	MongoDBName        string
	SessionSecret      string
	SessionTTL         time.Duration
	CookieSecure       bool
	RedisURL           string
	ListingCacheTTL    time.Duration
	RateLimitPerSecond float64
	LogLevel           string
	LogFormat          string
	GoogleMapsAPIKey   string
	GoogleClientID     string
	GoogleClientSecret string
	CORSOrigins        []string
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		AppBaseURL:         strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8080"), "/"),
		StorageDriver:      strings.ToLower(getEnv("STORAGE_DRIVER", StorageMongo)),
		MongoURI:           getEnv("MONGODB_URI", ""),
		MongoDBName:        getEnv("MONGODB_DB_NAME", "airhost"),
		SessionSecret:      getEnv("SESSION_SECRET", ""),
		SessionTTL:         time.Hour * time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 72)),
		CookieSecure:       getEnvAsBool("COOKIE_SECURE", false),
		RedisURL:           getEnv("REDIS_URL", ""),
		ListingCacheTTL:    time.Minute * time.Duration(getEnvAsInt("LISTING_CACHE_TTL_MINUTES", 10)),
		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 20),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		GoogleMapsAPIKey:   getEnv("GOOGLE_MAPS_API_KEY", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		CORSOrigins:        getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	switch c.StorageDriver {
	case StorageMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI environment variable not set"))
		}
	case StorageMemory:
	default:
		errs = append(errs, errors.New("STORAGE_DRIVER must be mongo or memory"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET environment variable not set"))
	}
	return errors.Join(errs...)
}

// GoogleOAuthEnabled reports whether both Google OAuth credentials are set.
func (c *Config) GoogleOAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

func (c *Config) GetSessionTTL() time.Duration {
	return c.SessionTTL
}

func (c *Config) GetListingCacheTTL() time.Duration {
	return c.ListingCacheTTL
}

func (c *Config) GetGoogleMapsAPIKey() string {
	return c.GoogleMapsAPIKey
}

// Helper function to get an environment variable or return a default value.
// An empty variable counts as unset.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(name string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(name, ""), 64); err == nil {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as a boolean or return a default value.
func getEnvAsBool(name string, fallback bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return fallback
}

// getEnvAsList splits a comma separated variable, dropping empty entries.
func getEnvAsList(name string, fallback []string) []string {
	raw := getEnv(name, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

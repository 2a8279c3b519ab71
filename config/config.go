package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"foxyweb/database"
)

// Config holds all application configuration
type Config struct {
	// HTTP configuration
	HTTPAddr        string
	PublicURL       string   // Base URL the dashboard is served from
	AllowedOrigins  []string // CORS origins
	InternalAPIKey  string   // Shared secret for /internal routes
	ShutdownTimeout time.Duration

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration
	SecureCookies bool

	// Discord configuration
	DiscordToken       string // Bot token used to resolve user identities
	OAuthClientID      string // Also the operator account of every transaction
	OAuthClientSecret  string
	OAuthRedirectURI   string
	DiscordAPIEndpoint string

	// Checkout provider
	CheckoutURL string // FP_URL

	// NATS configuration
	NATSServers       string // NATS server addresses (comma-separated), empty disables forwarding
	NATSSubjectPrefix string

	// Economy
	RouletteEnabled bool

	// Logging
	LogLevel string

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		HTTPAddr:       getEnvWithDefault("HTTP_ADDR", ":8080"),
		PublicURL:      getEnvWithDefault("PUBLIC_URL", "http://localhost:8080"),
		InternalAPIKey: os.Getenv("INTERNAL_API_KEY"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		RedisAddr:     getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DiscordToken:       os.Getenv("DISCORD_TOKEN"),
		OAuthClientID:      os.Getenv("OAUTH_CLIENT_ID"),
		OAuthClientSecret:  os.Getenv("OAUTH_CLIENT_SECRET"),
		OAuthRedirectURI:   os.Getenv("OAUTH_REDIRECT_URI"),
		DiscordAPIEndpoint: getEnvWithDefault("DISCORD_API_ENDPOINT", "https://discord.com/api/v10"),

		CheckoutURL: os.Getenv("FP_URL"),

		NATSServers:       os.Getenv("NATS_SERVERS"),
		NATSSubjectPrefix: getEnvWithDefault("NATS_SUBJECT_PREFIX", "foxy.events"),

		RouletteEnabled: os.Getenv("ROULETTE_ENABLED") == "true",

		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: os.Getenv("ENVIRONMENT"),

		SessionTTL:      7 * 24 * time.Hour,
		ShutdownTimeout: 10 * time.Second,
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				config.AllowedOrigins = append(config.AllowedOrigins, origin)
			}
		}
	} else {
		config.AllowedOrigins = []string{config.PublicURL}
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		if parsed, err := strconv.Atoi(db); err == nil {
			config.RedisDB = parsed
		}
	}
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			config.SessionTTL = parsed
		}
	}

	if config.Environment == "" {
		config.Environment = "development"
	}
	config.SecureCookies = config.IsProduction()

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.OAuthClientID == "" {
			return nil, fmt.Errorf("OAUTH_CLIENT_ID is required")
		}
		if config.OAuthClientSecret == "" {
			return nil, fmt.Errorf("OAUTH_CLIENT_SECRET is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		HTTPAddr:          ":0",
		PublicURL:         "http://localhost:8080",
		AllowedOrigins:    []string{"http://localhost:8080"},
		InternalAPIKey:    "test-api-key",
		OAuthClientID:     "000000000000000000",
		CheckoutURL:       "https://checkout.test/",
		NATSSubjectPrefix: "foxy.events",
		SessionTTL:        time.Hour,
		ShutdownTimeout:   time.Second,
		LogLevel:          "debug",
		Environment:       "test",
	}
}

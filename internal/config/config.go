package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Auth    AuthConfig
	Seed    SeedConfig
	Email   EmailConfig
	Logging LoggingConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address string // listen address (e.g., ":8080")
}

// StoreConfig selects and configures the record store backend.
type StoreConfig struct {
	Driver string // "memory" (default) or "sqlite"
	Path   string // SQLite database file path when Driver is "sqlite"
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string        // JWT signing secret
	TokenTTL  time.Duration // session token lifetime
}

// SeedConfig describes the accounts created at startup.
type SeedConfig struct {
	AdminEmail           string
	AdminPassword        string
	AdminName            string
	TestPharmacy         bool // create a pre-approved pharmacy for demos
	TestPharmacyEmail    string
	TestPharmacyPassword string
}

// EmailConfig configures the notification dispatcher.
type EmailConfig struct {
	ResendAPIKey  string // empty means sends are simulated (logged only)
	ResendBaseURL string
	From          string
	AdminAddress  string // fixed recipient for operational notifications
	QueueSize     int
	Workers       int
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Directory string // empty means log to stdout only
}

// Load loads configuration from environment variables with sensible
// defaults. It fails when settings required for production are missing.
func Load() (*Config, error) {
	cfg := loadFromEnv()
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	if cfg.Seed.AdminPassword == "" {
		return nil, fmt.Errorf("SEED_ADMIN_PASSWORD environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses safe defaults for development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	cfg := loadFromEnv()
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}
	if cfg.Seed.AdminPassword == "" {
		cfg.Seed.AdminPassword = "Dev@Admin2024!"
	}
	return cfg, nil
}

func loadFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Address: getEnv("SERVER_ADDRESS", ":8080"),
		},
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", "memory"),
			Path:   getEnv("STORE_PATH", "courier.db"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),
		},
		Seed: SeedConfig{
			AdminEmail:           getEnv("SEED_ADMIN_EMAIL", "admin@example.com"),
			AdminPassword:        getEnv("SEED_ADMIN_PASSWORD", ""),
			AdminName:            getEnv("SEED_ADMIN_NAME", "System Administrator"),
			TestPharmacy:         getEnvBool("SEED_TEST_PHARMACY", false),
			TestPharmacyEmail:    getEnv("SEED_TEST_PHARMACY_EMAIL", "test@pharmacy.com"),
			TestPharmacyPassword: getEnv("SEED_TEST_PHARMACY_PASSWORD", "TestPharmacy123!"),
		},
		Email: EmailConfig{
			ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
			ResendBaseURL: getEnv("RESEND_BASE_URL", ""),
			From:          getEnv("EMAIL_FROM", "Courier Service <noreply@example.com>"),
			AdminAddress:  getEnv("ADMIN_NOTIFY_EMAIL", getEnv("SEED_ADMIN_EMAIL", "admin@example.com")),
			QueueSize:     getEnvInt("NOTIFY_QUEUE_SIZE", 256),
			Workers:       getEnvInt("NOTIFY_WORKERS", 2),
		},
		Logging: LoggingConfig{
			Directory: getEnv("LOGS_DIRECTORY", ""),
		},
	}
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Server: %s, Store: %s/%s, Auth: *** (masked) ***, AdminNotify: %s}",
		c.Server.Address, c.Store.Driver, c.Store.Path, c.Email.AdminAddress)
}

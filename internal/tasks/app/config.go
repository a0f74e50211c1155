package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/joho/godotenv"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 10000)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite file (default: site.db)
	DatabaseURL    string // Postgres DSN, required for postgres

	PepperFile     string        // Password pepper, created on first start (default: ./data/pepper)
	SessionKeyFile string        // Ed25519 session signing key, created on first start (default: ./data/session.pem)
	SessionTTL     time.Duration // Session lifetime (default: 24h)
	SessionIssuer  string        // iss claim on session tokens (default: tasks)
	CookieSecure   bool          // Set Secure on the session cookie (default: true outside dev)

	StorageBackend string // local or s3 (default: local)
	UploadDir      string // Local upload directory (default: static/uploads)
	MaxUploadBytes int64  // Profile picture size cap (default: 5 MiB)
	S3Bucket       string
	S3Region       string // default: us-east-1
	S3Endpoint     string // For S3 compatible services such as MinIO
	S3AccessKey    string // Falls back to the default AWS credential chain when empty
	S3SecretKey    string
	S3PublicURL    string // Prefix for returned object URLs, e.g. a CDN

	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired session sweep interval (default: 1h)

	RateLimits httpx.RateLimits
}

// LoadConfig reads the environment, after merging in a .env file from the
// working directory if there is one. Variables already set win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	env := getEnvOrDefault("ENV", "dev")
	cfg := Config{
		Env:       env,
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 10000),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", "sqlite")),
		DatabaseFile:   getEnvOrDefault("DATABASE_FILE", "site.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		PepperFile:     getEnvOrDefault("PEPPER_FILE", "data/pepper"),
		SessionKeyFile: getEnvOrDefault("SESSION_KEY_FILE", "data/session.pem"),
		SessionTTL:     getEnvDurationOrDefault("SESSION_TTL", 24*time.Hour),
		SessionIssuer:  getEnvOrDefault("SESSION_ISSUER", "tasks"),
		CookieSecure:   getEnvBoolOrDefault("COOKIE_SECURE", env != "dev"),

		StorageBackend: strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", "local")),
		UploadDir:      getEnvOrDefault("UPLOAD_DIR", "static/uploads"),
		MaxUploadBytes: int64(getEnvIntOrDefault("MAX_UPLOAD_BYTES", 5<<20)),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       getEnvOrDefault("S3_REGION", "us-east-1"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3PublicURL:    os.Getenv("S3_PUBLIC_URL"),

		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),

		RateLimits: httpx.RateLimitsFromEnv(),
	}

	return cfg, cfg.Validate()
}

// Validate rejects combinations the application cannot start with.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	switch c.StorageBackend {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required for the s3 storage backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}

	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

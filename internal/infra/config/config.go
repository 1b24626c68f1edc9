// internal/infra/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverFirestore = "firestore"
	DriverPostgres  = "postgres"
	DriverMemory    = "memory"
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config holds every environment-provided setting of the console.
type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	// Document store
	StoreDriver              string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	DBHost                   string
	DBPort                   string
	DBUser                   string
	DBPassword               string
	DBName                   string
	DBTable                  string

	// HTTP
	AuthEnabled        bool
	CORSAllowedOrigins []string

	// Notifications
	SendGridAPIKey   string
	SendGridSecretID string
	NotifyFrom       string
	NotifyTo         string

	// Item images
	ItemImageBucket       string
	ItemImageSignedURLTTL time.Duration

	// Pub/Sub topic that receives every notification; empty disables it.
	PubSubTopic string

	// Redis serializes stock commits across console instances; an empty
	// address keeps the in-process behaviour.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CommitLockTTL time.Duration
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	project := get("FIRESTORE_PROJECT_ID", get("GCP_PROJECT_ID", get("GOOGLE_CLOUD_PROJECT", "")))

	cfg := &Config{
		Port:     get("PORT", "8080"),
		AppEnv:   get("APP_ENV", "development"),
		LogLevel: get("LOG_LEVEL", "info"),

		StoreDriver:              strings.ToLower(get("STORE_DRIVER", DriverFirestore)),
		FirestoreProjectID:       project,
		FirestoreCredentialsFile: get("FIRESTORE_CREDENTIALS_FILE", get("GOOGLE_APPLICATION_CREDENTIALS", "")),
		DBHost:                   get("DB_HOST", "localhost"),
		DBPort:                   get("DB_PORT", "5432"),
		DBUser:                   get("DB_USER", "postgres"),
		DBPassword:               get("DB_PASSWORD", ""),
		DBName:                   get("DB_NAME", "canteen"),
		DBTable:                  get("DB_TABLE", "documents"),

		CORSAllowedOrigins: splitList(get("CORS_ALLOWED_ORIGINS", "*")),

		SendGridAPIKey:   get("SENDGRID_API_KEY", ""),
		SendGridSecretID: get("SENDGRID_SECRET_ID", ""),
		NotifyFrom:       get("NOTIFY_FROM", ""),
		NotifyTo:         get("NOTIFY_TO", ""),

		ItemImageBucket: get("ITEM_IMAGE_BUCKET", ""),

		PubSubTopic: get("PUBSUB_TOPIC", ""),

		RedisAddr:     get("REDIS_ADDR", get("REDIS_ADDRESS", "")),
		RedisPassword: get("REDIS_PASSWORD", ""),
	}

	var err error
	if cfg.AuthEnabled, err = strconv.ParseBool(get("AUTH_ENABLED", "false")); err != nil {
		return nil, fmt.Errorf("%w: AUTH_ENABLED: %v", ErrInvalidConfig, err)
	}
	if cfg.ItemImageSignedURLTTL, err = time.ParseDuration(get("ITEM_IMAGE_SIGNED_URL_TTL", "0s")); err != nil {
		return nil, fmt.Errorf("%w: ITEM_IMAGE_SIGNED_URL_TTL: %v", ErrInvalidConfig, err)
	}

	if cfg.RedisDB, err = strconv.Atoi(get("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("%w: REDIS_DB: %v", ErrInvalidConfig, err)
	}
	if cfg.CommitLockTTL, err = time.ParseDuration(get("COMMIT_LOCK_TTL", "30s")); err != nil {
		return nil, fmt.Errorf("%w: COMMIT_LOCK_TTL: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the selected driver and features cannot run
// without.
func (c *Config) Validate() error {
	var problems []string

	if _, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, "PORT must be numeric")
	}

	switch c.StoreDriver {
	case DriverFirestore:
		if c.FirestoreProjectID == "" {
			problems = append(problems, "FIRESTORE_PROJECT_ID (or GCP_PROJECT_ID) is required for the firestore driver")
		}
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
			problems = append(problems, "DB_HOST, DB_USER and DB_NAME are required for the postgres driver")
		}
	case DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("STORE_DRIVER %q is not one of firestore, postgres, memory", c.StoreDriver))
	}

	if c.AuthEnabled && c.FirestoreProjectID == "" {
		problems = append(problems, "AUTH_ENABLED needs FIRESTORE_PROJECT_ID for token verification")
	}
	if c.MailEnabled() && (c.NotifyFrom == "" || c.NotifyTo == "") {
		problems = append(problems, "NOTIFY_FROM and NOTIFY_TO are required when SendGrid is configured")
	}
	if c.ItemImageSignedURLTTL < 0 {
		problems = append(problems, "ITEM_IMAGE_SIGNED_URL_TTL must not be negative")
	}
	if c.PubSubTopic != "" && c.FirestoreProjectID == "" {
		problems = append(problems, "PUBSUB_TOPIC needs FIRESTORE_PROJECT_ID (or GCP_PROJECT_ID)")
	}
	if c.RedisAddr != "" && c.CommitLockTTL <= 0 {
		problems = append(problems, "COMMIT_LOCK_TTL must be positive when REDIS_ADDR is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// MailEnabled reports whether a SendGrid key is available directly or
// through Secret Manager.
func (c *Config) MailEnabled() bool {
	return c.SendGridAPIKey != "" || c.SendGridSecretID != ""
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

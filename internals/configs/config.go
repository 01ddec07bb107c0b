package configs

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime knob read from the environment.
type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"APP_ENV" default:"development"`

	DatabaseURL   string        `envconfig:"DATABASE_URL"`
	DBUser        string        `envconfig:"DB_USER"`
	DBPassword    string        `envconfig:"DB_PASSWORD"`
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBName        string        `envconfig:"DB_NAME" default:"stogie"`
	DBSSLMode     string        `envconfig:"DB_SSLMODE" default:"disable"`
	DBAutoMigrate bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	DBSlowQuery   time.Duration `envconfig:"DB_SLOW_QUERY" default:"200ms"`

	JWTSecret        string        `envconfig:"JWT_SECRET"`
	JWTRefreshSecret string        `envconfig:"JWT_REFRESH_SECRET"`
	AccessTTL        time.Duration `envconfig:"JWT_ACCESS_TTL" default:"24h"`
	RefreshTTL       time.Duration `envconfig:"JWT_REFRESH_TTL" default:"168h"`
	GoogleClientID   string        `envconfig:"GOOGLE_CLIENT_ID"`
	CookieSecure     bool          `envconfig:"COOKIE_SECURE" default:"true"`

	CORSOrigins    []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://localhost:8081"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5s"`

	NATSURL string `envconfig:"NATS_URL"`

	UploadDir       string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	UploadPublicURL string `envconfig:"UPLOAD_PUBLIC_URL" default:"/uploads"`
	OSSEndpoint     string `envconfig:"OSS_ENDPOINT"`
	OSSAccessKey    string `envconfig:"OSS_ACCESS_KEY"`
	OSSSecretKey    string `envconfig:"OSS_SECRET_KEY"`
	OSSBucket       string `envconfig:"OSS_BUCKET"`
	OSSPublicURL    string `envconfig:"OSS_PUBLIC_URL"`

	BlacklistCleanupSpec string `envconfig:"BLACKLIST_CLEANUP_SPEC" default:"@daily"`
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() (*Config, error) {
	if GetEnv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[INFO] .env not found, using system environment")
		} else {
			log.Println("✅ .env loaded")
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if cfg.JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set")
	}
	if cfg.JWTRefreshSecret == "" {
		log.Println("❌ JWT_REFRESH_SECRET is not set")
	}
	return &cfg, nil
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// PostgresDSN prefers DATABASE_URL and falls back to the DB_* parts.
func (c *Config) PostgresDSN() string {
	if strings.TrimSpace(c.DatabaseURL) != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=stogie&options=-c%%20statement_timeout=3000",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

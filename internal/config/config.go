package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Session tokens
	JWTSecret    string
	JWTExpiry    time.Duration
	CookieSecure bool

	// Recipe cache
	CacheDriver string
	CacheTTL    time.Duration
	RedisURL    string

	// Logging / error tracking
	LogRetention time.Duration
	SentryDSN    string
	AppEnv       string

	// Server
	Port        string
	CORSOrigins string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "recipebox"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "recipebox.db"),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiry:    parseDuration(getEnv("JWT_EXPIRY", "720h"), 30*24*time.Hour),
		CookieSecure: parseBool(getEnv("COOKIE_SECURE", "false")),

		CacheDriver: getEnv("CACHE_DRIVER", "memory"),
		CacheTTL:    parseDuration(getEnv("CACHE_TTL", "5m"), 5*time.Minute),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),
		SentryDSN:    getEnv("SENTRY_DSN", ""),
		AppEnv:       getEnv("APP_ENV", "development"),

		Port:        getEnv("PORT", "5000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// UsesSQLite reports whether the store is a local SQLite file.
func (c *Config) UsesSQLite() bool {
	return c.DBDriver == "sqlite"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

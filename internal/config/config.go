package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. The content API settings point at the headless CMS
// that owns every piece of site content; the session store selects where the
// auth token/user pair is persisted.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	CMSBaseURL  string        // content API root, e.g. http://localhost:1337/api
	CMSMediaURL string        // host prefix for relative upload paths
	CMSAPIToken string        // static read token for public content
	CMSTimeout  time.Duration // per-request timeout against the content API
	CMSCacheTTL time.Duration // in-process single-entry cache TTL; 0 disables

	SessionStore string // "memory", "redis" or "mysql"

	DBUser string // mysql session store credentials
	DBPass string
	DBHost string
	DBPort string
	DBName string

	LogLevel string // zap level: debug, info, warn, error
}

// Load reads configuration from environment variables. Required variables
// are enforced by must() and missing values cause the program to exit with a
// fatal log message.
func Load() Config {
	cfg := Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		CMSBaseURL:   must("CMS_BASE_URL"),
		CMSMediaURL:  os.Getenv("CMS_MEDIA_URL"),
		CMSAPIToken:  os.Getenv("CMS_API_TOKEN"),
		CMSTimeout:   parseDur(getenv("CMS_TIMEOUT", "10s")),
		CMSCacheTTL:  parseDur(getenv("CMS_CACHE_TTL", "0s")),
		SessionStore: strings.ToLower(getenv("SESSION_STORE", "memory")),
		DBUser:       os.Getenv("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       os.Getenv("DB_PORT"),
		DBName:       os.Getenv("DB_NAME"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
	}
	if cfg.CMSMediaURL == "" {
		// The media host is the API root without its /api suffix.
		cfg.CMSMediaURL = strings.TrimSuffix(strings.TrimRight(cfg.CMSBaseURL, "/"), "/api")
	}
	switch cfg.SessionStore {
	case "memory", "redis", "mysql":
	default:
		log.Fatalf("invalid SESSION_STORE: %q (want memory, redis or mysql)", cfg.SessionStore)
	}
	if cfg.SessionStore == "mysql" {
		must("DB_USER")
		must("DB_HOST")
		must("DB_PORT")
		must("DB_NAME")
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

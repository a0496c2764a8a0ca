// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the API.
type Config struct {
	Env   string
	Host  string
	Port  string
	Debug bool

	// DatabaseURL overrides the individual POSTGRES_* settings when set.
	DatabaseURL      string
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string
	PostgresDatabase string
	PostgresSchema   string
	PostgresSSLMode  string

	ImageRoot       string
	StaticDir       string
	MaxUploadBytes  int64
	JPEGQuality     int
	PageLimit       int
	PageLimitMax    int
	ShutdownTimeout time.Duration
}

// Load reads envFile (if it exists) and then the process environment.
// Values already present in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var errs []error
	cfg := Config{
		Env:              envStr("APP_ENV", "dev"),
		Host:             envStr("HOST", "0.0.0.0"),
		Port:             envStr("PORT", "8000"),
		Debug:            envBool("DEBUG", false, &errs),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     envStr("POSTGRES_USER", "postgres"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresHost:     envStr("POSTGRES_HOST", "localhost"),
		PostgresPort:     envStr("POSTGRES_PORT", "5432"),
		PostgresDatabase: envStr("POSTGRES_DATABASE", "pharmaguide"),
		PostgresSchema:   envStr("POSTGRES_SCHEMA", "pharmaguide"),
		PostgresSSLMode:  envStr("POSTGRES_SSLMODE", "disable"),
		ImageRoot:        envStr("IMAGE_ROOT", "public"),
		StaticDir:        envStr("STATIC_DIR", "static"),
		MaxUploadBytes:   int64(envInt("MAX_UPLOAD_BYTES", 10<<20, &errs)),
		JPEGQuality:      envInt("JPEG_QUALITY", 80, &errs),
		PageLimit:        envInt("PAGE_LIMIT_DEFAULT", 10, &errs),
		PageLimitMax:     envInt("PAGE_LIMIT_MAX", 100, &errs),
		ShutdownTimeout:  envDur("SHUTDOWN_TIMEOUT", 10*time.Second, &errs),
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("JPEG_QUALITY must be between 1 and 100, got %d", cfg.JPEGQuality))
	}
	if cfg.PageLimit < 1 || cfg.PageLimitMax < cfg.PageLimit {
		errs = append(errs, fmt.Errorf("PAGE_LIMIT_DEFAULT (%d) must be >= 1 and <= PAGE_LIMIT_MAX (%d)", cfg.PageLimit, cfg.PageLimitMax))
	}
	if cfg.MaxUploadBytes < 1 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Development reports whether human-friendly logging should be used.
func (c Config) Development() bool {
	return c.Debug || c.Env == "dev"
}

// DSN returns a lib/pq connection URL whose search_path points at the
// configured schema.
func (c Config) DSN() (string, error) {
	if c.DatabaseURL != "" {
		u, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return "", fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", c.PostgresSchema)
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.PostgresHost, c.PostgresPort),
		Path:   "/" + c.PostgresDatabase,
	}
	if c.PostgresPassword != "" {
		u.User = url.UserPassword(c.PostgresUser, c.PostgresPassword)
	} else {
		u.User = url.User(c.PostgresUser)
	}
	q := url.Values{}
	q.Set("sslmode", c.PostgresSSLMode)
	q.Set("search_path", c.PostgresSchema)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func envStr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool, errs *[]error) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	*errs = append(*errs, fmt.Errorf("invalid bool for %s: %q", k, v))
	return d
}

func envInt(k string, d int, errs *[]error) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid int for %s: %q", k, v))
		return d
	}
	return n
}

func envDur(k string, d time.Duration, errs *[]error) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid duration for %s: %q", k, v))
		return d
	}
	return dur
}

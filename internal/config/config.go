// Package config gathers the service settings from the environment.
// main loads .env with godotenv before calling Load.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/01moynul/flower-pricing-golang/internal/ai"
	"github.com/01moynul/flower-pricing-golang/internal/baserow"
	"github.com/01moynul/flower-pricing-golang/internal/pricing"
)

const (
	DatastoreBaserow = "baserow"
	DatastoreMySQL   = "mysql"
	DatastoreMemory  = "memory"
)

// Config is every setting the API reads at startup.
type Config struct {
	Port       string
	CORSOrigin string

	Datastore string
	Baserow   baserow.Config
	DSN       string

	JWTSecret       string
	PasscodeHash    string
	AllowedEmails   string
	DefaultMarkup   float64
	RefreshInterval time.Duration
	GeminiAPIKey    string
	GeminiModel     string
}

// Load reads the environment. Missing required values are reported together.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
		Datastore:     strings.ToLower(getEnv("DATASTORE", DatastoreBaserow)),
		DSN:           os.Getenv("DB_DSN_PRIMARY"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		PasscodeHash:  os.Getenv("ACCESS_PASSCODE_HASH"),
		AllowedEmails: os.Getenv("ALLOWED_EMAILS"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", ai.DefaultModel),
		Baserow: baserow.Config{
			APIURL:           getEnv("BASEROW_API_URL", baserow.DefaultAPIURL),
			Token:            os.Getenv("BASEROW_TOKEN"),
			FlowersTableID:   os.Getenv("BASEROW_FLOWERS_TABLE_ID"),
			SuppliersTableID: os.Getenv("BASEROW_SUPPLIERS_TABLE_ID"),
			ChargesTableID:   os.Getenv("BASEROW_CHARGES_TABLE_ID"),
		},
	}

	var errs []error

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable is not set"))
	}

	switch cfg.Datastore {
	case DatastoreBaserow, DatastoreMemory:
	case DatastoreMySQL:
		if cfg.DSN == "" {
			errs = append(errs, errors.New("DB_DSN_PRIMARY environment variable is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("DATASTORE must be baserow, mysql or memory, got %q", cfg.Datastore))
	}

	cfg.DefaultMarkup = pricing.DefaultMarkupPercent
	if raw := os.Getenv("DEFAULT_MARKUP"); raw != "" {
		markup, err := strconv.ParseFloat(raw, 64)
		if err != nil || markup < 0 || math.IsNaN(markup) || math.IsInf(markup, 0) {
			errs = append(errs, fmt.Errorf("DEFAULT_MARKUP must be a non-negative number, got %q", raw))
		} else {
			cfg.DefaultMarkup = markup
		}
	}

	if raw := os.Getenv("REFRESH_INTERVAL"); raw != "" && raw != "0" {
		interval, err := time.ParseDuration(raw)
		if err != nil || interval < 0 {
			errs = append(errs, fmt.Errorf("REFRESH_INTERVAL must be a Go duration like 5m, got %q", raw))
		} else {
			cfg.RefreshInterval = interval
		}
	}

	return cfg, errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort          = "8080"
	DefaultAPIURL        = "https://10.120.32.94/restaurant/api/v1"
	DefaultLocale        = "fi"
	DefaultSessionTTL    = 30 * time.Minute
	DefaultSweepInterval = time.Minute
)

// Config holds the server settings, read from the environment.
type Config struct {
	Port          string
	APIURL        string
	MenuLocale    string
	SessionTTL    time.Duration
	SweepInterval time.Duration
	CORSOrigins   []string
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("Could not read .env file:", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables, falling back to defaults.
func FromEnv() (Config, error) {
	c := Config{
		Port:          getenv("PORT", DefaultPort),
		APIURL:        strings.TrimRight(getenv("RESTAURANT_API_URL", DefaultAPIURL), "/"),
		MenuLocale:    getenv("MENU_LOCALE", DefaultLocale),
		SessionTTL:    DefaultSessionTTL,
		SweepInterval: DefaultSweepInterval,
		CORSOrigins:   []string{"*"},
	}

	var err error
	if c.SessionTTL, err = duration("SESSION_TTL", DefaultSessionTTL); err != nil {
		return Config{}, err
	}
	if c.SweepInterval, err = duration("SWEEP_INTERVAL", DefaultSweepInterval); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORSOrigins = append(c.CORSOrigins, o)
			}
		}
	}
	return c, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}

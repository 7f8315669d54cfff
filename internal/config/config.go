// Package config loads server settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/evcraddock/estate-office/internal/db"
)

// DefaultPort is used when PORT is unset.
const DefaultPort = 3000

// Config holds server configuration.
type Config struct {
	Port        int
	DatabaseURL string // postgres:// URL or SQLite path; wins over DBPath
	DBPath      string
	DevMode     bool
	ExpireCron  string // empty disables the contract expiry sweep
	CORSOrigin  string
}

// Load reads .env from the working directory, if present, and then the
// process environment. Variables already set in the environment are not
// overridden by .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	port := DefaultPort
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		port = p
	}

	devMode := false
	if v := os.Getenv("EO_DEV_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid EO_DEV_MODE %q", v)
		}
		devMode = b
	}

	// An explicitly empty EO_CORS_ORIGIN disables CORS headers.
	cors, ok := os.LookupEnv("EO_CORS_ORIGIN")
	if !ok {
		cors = "*"
	}

	return Config{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBPath:      os.Getenv("DB_PATH"),
		DevMode:     devMode,
		ExpireCron:  os.Getenv("EO_EXPIRE_CRON"),
		CORSOrigin:  cors,
	}, nil
}

// Target returns the store to connect to: DATABASE_URL, then DB_PATH,
// then the default SQLite path.
func (c Config) Target() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	return db.DefaultPath()
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        int
	DatabaseURL string
	// Location drives every calendar boundary on the dashboard: "today",
	// "this month" and the seven-day chart all start at midnight here.
	Location *time.Location
}

func Load() (Config, error) {
	// A missing .env is fine; environment variables alone are enough.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{Port: 8080}
	if portRaw := strings.TrimSpace(os.Getenv("PORT")); portRaw != "" {
		port, err := strconv.Atoi(portRaw)
		if err != nil || port <= 0 {
			return Config{}, fmt.Errorf("invalid PORT: %q", portRaw)
		}
		cfg.Port = port
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required (environment variable or .env)")
	}

	zone := strings.TrimSpace(os.Getenv("TIMEZONE"))
	if zone == "" {
		zone = "Asia/Jakarta"
	}
	location, err := time.LoadLocation(zone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", zone, err)
	}
	cfg.Location = location

	return cfg, nil
}

package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/klabast/wb-services/yearcal/internal/holidays"
)

const (
	DefaultPort     = 3000
	DefaultAuthFile = "auth.secret"
	FilePermissions = 0400

	// Error messages
	ErrInternalServer = "Internal server error"
	ErrUnauthorized   = "Unauthorized"
	ErrMissingCountry = "country is required (or a locale with a region, e.g. en-GB)"

	authRealm = "yearcal"
)

// Config is the server configuration. Values come from the environment and
// may be overridden by command line flags.
type Config struct {
	Port            int
	AuthEnabled     bool
	AuthFile        string
	HolidaysURL     string
	HolidaysTimeout time.Duration
	LogLevel        string
}

// LoadConfig reads PORT (or YEARCAL_PORT), AUTH_FILE, HOLIDAYS_API_URL,
// HOLIDAYS_TIMEOUT and LOG_LEVEL.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:            DefaultPort,
		HolidaysURL:     holidays.DefaultBaseURL,
		HolidaysTimeout: holidays.DefaultTimeout,
		LogLevel:        strings.TrimSpace(os.Getenv("LOG_LEVEL")),
	}

	for _, key := range []string{"YEARCAL_PORT", "PORT"} {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			continue
		}
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid %s '%s'", key, raw)
		}
		cfg.Port = port
		break
	}

	if v := strings.TrimSpace(os.Getenv("HOLIDAYS_API_URL")); v != "" {
		cfg.HolidaysURL = v
	}
	if v := strings.TrimSpace(os.Getenv("HOLIDAYS_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HOLIDAYS_TIMEOUT '%s': %w", v, err)
		}
		cfg.HolidaysTimeout = d
	}

	path, err := AuthFilePath()
	if err != nil {
		return Config{}, err
	}
	cfg.AuthFile = path
	return cfg, nil
}

// AuthFilePath returns AUTH_FILE, or auth.secret next to the binary.
func AuthFilePath() (string, error) {
	if path := os.Getenv("AUTH_FILE"); path != "" {
		return path, nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), DefaultAuthFile), nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the server configuration.
type Config struct {
	Host    string
	Port    int
	LogFile string
	Debug   bool

	// Optional ngrok tunnel for external access during development.
	NgrokEnabled   bool
	NgrokAuthToken string
	NgrokDomain    string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Host:    "localhost",
		Port:    8080,
		LogFile: "hordelink.log",
	}
}

// FromEnv returns the default configuration overridden by any environment
// variables that are set. Unparseable values fall back to the default.
func FromEnv() *Config {
	cfg := Default()

	if host := os.Getenv("HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = parseIntValue(port, cfg.Port)
	}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		cfg.LogFile = logFile
	}
	if debug := os.Getenv("DEBUG"); debug != "" {
		cfg.Debug = parseBoolValue(debug, cfg.Debug)
	}

	if enabled := os.Getenv("NGROK_ENABLED"); enabled != "" {
		cfg.NgrokEnabled = parseBoolValue(enabled, cfg.NgrokEnabled)
	}
	if token := os.Getenv("NGROK_AUTHTOKEN"); token != "" {
		cfg.NgrokAuthToken = token
	} else if token := os.Getenv("NGROK_AUTH_TOKEN"); token != "" {
		cfg.NgrokAuthToken = token
	}
	if domain := os.Getenv("NGROK_DOMAIN"); domain != "" {
		cfg.NgrokDomain = domain
	}

	return cfg
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func parseIntValue(value string, defaultValue int) int {
	if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
		return parsed
	}
	return defaultValue
}

func parseBoolValue(value string, defaultValue bool) bool {
	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed
	}
	return defaultValue
}

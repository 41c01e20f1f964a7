// Package config defines the server's runtime configuration and loads it
// from environment variables with sensible defaults. Command-line flags in
// main take precedence over the environment.
package config

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// sampleConfig is the commented configuration file written by 'rosterd init'.
const sampleConfig = `# rosterd Configuration File
#
# This file configures the rosterd directory server.
# Values can be overridden with ROSTERD_* environment variables,
# e.g. ROSTERD_LOGGING_LEVEL=DEBUG.

logging:
  # Minimum log level: DEBUG, INFO, WARN, ERROR
  level: INFO
  # Output format: text or json
  format: text
  # Where logs are written: stdout, stderr, or a file path
  output: stdout

# Maximum time to wait for graceful shutdown
shutdown_timeout: 30s

database:
  # Registry persistence backend: sqlite or postgres
  type: sqlite
  sqlite:
    # Defaults to $XDG_CONFIG_HOME/rosterd/registry.db when empty
    path: ""
  # postgres:
  #   host: localhost
  #   port: 5432
  #   database: rosterd
  #   user: rosterd
  #   password: ""
  #   ssl_mode: disable

api:
  # HTTP port for the REST API and WebSocket sync feed
  port: 8080
  jwt:
    # HMAC signing key for tokens; at least 32 characters.
    # Prefer the ROSTERD_API_SECRET environment variable over this file.
    secret: ""
    pending_token_duration: 5m
    session_token_duration: 1h

monitor:
  # Background anomaly detector for suspicious write rates
  enabled: true
  interval: 1m
  window: 2m
  threshold: 10

metrics:
  # Prometheus metrics endpoint (disabled by default)
  enabled: false
  port: 9090

avatar:
  # S3-compatible avatar storage (disabled by default)
  enabled: false
  # endpoint: http://localhost:9000
  # region: us-east-1
  # bucket: rosterd-avatars
  # force_path_style: true

telemetry:
  # OpenTelemetry tracing (disabled by default)
  enabled: false
  endpoint: localhost:4317
  insecure: true
  sample_rate: 1.0
`

// InitConfig writes a commented sample configuration file to the default
// location and returns its path.
//
// Returns an error if the file already exists, unless force is true.
func InitConfig(force bool) (string, error) {
	return initConfigAt(GetDefaultConfigPath(), force)
}

// InitConfigToPath writes the sample configuration file to a custom path.
func InitConfigToPath(path string, force bool) error {
	_, err := initConfigAt(path, force)
	return err
}

func initConfigAt(path string, force bool) (string, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	// 0600 because the file may later hold the JWT secret
	if err := os.WriteFile(path, []byte(sampleConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}

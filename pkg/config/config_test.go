package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/marmos91/rosterd/pkg/roster/store"
)

// setConfigHome points getConfigDir at a temp directory for the test.
func setConfigHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	return tmpDir
}

func TestLoadNoConfigFileUsesDefaults(t *testing.T) {
	setConfigHome(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != "INFO" {
		t.Errorf("expected default log level INFO, got %q", cfg.Logging.Level)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("expected default API port 8080, got %d", cfg.API.Port)
	}
	if cfg.Database.Type != store.DatabaseTypeSQLite {
		t.Errorf("expected default database type sqlite, got %q", cfg.Database.Type)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected default shutdown timeout 30s, got %s", cfg.ShutdownTimeout)
	}
	if cfg.Monitor.Threshold != 10 {
		t.Errorf("expected default monitor threshold 10, got %d", cfg.Monitor.Threshold)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := setConfigHome(t)

	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `
logging:
  level: debug
  format: json
api:
  port: 9999
monitor:
  threshold: 50
  window: 10m
database:
  type: sqlite
  sqlite:
    path: /tmp/test-registry.db
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("expected normalized level DEBUG, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected format json, got %q", cfg.Logging.Format)
	}
	if cfg.API.Port != 9999 {
		t.Errorf("expected API port 9999, got %d", cfg.API.Port)
	}
	if cfg.Monitor.Threshold != 50 {
		t.Errorf("expected monitor threshold 50, got %d", cfg.Monitor.Threshold)
	}
	if cfg.Monitor.Window != 10*time.Minute {
		t.Errorf("expected monitor window 10m, got %s", cfg.Monitor.Window)
	}
	// Unset values still get defaults
	if cfg.Monitor.Interval != time.Minute {
		t.Errorf("expected default monitor interval 1m, got %s", cfg.Monitor.Interval)
	}
}

func TestLoadInvalidConfigFails(t *testing.T) {
	tmpDir := setConfigHome(t)

	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `
logging:
  level: INFO
api:
  port: 70000
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("expected validation error for out-of-range port")
	}
}

func TestMustLoadMissingFileGivesInstructions(t *testing.T) {
	setConfigHome(t)

	_, err := MustLoad("")
	if err == nil {
		t.Fatal("expected error when no config file exists")
	}
	if !strings.Contains(err.Error(), "rosterd init") {
		t.Errorf("expected init instructions in error, got: %v", err)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.API.Port = 8181

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("saved config missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("saved config is not valid YAML: %v", err)
	}
	if loaded.API.Port != 8181 {
		t.Errorf("expected port 8181 after round trip, got %d", loaded.API.Port)
	}
}

func TestInitConfig(t *testing.T) {
	setConfigHome(t)

	path, err := InitConfig(false)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read generated config: %v", err)
	}

	contentStr := string(content)
	for _, section := range []string{
		"# rosterd Configuration File",
		"logging:",
		"database:",
		"api:",
		"monitor:",
	} {
		if !strings.Contains(contentStr, section) {
			t.Errorf("generated config missing section %q", section)
		}
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		t.Fatalf("generated config is not valid YAML: %v", err)
	}

	// Second init without force refuses to overwrite
	if _, err := InitConfig(false); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, err := InitConfig(true); err != nil {
		t.Errorf("expected force init to succeed, got: %v", err)
	}
}

func TestValidateInvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "INVALID"

	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid log level")
	}
}

func TestValidateTelemetryEnabledWithoutEndpoint(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Endpoint = ""

	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for telemetry without endpoint")
	}
}

func TestValidateAvatarEnabledWithoutBucket(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Avatar.Enabled = true

	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for avatar storage without bucket")
	}
}

func TestApplyDefaultsNormalizesLogLevel(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "warn"}}
	ApplyDefaults(cfg)
	if cfg.Logging.Level != "WARN" {
		t.Errorf("expected level normalized to WARN, got %q", cfg.Logging.Level)
	}
}

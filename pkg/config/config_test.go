package config

import (
	"os"
	"path/filepath"
	"testing"
)

const yamlConfig = `
credentials:
  app_key: key-1
  app_secret: secret-1
  access_token: token-1
subscriptions:
  - symbol: "700"
    exchange: SEHK
  - symbol: AAPL
    exchange: NYSE
monitor:
  enabled: true
  addr: ":19090"
recorder:
  db_path: /tmp/bars.db
log_level: debug
dry_run: true
query_interval: 10
`

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", yamlConfig)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Credentials.AppKey != "key-1" || cfg.Credentials.AccessToken != "token-1" {
		t.Fatalf("unexpected credentials: %+v", cfg.Credentials)
	}
	if len(cfg.Subscriptions) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(cfg.Subscriptions))
	}
	if cfg.Subscriptions[0].Symbol != "700" || cfg.Subscriptions[0].Exchange != "SEHK" {
		t.Fatalf("unexpected subscription: %+v", cfg.Subscriptions[0])
	}
	if !cfg.Monitor.Enabled || cfg.Monitor.Addr != ":19090" {
		t.Fatalf("unexpected monitor config: %+v", cfg.Monitor)
	}
	if cfg.Recorder.DBPath != "/tmp/bars.db" {
		t.Fatalf("unexpected recorder config: %+v", cfg.Recorder)
	}
	if cfg.LogLevel != "debug" || !cfg.DryRun || cfg.QueryInterval != 10 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{
  "credentials": {"app_key": "k", "app_secret": "s", "access_token": "t"},
  "subscriptions": [{"symbol": "700", "exchange": "SEHK"}]
}`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Credentials.AppKey != "k" || len(cfg.Subscriptions) != 1 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", "log_file: /tmp/gw.log\n")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level, got %s", cfg.LogLevel)
	}
	if cfg.Monitor.Addr != ":18080" {
		t.Fatalf("expected default monitor addr, got %s", cfg.Monitor.Addr)
	}
	if cfg.Recorder.DBPath != "data/history.db" {
		t.Fatalf("expected default db path, got %s", cfg.Recorder.DBPath)
	}
	if cfg.QueryInterval != 30 {
		t.Fatalf("expected default query interval, got %d", cfg.QueryInterval)
	}
}

func TestLoadFromFile_UnsupportedFormat(t *testing.T) {
	path := writeTempConfig(t, "config.toml", "a = 1\n")

	if _, err := LoadFromFile(path); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LogLevel != "info" || cfg.QueryInterval != 30 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DryRun {
		t.Fatalf("dry run must default to false")
	}
}

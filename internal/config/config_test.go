package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://127.0.0.1:5173" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSec != 10 {
		t.Errorf("TimeoutSec = %d", cfg.Server.TimeoutSec)
	}
	if cfg.DefaultSymbol != "005930.KS" {
		t.Errorf("DefaultSymbol = %q", cfg.DefaultSymbol)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  base_url: https://desk.example.com
  api_key: secret-key
  timeout_sec: 30
notify:
  webhook_url: https://hooks.example.com/x
journal:
  sqlite_path: /tmp/orders.db
default_symbol: 000660.KS
proxy: http://proxy.local:8080
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "https://desk.example.com" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.APIKey != "secret-key" {
		t.Errorf("APIKey = %q", cfg.Server.APIKey)
	}
	if cfg.Server.TimeoutSec != 30 {
		t.Errorf("TimeoutSec = %d", cfg.Server.TimeoutSec)
	}
	if cfg.Notify.WebhookURL != "https://hooks.example.com/x" {
		t.Errorf("WebhookURL = %q", cfg.Notify.WebhookURL)
	}
	if cfg.Journal.SQLitePath != "/tmp/orders.db" {
		t.Errorf("SQLitePath = %q", cfg.Journal.SQLitePath)
	}
	if cfg.DefaultSymbol != "000660.KS" {
		t.Errorf("DefaultSymbol = %q", cfg.DefaultSymbol)
	}
	if cfg.Proxy != "http://proxy.local:8080" {
		t.Errorf("Proxy = %q", cfg.Proxy)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  base_url: https://file.example.com
  timeout_sec: 30
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TRADEDESK_BASE_URL", "https://env.example.com")
	t.Setenv("TRADEDESK_API_KEY", "env-key")
	t.Setenv("TRADEDESK_TIMEOUT_SEC", "5")
	t.Setenv("TRADEDESK_SYMBOL", "AAPL")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "https://env.example.com" {
		t.Errorf("env override lost: BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.APIKey != "env-key" {
		t.Errorf("APIKey = %q", cfg.Server.APIKey)
	}
	if cfg.Server.TimeoutSec != 5 {
		t.Errorf("TimeoutSec = %d", cfg.Server.TimeoutSec)
	}
	if cfg.DefaultSymbol != "AAPL" {
		t.Errorf("DefaultSymbol = %q", cfg.DefaultSymbol)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Server.BaseURL = "http://x"
	cfg.Server.TimeoutSec = 10
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.Server.TimeoutSec = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected timeout error")
	}

	cfg.Server.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected base_url error")
	}
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"tasklist/internal/config"
)

func TestNew_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFile)
	data := `{"base_url": "http://localhost:8080", "token": "secret"}`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("expected base URL from file, got %q", cfg.BaseURL)
	}
	if cfg.Token != "secret" {
		t.Errorf("expected token from file, got %q", cfg.Token)
	}
}

func TestNew_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFile)
	if err := os.WriteFile(path, []byte(`{"base_url": "http://file"}`), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(config.BaseURLEnv, "http://env")
	t.Setenv(config.TokenEnv, "env-token")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	if cfg.BaseURL != "http://env" {
		t.Errorf("expected env to win, got %q", cfg.BaseURL)
	}
	if cfg.Token != "env-token" {
		t.Errorf("expected env token, got %q", cfg.Token)
	}
}

func TestNew_MissingFileIsNotAnError(t *testing.T) {
	t.Setenv(config.BaseURLEnv, "")
	t.Setenv(config.TokenEnv, "")

	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	if cfg.HasBaseURL() {
		t.Errorf("expected no base URL, got %q", cfg.BaseURL)
	}
}

func TestNew_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.New(dir); err == nil {
		t.Fatal("expected error for invalid config.json")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	cfg := &config.Config{Dir: dir, BaseURL: "http://localhost:9000", Token: "tok"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	t.Setenv(config.BaseURLEnv, "")
	t.Setenv(config.TokenEnv, "")
	loaded, err := config.New(dir)
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	if loaded.BaseURL != cfg.BaseURL || loaded.Token != cfg.Token {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

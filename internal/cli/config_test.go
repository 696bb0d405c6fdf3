package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/careatlas/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	content := `
dataset = "snapshot.csv"
data_url = "https://example.org/snapshot.csv"
output = "atlas.vl.json"

[cache]
dir = "/tmp/careatlas-cache"
ttl = "12h"
scope = "staging"

[serve]
addr = ":9090"
`
	path := filepath.Join(t.TempDir(), "careatlas.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Dataset != "snapshot.csv" {
		t.Errorf("Dataset = %q, want snapshot.csv", cfg.Dataset)
	}
	if cfg.DataURL != "https://example.org/snapshot.csv" {
		t.Errorf("DataURL = %q", cfg.DataURL)
	}
	if cfg.Output != "atlas.vl.json" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.Cache.Dir != "/tmp/careatlas-cache" {
		t.Errorf("Cache.Dir = %q", cfg.Cache.Dir)
	}
	if cfg.Cache.TTL.Duration != 12*time.Hour {
		t.Errorf("Cache.TTL = %v, want 12h", cfg.Cache.TTL.Duration)
	}
	if cfg.Cache.Scope != "staging" {
		t.Errorf("Cache.Scope = %q", cfg.Cache.Scope)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("Serve.Addr = %q, want :9090", cfg.Serve.Addr)
	}
}

func TestLoadConfigMissingDefaultIsQuiet(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") with no file: %v", err)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("default Serve.Addr = %q, want :8080", cfg.Serve.Addr)
	}
}

func TestLoadConfigExplicitMissingFails(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadConfigRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("dataset = [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadConfigRejectsBadTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ttl.toml")
	if err := os.WriteFile(path, []byte("[cache]\nttl = \"soon\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for unparseable TTL")
	}
}

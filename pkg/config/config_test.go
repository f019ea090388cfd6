package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Backend.URL != "http://localhost:8000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Cache.Backend != "file" || cfg.Data.Backend != "file" {
		t.Errorf("backends = %q/%q, want file/file", cfg.Cache.Backend, cfg.Data.Backend)
	}
	if cfg.Executor.URL != "" {
		t.Errorf("Executor.URL = %q, want empty (local runs)", cfg.Executor.URL)
	}
}

func TestLoad_OverridesLayerOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":9000"

[cache]
backend = "redis"
redis_addr = "redis.internal:6379"

[data]
backend = "mongo"
mongo_uri = "mongodb://db.internal:27017"

[executor]
url = "http://executor.internal/api/workflows/execute"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "redis.internal:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Data.Backend != "mongo" || cfg.Data.MongoURI != "mongodb://db.internal:27017" {
		t.Errorf("data = %+v", cfg.Data)
	}
	if cfg.Executor.URL == "" {
		t.Error("executor URL not loaded")
	}

	// Untouched sections keep their defaults.
	if cfg.Backend.URL != "http://localhost:8000" {
		t.Errorf("Backend.URL = %q, want default", cfg.Backend.URL)
	}
	if cfg.Data.MongoDatabase != "flowcanvas" {
		t.Errorf("MongoDatabase = %q, want default", cfg.Data.MongoDatabase)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\naddr = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

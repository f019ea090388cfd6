// Package config loads flowcanvas configuration from a TOML file.
//
// Every field has a working default so the editor and the serve command
// run with no config file at all. A file only needs the keys it wants to
// override:
//
//	[server]
//	addr = ":9000"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// Config is the root configuration for all flowcanvas commands.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Backend  BackendConfig  `toml:"backend"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Cache    CacheConfig    `toml:"cache"`
	Data     DataConfig     `toml:"data"`
	Executor ExecutorConfig `toml:"executor"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// BackendConfig points the editor's panel clients at a backend.
type BackendConfig struct {
	URL string `toml:"url"`
}

// CatalogConfig points at an optional component catalog file. When Path
// is empty the built-in catalog is used.
type CatalogConfig struct {
	Path string `toml:"path"`
}

// CacheConfig selects and configures the cache backend.
// Backend is one of "file", "redis", or "none".
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// DataConfig selects and configures the data list backend.
// Backend is one of "file" or "mongo".
type DataConfig struct {
	Backend       string `toml:"backend"`
	File          string `toml:"file"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ExecutorConfig points workflow runs at an execution endpoint. When URL
// is empty, runs are logged locally instead of submitted.
type ExecutorConfig struct {
	URL string `toml:"url"`
}

// Default returns the configuration used when no file is present.
// Paths are rooted under the user's home directory; when the home
// directory cannot be determined they fall back to relative paths.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".flowcanvas")

	return Config{
		Server:  ServerConfig{Addr: ":8000"},
		Backend: BackendConfig{URL: "http://localhost:8000"},
		Cache: CacheConfig{
			Backend: "file",
			Dir:     filepath.Join(base, "cache"),
		},
		Data: DataConfig{
			Backend:       "file",
			File:          filepath.Join(base, "lists.json"),
			MongoDatabase: "flowcanvas",
		},
	}
}

// Load reads the TOML file at path, layered over [Default]. A missing
// file is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing config %s", path)
	}
	return cfg, nil
}

// DefaultPath returns the conventional config file location,
// ~/.flowcanvas/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".flowcanvas", "config.toml")
}

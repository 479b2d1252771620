// Package config loads the optional buildplan.toml configuration file.
//
// All settings have working defaults, so the file is only needed to pin
// exclusion patterns, cache behavior, or a snapshot store per workspace:
//
//	[workspace]
//	root = "."
//	manifest = "package.json"
//	exclude = ["**/node_modules/**", "fixtures"]
//
//	[cache]
//	ttl = "24h"
//	redis = "localhost:6379"
//
//	[store]
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "buildplan"
//
// CLI flags override file values.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/buildplan/buildplan/pkg/manifest"
)

// Filename is the configuration file looked for at the workspace root.
const Filename = "buildplan.toml"

// Config is the full tool configuration.
type Config struct {
	Workspace WorkspaceConfig `toml:"workspace"`
	Cache     CacheConfig     `toml:"cache"`
	Store     StoreConfig     `toml:"store"`
}

// WorkspaceConfig controls manifest discovery.
type WorkspaceConfig struct {
	// Root is the workspace root directory.
	Root string `toml:"root"`
	// Manifest is the manifest file name to scan for.
	Manifest string `toml:"manifest"`
	// Exclude holds glob patterns for paths and directories to skip.
	Exclude []string `toml:"exclude"`
}

// CacheConfig controls graph snapshot caching.
type CacheConfig struct {
	// Disabled turns caching off entirely.
	Disabled bool `toml:"disabled"`
	// Dir overrides the default cache directory.
	Dir string `toml:"dir"`
	// TTL is how long cached graphs stay valid; zero means no expiry.
	TTL Duration `toml:"ttl"`
	// Redis is a host:port address; when set, Redis replaces the file cache.
	Redis string `toml:"redis"`
}

// StoreConfig controls snapshot persistence.
type StoreConfig struct {
	// Dir overrides the default snapshot directory for the file store.
	Dir string `toml:"dir"`
	// MongoURI enables the MongoDB store when set.
	MongoURI string `toml:"mongo_uri"`
	// MongoDatabase is the database name for the MongoDB store.
	MongoDatabase string `toml:"mongo_database"`
}

// Duration wraps time.Duration so TOML values can be written as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Workspace: WorkspaceConfig{
			Root:     ".",
			Manifest: manifest.Filename,
		},
		Store: StoreConfig{
			MongoDatabase: "buildplan",
		},
	}
}

// Load reads the configuration file at path, layered over [Default].
// A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/careatlas/pkg/errors"
)

// defaultConfigFile is the config file picked up from the working directory
// when --config is not given.
const defaultConfigFile = "careatlas.toml"

// Config holds the file-based configuration. Every field has a flag
// equivalent; flags win when both are set.
type Config struct {
	// Dataset is the default snapshot path for build/inspect/serve.
	Dataset string `toml:"dataset"`

	// Table is the table read from SQLite snapshots.
	Table string `toml:"table"`

	// DataURL is the dataset reference embedded in compiled documents.
	DataURL string `toml:"data_url"`

	// Output is the default document output path.
	Output string `toml:"output"`

	// Inline embeds the snapshot rows into the document.
	Inline bool `toml:"inline"`

	Cache CacheConfig `toml:"cache"`
	Serve ServeConfig `toml:"serve"`
}

// CacheConfig configures the compiled-document cache.
type CacheConfig struct {
	// Dir overrides the XDG cache directory.
	Dir string `toml:"dir"`

	// Redis, when set, selects the Redis backend (host:port) instead of the
	// file cache. Used by long-running preview servers.
	Redis string `toml:"redis"`

	// Scope prefixes all cache keys, isolating snapshots that share one
	// Redis instance.
	Scope string `toml:"scope"`

	// TTL overrides the default document TTL, e.g. "12h".
	TTL duration `toml:"ttl"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
}

// duration wraps time.Duration with TOML string decoding ("12h", "30m").
type duration struct {
	time.Duration
}

// UnmarshalText implements toml's text unmarshaling for durations.
func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// DefaultConfig returns the built-in defaults applied before any file is read.
func DefaultConfig() *Config {
	return &Config{
		Serve: ServeConfig{Addr: ":8080"},
	}
}

// LoadConfig reads a TOML config file. With an empty path, the default file
// is read if present and silently skipped if absent; an explicit path that
// does not exist is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse config %s", path)
	}
	return cfg, nil
}

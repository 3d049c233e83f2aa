// Package config loads mazegen settings from a TOML file.
//
// A missing file at the default location is not an error; every setting
// has a default. Command-line flags override the loaded values.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/mazegen/pkg/errors"
)

// AppName names the config, cache and data directories.
const AppName = "mazegen"

// Limits applied to numeric settings, matching the command-line flags.
const (
	MinDimension = 1
	MaxDimension = 1024
	MinSteps     = 1
	MaxSteps     = 1024
)

// Cache and store backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
	BackendMongo = "mongo"
)

// Config is the whole file.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Cache    CacheConfig    `toml:"cache"`
	Store    StoreConfig    `toml:"store"`
	Server   ServerConfig   `toml:"server"`
}

// GenerateConfig holds defaults for new mazes.
type GenerateConfig struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Steps  int     `toml:"steps"` // generator steps per animation frame
	Legacy bool    `toml:"legacy"`
	Seed   *uint64 `toml:"seed"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	Prefix    string   `toml:"prefix"`    // redis key prefix, removed by "cache clear"
	Namespace string   `toml:"namespace"` // scopes keys when deployments share a cache
	TTL       Duration `toml:"ttl"`
}

// StoreConfig selects where the server keeps mazes.
type StoreConfig struct {
	Backend    string `toml:"backend"`
	Dir        string `toml:"dir"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures "mazegen serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	cacheDir, _ := CacheDir()
	dataDir, _ := DataDir()
	return Config{
		Generate: GenerateConfig{Width: 10, Height: 10, Steps: 1},
		Cache: CacheConfig{
			Backend:   BackendFile,
			Dir:       cacheDir,
			RedisAddr: "localhost:6379",
			Prefix:    AppName + ":",
		},
		Store: StoreConfig{
			Backend:    BackendFile,
			Dir:        filepath.Join(dataDir, "mazes"),
			MongoURI:   "mongodb://localhost:27017",
			Database:   AppName,
			Collection: "mazes",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads path on top of [Default]. An empty path means [DefaultPath],
// which may be absent. An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errs.New(errs.ErrCodeFileNotFound, "config file %s not found", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errs.New(errs.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Normalize(); err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

// Normalize clamps numeric settings and checks backend names.
func (c *Config) Normalize() error {
	c.Generate.Width = Clamp(c.Generate.Width, MinDimension, MaxDimension)
	c.Generate.Height = Clamp(c.Generate.Height, MinDimension, MaxDimension)
	c.Generate.Steps = Clamp(c.Generate.Steps, MinSteps, MaxSteps)

	c.Cache.Backend = strings.ToLower(c.Cache.Backend)
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown cache backend %q (must be file, redis or none)", c.Cache.Backend)
	}

	c.Store.Backend = strings.ToLower(c.Store.Backend)
	switch c.Store.Backend {
	case BackendFile, BackendMongo:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown store backend %q (must be file or mongo)", c.Store.Backend)
	}
	return nil
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns $XDG_CONFIG_HOME/mazegen/config.toml or
// ~/.config/mazegen/config.toml.
func DefaultPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/mazegen/).
func CacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// DataDir returns the data directory using XDG standard
// (~/.local/share/mazegen/).
func DataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}

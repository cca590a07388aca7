// Package config loads the relayout configuration file.
//
// The file lives at $XDG_CONFIG_HOME/relayout/config.toml (falling back to
// ~/.config/relayout/config.toml). A missing file is not an error; every
// field has a default.
//
//	[cache]
//	backend = "redis"          # file, memory, redis, mongo or none
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	timeout = "30s"
//
//	[solve]
//	target_sdk = 34
//
// RELAYOUT_CACHE, RELAYOUT_REDIS_ADDR and RELAYOUT_MONGO_URI override the
// file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/relayout/pkg/core/relative"
	rerrors "github.com/matzehuels/relayout/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "relayout"

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Config is the whole configuration file.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Solve  SolveConfig  `toml:"solve"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`    // file backend; defaults to the XDG cache dir
	Prefix  string      `toml:"prefix"` // key scope shared by all backends
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures `relayout serve`.
type ServerConfig struct {
	Addr    string        `toml:"addr"`
	Timeout time.Duration `toml:"timeout"`
}

// SolveConfig holds solve defaults applied when a document leaves them unset.
type SolveConfig struct {
	TargetSDK int    `toml:"target_sdk"`
	Direction string `toml:"direction"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   AppName,
				Collection: "layouts",
			},
		},
		Server: ServerConfig{Addr: ":8080", Timeout: 30 * time.Second},
		Solve:  SolveConfig{TargetSDK: relative.CurrentPlatformLevel},
	}
}

// Path returns the default config file path.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the file cache directory (~/.cache/relayout/ by default).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the config file at path, layered over Default and under the
// environment overrides. An empty path means [Path].
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			cfg := Default()
			applyEnv(&cfg)
			return cfg, cfg.Validate()
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
		cfg := Default()
		applyEnv(&cfg)
		return cfg, cfg.Validate()
	case errors.Is(err, os.ErrNotExist):
		return Config{}, rerrors.Wrap(rerrors.ErrCodeFileNotFound, err, "config %s", path)
	case err != nil:
		return Config{}, rerrors.Wrap(rerrors.ErrCodeInvalidPath, err, "read config %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, rerrors.Wrap(rerrors.ErrCodeInvalidInput, err, "config %s", path)
	}
	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// Parse decodes TOML over the defaults. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RELAYOUT_CACHE"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("RELAYOUT_REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("RELAYOUT_MONGO_URI"); v != "" {
		cfg.Cache.Mongo.URI = v
	}
}

// Validate checks the values that have a closed set.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendMongo, BackendNone:
	default:
		return rerrors.New(rerrors.ErrCodeInvalidInput, "unknown cache backend %q (want file, memory, redis, mongo or none)", c.Cache.Backend)
	}
	if c.Solve.TargetSDK < 0 {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "solve.target_sdk must not be negative")
	}
	switch c.Solve.Direction {
	case "", "ltr", "rtl":
	default:
		return rerrors.New(rerrors.ErrCodeInvalidDirection, "solve.direction must be ltr or rtl, got %q", c.Solve.Direction)
	}
	if c.Server.Timeout < 0 {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "server.timeout must not be negative")
	}
	return nil
}

// Write encodes cfg as TOML to path, creating parent directories.
func Write(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

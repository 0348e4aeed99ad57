// Package config loads piechart settings.
//
// Values are resolved in three layers, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, $XDG_CONFIG_HOME/piechart/config.toml unless a path is given
//  3. PIECHART_* environment variables, e.g. PIECHART_CHART_WIDTH or
//     PIECHART_CACHE_BACKEND
//
// Example file:
//
//	[chart]
//	leader_lines = true
//	percentage   = true
//	palette      = ["#6773f1", "#32325d", "#8b6ced"]
//
//	[cache]
//	backend    = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":9090"
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/matzehuels/piechart/pkg/cache"
	"github.com/matzehuels/piechart/pkg/core/pie"
	"github.com/matzehuels/piechart/pkg/errors"
	"github.com/matzehuels/piechart/pkg/pipeline"
	"github.com/matzehuels/piechart/pkg/server"
)

const (
	appName   = "piechart"
	envPrefix = "PIECHART"
	fileName  = "config.toml"
)

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config is the complete application configuration.
type Config struct {
	Chart  ChartConfig  `toml:"chart" envconfig:"CHART"`
	Cache  CacheConfig  `toml:"cache" envconfig:"CACHE"`
	Server ServerConfig `toml:"server" envconfig:"SERVER"`
}

// ChartConfig holds the default chart options for every command.
type ChartConfig struct {
	Width       float64  `toml:"width" envconfig:"WIDTH"`
	Height      float64  `toml:"height" envconfig:"HEIGHT"`
	Margin      float64  `toml:"margin" envconfig:"MARGIN"`
	TextColor   string   `toml:"text_color" envconfig:"TEXT_COLOR"`
	Percentage  bool     `toml:"percentage" envconfig:"PERCENTAGE"`
	LeaderLines bool     `toml:"leader_lines" envconfig:"LEADER_LINES"`
	HoleRatio   float64  `toml:"hole_ratio" envconfig:"HOLE_RATIO"`
	Palette     []string `toml:"palette" envconfig:"PALETTE"`
	ColorKey    string   `toml:"color_key" envconfig:"COLOR_KEY"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend         string `toml:"backend" envconfig:"BACKEND"`
	Dir             string `toml:"dir" envconfig:"DIR"`
	KeyPrefix       string `toml:"key_prefix" envconfig:"KEY_PREFIX"`
	RedisAddr       string `toml:"redis_addr" envconfig:"REDIS_ADDR"`
	RedisPassword   string `toml:"redis_password" envconfig:"REDIS_PASSWORD"`
	RedisDB         int    `toml:"redis_db" envconfig:"REDIS_DB"`
	RedisPrefix     string `toml:"redis_prefix" envconfig:"REDIS_PREFIX"`
	MongoURI        string `toml:"mongo_uri" envconfig:"MONGO_URI"`
	MongoDatabase   string `toml:"mongo_database" envconfig:"MONGO_DATABASE"`
	MongoCollection string `toml:"mongo_collection" envconfig:"MONGO_COLLECTION"`
}

// ServerConfig configures `piechart serve`.
type ServerConfig struct {
	Addr         string        `toml:"addr" envconfig:"ADDR"`
	ReadTimeout  time.Duration `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout time.Duration `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	MaxBodyBytes int64         `toml:"max_body_bytes" envconfig:"MAX_BODY_BYTES"`
}

// Default returns the built-in configuration.
func Default() Config {
	def := pie.DefaultConfig()
	return Config{
		Chart: ChartConfig{
			Width:     def.Width,
			Height:    def.Height,
			Margin:    def.Margin,
			TextColor: def.TextColor,
			ColorKey:  string(def.ColorKey),
		},
		Cache: CacheConfig{
			Backend:         BackendFile,
			RedisAddr:       "localhost:6379",
			MongoDatabase:   appName,
			MongoCollection: cache.DefaultMongoCollection,
		},
		Server: ServerConfig{
			Addr:         server.DefaultAddr,
			ReadTimeout:  server.DefaultReadTimeout,
			WriteTimeout: server.DefaultWriteTimeout,
			MaxBodyBytes: server.DefaultMaxBodyBytes,
		},
	}
}

// Load resolves the configuration. An empty path reads the default file if
// it exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := loadFile(path, explicit, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, required bool, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "config file %s", path)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	opts := c.Chart.Options()
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendNone, BackendFile, BackendRedis, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be none, file, redis or mongo)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendMongo && c.Cache.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "mongo cache backend requires mongo_uri")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_body_bytes cannot be negative")
	}
	return nil
}

// Options returns pipeline options seeded with the chart defaults.
func (c ChartConfig) Options() pipeline.Options {
	margin := c.Margin
	return pipeline.Options{
		Width:       c.Width,
		Height:      c.Height,
		Margin:      &margin,
		TextColor:   c.TextColor,
		Percentage:  c.Percentage,
		LeaderLines: c.LeaderLines,
		HoleRatio:   c.HoleRatio,
		Palette:     c.Palette,
		ColorKey:    c.ColorKey,
	}
}

// ServerConfig converts the section to server settings.
func (s ServerConfig) ServerConfig() server.Config {
	return server.Config{
		Addr:         s.Addr,
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		MaxBodyBytes: s.MaxBodyBytes,
	}
}

// Open connects to the configured cache backend.
func (c CacheConfig) Open(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.RedisPrefix,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "redis cache at %s", c.RedisAddr)
		}
		return rc, nil
	case BackendMongo:
		mc, err := cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:        c.MongoURI,
			Database:   c.MongoDatabase,
			Collection: c.MongoCollection,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "mongo cache")
		}
		return mc, nil
	}

	dir, err := c.CacheDir()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cache directory")
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cache directory %s", dir)
	}
	return fc, nil
}

// Keyer returns the cache keyer, namespaced by KeyPrefix when set so that
// several deployments can share one backend.
func (c CacheConfig) Keyer() cache.Keyer {
	if c.KeyPrefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.KeyPrefix)
}

// CacheDir returns the file cache directory: Dir if set, otherwise
// $XDG_CACHE_HOME/piechart or ~/.cache/piechart.
func (c CacheConfig) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// DefaultPath returns $XDG_CONFIG_HOME/piechart/config.toml, falling back
// to ~/.config/piechart/config.toml.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

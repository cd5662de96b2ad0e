// Package config loads cloudweights settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. the TOML config file ([DefaultPath] or --config)
//  3. a .env file in the working directory, if present
//  4. CLOUDWEIGHTS_* environment variables
//
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/cloudweights/pkg/cloud"
	"github.com/matzehuels/cloudweights/pkg/countserver"
	cerrors "github.com/matzehuels/cloudweights/pkg/errors"
	"github.com/matzehuels/cloudweights/pkg/pipeline"
	"github.com/matzehuels/cloudweights/pkg/source"
)

const appName = "cloudweights"

// Config is the full settings tree.
type Config struct {
	Source source.Config `toml:"source"`
	Cloud  CloudConfig   `toml:"cloud"`
	Server ServerConfig  `toml:"server"`
}

// CloudConfig holds scaling and layout defaults.
type CloudConfig struct {
	TargetMax  float64 `toml:"target_max"`
	GridSize   float64 `toml:"grid_size"`
	MinSize    float64 `toml:"min_size"`
	ZeroPolicy string  `toml:"zero_policy"`
}

// ServerConfig holds count server settings.
type ServerConfig struct {
	Addr      string  `toml:"addr"`
	TopN      int     `toml:"top_n"`
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// Default returns the built-in settings: the reference catalog, a target
// maximum of 200, grid size 1, minimum size 0, and a count server on
// localhost:3005 returning the top 100 terms.
func Default() *Config {
	return &Config{
		Source: source.Config{
			Kind:    source.KindStatic,
			BaseURL: source.DefaultBaseURL,
			Timeout: 10 * time.Second,
			Redis: source.RedisConfig{
				Addr:   "localhost:6379",
				Prefix: source.DefaultRedisPrefix,
			},
			Mongo: source.MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   source.DefaultMongoDatabase,
				Collection: source.DefaultMongoCollection,
			},
		},
		Cloud: CloudConfig{
			TargetMax:  pipeline.DefaultTargetMax,
			GridSize:   pipeline.DefaultGridSize,
			MinSize:    pipeline.DefaultMinSize,
			ZeroPolicy: string(cloud.ZeroKeep),
		},
		Server: ServerConfig{
			Addr: countserver.DefaultAddr,
			TopN: countserver.DefaultTopN,
		},
	}
}

// DefaultPath returns the config file location following the XDG convention
// (~/.config/cloudweights/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load builds the settings. An empty path means [DefaultPath], which may be
// absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "load .env")
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Save writes the settings to path as TOML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Source.Validate(); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "[source]")
	}
	opts := c.PipelineOptions("")
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "[cloud]")
	}
	if c.Server.Addr == "" {
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "[server]: addr is required")
	}
	if c.Server.RateLimit < 0 || c.Server.Burst < 0 {
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "[server]: rate_limit and burst must not be negative")
	}
	return nil
}

// PipelineOptions returns invocation options for corpus using the [cloud]
// section.
func (c *Config) PipelineOptions(corpus string) pipeline.Options {
	return pipeline.Options{
		CorpusID:  corpus,
		TargetMax: c.Cloud.TargetMax,
		GridSize:  c.Cloud.GridSize,
		MinSize:   c.Cloud.MinSize,
		Zero:      cloud.ZeroPolicy(c.Cloud.ZeroPolicy),
	}
}

// ServerOptions returns count server options from the [server] and [cloud]
// sections.
func (c *Config) ServerOptions() countserver.Options {
	return countserver.Options{
		TopN:      c.Server.TopN,
		RateLimit: c.Server.RateLimit,
		Burst:     c.Server.Burst,
		Cloud:     c.PipelineOptions(""),
	}
}

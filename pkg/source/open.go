package source

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Kind selects a [Source] implementation.
type Kind string

const (
	KindStatic Kind = "static"
	KindRemote Kind = "remote"
	KindRedis  Kind = "redis"
	KindMongo  Kind = "mongo"
)

// Kinds lists the supported source kinds.
var Kinds = []Kind{KindStatic, KindRemote, KindRedis, KindMongo}

// DefaultBaseURL is the address the bundled count server listens on.
const DefaultBaseURL = "http://localhost:3005"

// Config selects and configures a source.
type Config struct {
	Kind    Kind          `toml:"kind"`
	BaseURL string        `toml:"base_url"`
	Timeout time.Duration `toml:"timeout"`
	Catalog string        `toml:"catalog"`
	Redis   RedisConfig   `toml:"redis"`
	Mongo   MongoConfig   `toml:"mongo"`
}

// Validate checks that the config names a known kind with the settings
// that kind needs.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	switch c.Kind {
	case KindStatic, "":
		return nil
	case KindRemote:
		if c.BaseURL == "" {
			return fmt.Errorf("remote source requires base_url")
		}
	case KindRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis source requires redis.addr")
		}
	case KindMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo source requires mongo.uri")
		}
	default:
		return fmt.Errorf("unknown source kind: %q (must be one of: static, remote, redis, mongo)", c.Kind)
	}
	return nil
}

// Open creates the source described by cfg. An empty kind means static.
// Callers release it with [Close].
func Open(ctx context.Context, cfg Config, logger *log.Logger) (Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	switch cfg.Kind {
	case KindRemote:
		logger.Debug("using remote source", "url", cfg.BaseURL, "timeout", cfg.Timeout)
		return NewRemote(cfg.BaseURL, NewHTTPClient(cfg.Timeout)), nil
	case KindRedis:
		logger.Debug("using redis source", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		return NewRedis(ctx, cfg.Redis)
	case KindMongo:
		logger.Debug("using mongo source", "database", cfg.Mongo.Database, "collection", cfg.Mongo.Collection)
		return NewMongo(ctx, cfg.Mongo)
	default:
		if cfg.Catalog == "" {
			logger.Debug("using reference catalog")
			return NewStatic(nil), nil
		}
		catalog, err := LoadCatalog(cfg.Catalog)
		if err != nil {
			return nil, err
		}
		logger.Debug("using catalog file", "path", cfg.Catalog, "corpora", catalog.Len())
		return NewStatic(catalog), nil
	}
}

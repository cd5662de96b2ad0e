package source

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/cloudweights/pkg/cloud"
)

// DefaultRedisPrefix namespaces corpus keys in Redis.
const DefaultRedisPrefix = "cloudweights:corpus:"

// RedisConfig holds connection settings for [Redis].
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Redis serves counts stored as one sorted set per corpus: member = term,
// score = count. Fetch returns members by descending score; members with
// equal scores come back in reverse lexicographic order, as Redis orders them.
//
// Redis deletes empty sorted sets, so a missing key and an empty corpus are
// indistinguishable; both are reported as [ErrNotFound].
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: redis ping %s: %w", ErrUnavailable, cfg.Addr, err)
	}
	return NewRedisWithClient(client, cfg.Prefix), nil
}

// NewRedisWithClient wraps an existing client. An empty prefix means
// [DefaultRedisPrefix].
func NewRedisWithClient(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

// Key returns the sorted-set key for corpus.
func (r *Redis) Key(corpus string) string { return r.prefix + corpus }

// Fetch reads the sorted set for corpus.
func (r *Redis) Fetch(ctx context.Context, corpus string) ([]cloud.RawCount, error) {
	zs, err := r.client.ZRevRangeWithScores(ctx, r.Key(corpus), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: redis: %w", ErrUnavailable, err)
	}
	if len(zs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, corpus)
	}
	return countsFromZ(zs)
}

func countsFromZ(zs []redis.Z) ([]cloud.RawCount, error) {
	counts := make([]cloud.RawCount, len(zs))
	for i, z := range zs {
		term, ok := z.Member.(string)
		if !ok {
			return nil, fmt.Errorf("%w: redis member %v is not a string", ErrUnavailable, z.Member)
		}
		if z.Score < 0 || z.Score != math.Trunc(z.Score) {
			return nil, fmt.Errorf("%w: redis score %v for %q is not a count", ErrUnavailable, z.Score, term)
		}
		counts[i] = cloud.RawCount{Term: term, Count: uint64(z.Score)}
	}
	return counts, nil
}

// Corpora lists corpora by scanning keys under the prefix.
func (r *Redis) Corpora(ctx context.Context) ([]string, error) {
	var ids []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: redis scan: %w", ErrUnavailable, err)
	}
	slices.Sort(ids)
	return ids, nil
}

// Import replaces the stored tables with the catalog's contents, one
// transaction per corpus.
func (r *Redis) Import(ctx context.Context, catalog *Catalog) error {
	for _, id := range catalog.Corpora() {
		counts, _ := catalog.Lookup(id)
		key := r.Key(id)
		_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			if len(counts) > 0 {
				pipe.ZAdd(ctx, key, zFromCounts(counts)...)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("%w: redis import %s: %w", ErrUnavailable, id, err)
		}
	}
	return nil
}

func zFromCounts(counts []cloud.RawCount) []redis.Z {
	zs := make([]redis.Z, len(counts))
	for i, c := range counts {
		zs[i] = redis.Z{Score: float64(c.Count), Member: c.Term}
	}
	return zs
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

var (
	_ Source = (*Redis)(nil)
	_ Lister = (*Redis)(nil)
)

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cloudweights/pkg/cloud"
	cerrors "github.com/matzehuels/cloudweights/pkg/errors"
	"github.com/matzehuels/cloudweights/pkg/source"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, source.KindStatic, cfg.Source.Kind)
	assert.Equal(t, "http://localhost:3005", cfg.Source.BaseURL)
	assert.Equal(t, 200.0, cfg.Cloud.TargetMax)
	assert.Equal(t, 1.0, cfg.Cloud.GridSize)
	assert.Equal(t, 0.0, cfg.Cloud.MinSize)
	assert.Equal(t, "keep", cfg.Cloud.ZeroPolicy)
	assert.Equal(t, "localhost:3005", cfg.Server.Addr)
	assert.Equal(t, 100, cfg.Server.TopN)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", appName, "config.toml"), path)

	t.Setenv("XDG_CONFIG_HOME", "")
	path, err = DefaultPath()
	require.NoError(t, err)
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", appName, "config.toml"), path)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := writeFile(t, "config.toml", `
[source]
kind = "remote"
base_url = "http://counts.example:3005"
timeout = "3s"

[source.redis]
addr = "cache:6379"

[cloud]
target_max = 120
grid_size = 4
min_size = 2
zero_policy = "drop"

[server]
addr = ":8080"
top_n = 50
rate_limit = 5
burst = 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, source.KindRemote, cfg.Source.Kind)
	assert.Equal(t, "http://counts.example:3005", cfg.Source.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "cache:6379", cfg.Source.Redis.Addr)
	assert.Equal(t, source.DefaultRedisPrefix, cfg.Source.Redis.Prefix, "unset keys keep defaults")

	opts := cfg.PipelineOptions("alice.txt")
	assert.Equal(t, "alice.txt", opts.CorpusID)
	assert.Equal(t, 120.0, opts.TargetMax)
	assert.Equal(t, 4.0, opts.GridSize)
	assert.Equal(t, 2.0, opts.MinSize)
	assert.Equal(t, cloud.ZeroDrop, opts.Zero)

	srv := cfg.ServerOptions()
	assert.Equal(t, 50, srv.TopN)
	assert.Equal(t, 5.0, srv.RateLimit)
	assert.Equal(t, 10, srv.Burst)
	assert.Equal(t, 120.0, srv.Cloud.TargetMax)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadMissingDefaultFileIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Cloud, cfg.Cloud)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[source\nkind = "},
		{"unknown key", "[cloud]\ntarget_maximum = 3\n"},
		{"unknown kind", "[source]\nkind = \"ftp\"\n"},
		{"negative target", "[cloud]\ntarget_max = -1\n"},
		{"bad zero policy", "[cloud]\nzero_policy = \"hide\"\n"},
		{"negative rate", "[server]\nrate_limit = -2\n"},
		{"empty addr", "[server]\naddr = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.toml", tt.content))
			require.Error(t, err)
			assert.True(t, cerrors.Is(err, cerrors.ErrCodeInvalidConfig), "code = %s", cerrors.GetCode(err))
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err, "explicit path must exist")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CLOUDWEIGHTS_SOURCE":      "redis",
		"CLOUDWEIGHTS_REDIS_ADDR":  "redis:6380",
		"CLOUDWEIGHTS_TIMEOUT":     "250ms",
		"CLOUDWEIGHTS_TARGET_MAX":  "64",
		"CLOUDWEIGHTS_ZERO_POLICY": "drop",
		"CLOUDWEIGHTS_TOP_N":       "7",
		"CLOUDWEIGHTS_BASE_URL":    "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, source.KindRedis, cfg.Source.Kind)
	assert.Equal(t, "redis:6380", cfg.Source.Redis.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Source.Timeout)
	assert.Equal(t, 64.0, cfg.Cloud.TargetMax)
	assert.Equal(t, "drop", cfg.Cloud.ZeroPolicy)
	assert.Equal(t, 7, cfg.Server.TopN)
	assert.Equal(t, source.DefaultBaseURL, cfg.Source.BaseURL, "empty values are ignored")
}

func TestApplyEnvMalformed(t *testing.T) {
	tests := []struct{ key, value string }{
		{"CLOUDWEIGHTS_TARGET_MAX", "huge"},
		{"CLOUDWEIGHTS_TOP_N", "1.5"},
		{"CLOUDWEIGHTS_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				if k == tt.key {
					return tt.value, true
				}
				return "", false
			}
			err := Default().ApplyEnv(lookup)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
			assert.True(t, cerrors.Is(err, cerrors.ErrCodeInvalidConfig))
		})
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CLOUDWEIGHTS_SERVER_ADDR", "0.0.0.0:9000")
	path := writeFile(t, "config.toml", "[server]\naddr = \"127.0.0.1:1\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := Default()
	cfg.Source.Kind = source.KindMongo
	cfg.Cloud.ZeroPolicy = "drop"
	cfg.Server.TopN = -1

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Source.Kind, loaded.Source.Kind)
	assert.Equal(t, cfg.Source.Mongo, loaded.Source.Mongo)
	assert.Equal(t, cfg.Cloud, loaded.Cloud)
	assert.Equal(t, cfg.Server, loaded.Server)
}

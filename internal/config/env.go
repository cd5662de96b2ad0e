package config

import (
	"strconv"
	"time"

	cerrors "github.com/matzehuels/cloudweights/pkg/errors"
	"github.com/matzehuels/cloudweights/pkg/source"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CLOUDWEIGHTS_"

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides settings from CLOUDWEIGHTS_* variables:
//
//	CLOUDWEIGHTS_SOURCE          source kind (static, remote, redis, mongo)
//	CLOUDWEIGHTS_BASE_URL        remote count service
//	CLOUDWEIGHTS_TIMEOUT         remote request timeout (e.g. 5s)
//	CLOUDWEIGHTS_CATALOG         catalog fixture file for the static source
//	CLOUDWEIGHTS_REDIS_ADDR      redis address
//	CLOUDWEIGHTS_REDIS_PASSWORD  redis password
//	CLOUDWEIGHTS_MONGO_URI       mongo connection string
//	CLOUDWEIGHTS_TARGET_MAX      weight of the most frequent term
//	CLOUDWEIGHTS_ZERO_POLICY     keep or drop
//	CLOUDWEIGHTS_SERVER_ADDR     count server listen address
//	CLOUDWEIGHTS_TOP_N           count server result cap
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	e := envReader{lookup: lookup}

	e.kind("SOURCE", &c.Source.Kind)
	e.str("BASE_URL", &c.Source.BaseURL)
	e.duration("TIMEOUT", &c.Source.Timeout)
	e.str("CATALOG", &c.Source.Catalog)
	e.str("REDIS_ADDR", &c.Source.Redis.Addr)
	e.str("REDIS_PASSWORD", &c.Source.Redis.Password)
	e.str("MONGO_URI", &c.Source.Mongo.URI)
	e.number("TARGET_MAX", &c.Cloud.TargetMax)
	e.str("ZERO_POLICY", &c.Cloud.ZeroPolicy)
	e.str("SERVER_ADDR", &c.Server.Addr)
	e.integer("TOP_N", &c.Server.TopN)

	return e.err
}

// envReader records the first malformed value and ignores the rest.
type envReader struct {
	lookup LookupFunc
	err    error
}

func (e *envReader) get(name string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	v, ok := e.lookup(EnvPrefix + name)
	return v, ok && v != ""
}

func (e *envReader) fail(name, value string, err error) {
	e.err = cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "%s%s=%q", EnvPrefix, name, value)
}

func (e *envReader) str(name string, dst *string) {
	if v, ok := e.get(name); ok {
		*dst = v
	}
}

func (e *envReader) kind(name string, dst *source.Kind) {
	if v, ok := e.get(name); ok {
		*dst = source.Kind(v)
	}
}

func (e *envReader) number(name string, dst *float64) {
	if v, ok := e.get(name); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.fail(name, v, err)
			return
		}
		*dst = f
	}
}

func (e *envReader) integer(name string, dst *int) {
	if v, ok := e.get(name); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(name, v, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) duration(name string, dst *time.Duration) {
	if v, ok := e.get(name); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(name, v, err)
			return
		}
		*dst = d
	}
}

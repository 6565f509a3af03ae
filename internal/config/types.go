// Package config provides pglens configuration: defaults, an optional YAML
// file, PGLENS_-prefixed environment variables and CLI flags, merged in that
// order of increasing precedence.
package config

import "time"

// PoolConfig holds per-connection pool settings.
type PoolConfig struct {
	MinConns       int32         `koanf:"min_conns"`
	MaxConns       int32         `koanf:"max_conns"`
	AcquireTimeout time.Duration `koanf:"acquire_timeout"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// QueryConfig holds statement execution settings.
type QueryConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text, json
}

// Config is the full pglens configuration.
type Config struct {
	Listen string      `koanf:"listen"`
	Pool   PoolConfig  `koanf:"pool"`
	Query  QueryConfig `koanf:"query"`
	Log    LogConfig   `koanf:"log"`
}

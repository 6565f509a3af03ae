package config

// Default configuration values.
const (
	DefaultListen         = ":8080"
	DefaultMinConns       = 1
	DefaultMaxConns       = 5
	DefaultAcquireTimeout = "30s"
	DefaultConnectTimeout = "10s"
	DefaultQueryTimeout   = "60s"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "pglens.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "pglens.yml"

// defaults returns the base configuration map loaded before any other source.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"listen":               DefaultListen,
		"pool.min_conns":       DefaultMinConns,
		"pool.max_conns":       DefaultMaxConns,
		"pool.acquire_timeout": DefaultAcquireTimeout,
		"pool.connect_timeout": DefaultConnectTimeout,
		"query.timeout":        DefaultQueryTimeout,
		"log.level":            DefaultLogLevel,
		"log.format":           DefaultLogFormat,
	}
}

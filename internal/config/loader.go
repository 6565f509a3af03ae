package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// findConfigFile finds the config file to use.
// Priority: explicit path > pglens.yaml > pglens.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}

// Load builds the configuration from defaults, an optional YAML file,
// PGLENS_-prefixed environment variables and explicitly-set CLI flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else if cfgFile != "" {
		return nil, fmt.Errorf("config file %s not found", cfgFile)
	}

	// 3. Environment variables: PGLENS_POOL_MAX_CONNS -> pool.max_conns.
	// Only the first underscore becomes a section separator.
	if err := k.Load(env.Provider("PGLENS_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "PGLENS_"))
		return strings.Replace(key, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// Kebab-case flag names map onto dotted config keys:
			// --pool-max-conns -> pool.max_conns, --listen -> listen.
			key := flagKey(f.Name)
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// flagKey translates a kebab-case flag name to its config key.
func flagKey(name string) string {
	switch name {
	case "pool-min-conns":
		return "pool.min_conns"
	case "pool-max-conns":
		return "pool.max_conns"
	case "pool-acquire-timeout":
		return "pool.acquire_timeout"
	case "pool-connect-timeout":
		return "pool.connect_timeout"
	case "query-timeout":
		return "query.timeout"
	case "log-level":
		return "log.level"
	case "log-format":
		return "log.format"
	default:
		return strings.ReplaceAll(name, "-", "_")
	}
}

// NewLogger builds the process logger from the log configuration.
func NewLogger(cfg LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Format) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const redacted = "***REDACTED***"

// Config is a viper instance with typed getters and redaction helpers.
type Config struct {
	*viper.Viper

	sensitiveKeys map[string]struct{}
	fileSet       bool
}

// Option is a functional option for New.
type Option func(*Config) error

// New creates a Config. Sources are layered the viper way: explicit Set
// (dotenv values), flags, environment, file, defaults.
//
//	cfg, err := config.New(
//	  config.WithDefaults(map[string]any{"environment": "production"}),
//	  config.WithDotEnv(".env", "ESB"),
//	  config.WithEnv("ESB"),
//	  config.WithPFlags(flags),
//	)
func New(opts ...Option) (*Config, error) {
	cfg := &Config{
		Viper:         viper.New(),
		sensitiveKeys: map[string]struct{}{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config: applying option: %w", err)
		}
	}
	if cfg.fileSet {
		if err := cfg.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: reading file: %w", err)
			}
		}
	}
	return cfg, nil
}

// WithDefaults sets default values.
func WithDefaults(defaults map[string]any) Option {
	return func(c *Config) error {
		for k, v := range defaults {
			c.SetDefault(k, v)
		}
		return nil
	}
}

// WithFile sets an exact config file. The extension determines its type.
func WithFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		c.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			c.SetConfigType(ext)
		}
		c.fileSet = true
		return nil
	}
}

// WithConfigNamePaths searches paths for a file named name (without extension).
// A missing file is not an error.
func WithConfigNamePaths(name string, paths ...string) Option {
	return func(c *Config) error {
		if name == "" {
			return nil
		}
		c.SetConfigName(name)
		if len(paths) == 0 {
			paths = []string{"."}
		}
		for _, p := range paths {
			c.AddConfigPath(p)
		}
		c.fileSet = true
		return nil
	}
}

// WithEnv enables environment overrides: prefix "ESB" maps ESB_AUTO_REFRESH
// to auto_refresh and ESB_LOG_LEVEL to log.level.
func WithEnv(prefix string) Option {
	return func(c *Config) error {
		if prefix != "" {
			c.SetEnvPrefix(prefix)
		}
		c.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		c.AutomaticEnv()
		return nil
	}
}

// WithPFlags binds a flag set. Nil binds pflag.CommandLine.
func WithPFlags(flags *pflag.FlagSet) Option {
	return func(c *Config) error {
		if flags == nil {
			flags = pflag.CommandLine
		}
		return c.BindPFlags(flags)
	}
}

// WithDotEnv merges KEY=VALUE pairs from a .env file. Keys are lower-cased,
// an optional prefix is stripped and underscores after it stay as they are,
// so ESB_STATIC_TOKEN becomes static_token. A missing file is ignored.
func WithDotEnv(path, prefix string) Option {
	return func(c *Config) error {
		if path == "" {
			path = ".env"
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		values, err := godotenv.Read(path)
		if err != nil {
			return err
		}
		for k, v := range values {
			key := strings.ToUpper(k)
			if prefix != "" {
				p := strings.ToUpper(prefix) + "_"
				if !strings.HasPrefix(key, p) {
					continue
				}
				key = strings.TrimPrefix(key, p)
			}
			c.Set(strings.ToLower(key), v)
		}
		return nil
	}
}

// WithSensitiveKeys registers keys redacted by MaskedSettings.
func WithSensitiveKeys(keys ...string) Option {
	return func(c *Config) error {
		for _, k := range keys {
			c.sensitiveKeys[strings.ToLower(k)] = struct{}{}
		}
		return nil
	}
}

// GetStringD returns the string at key or def when empty.
func (c *Config) GetStringD(key, def string) string {
	if val := c.GetString(key); val != "" {
		return val
	}
	return def
}

func (c *Config) GetIntD(key string, def int) int {
	if c.IsSet(key) {
		return c.GetInt(key)
	}
	return def
}

func (c *Config) GetBoolD(key string, def bool) bool {
	if c.IsSet(key) {
		return c.GetBool(key)
	}
	return def
}

// GetDurationD accepts Go durations ("30s") and plain numbers of seconds.
func (c *Config) GetDurationD(key string, def time.Duration) time.Duration {
	if !c.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(c.GetString(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs := c.GetFloat64(key); secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return def
}

// ValidateRequired ensures every key is set and non-empty.
func (c *Config) ValidateRequired(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if !c.IsSet(k) || c.GetString(k) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

// MaskedSettings returns the flattened settings with sensitive keys redacted.
func (c *Config) MaskedSettings() map[string]any {
	out := make(map[string]any)
	for _, k := range c.AllKeys() {
		if _, ok := c.sensitiveKeys[k]; ok && c.GetString(k) != "" {
			out[k] = redacted
			continue
		}
		out[k] = c.Get(k)
	}
	return out
}

// String renders MaskedSettings one key per line, sorted.
func (c *Config) String() string {
	settings := c.MaskedSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s = %v\n", k, settings[k])
	}
	return b.String()
}

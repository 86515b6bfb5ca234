// Package config reads process configuration from the environment and an
// optional file through viper.
//
// Keys are the environment variable names (RESEND_API_KEY, CONTACT_EMAIL).
// A config file may set the same keys in lower case; the environment wins.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrConfigType indicates an empty config type for in-memory configuration.
var ErrConfigType = errors.New("config type is required")

// Config is a read-only view over the loaded settings.
type Config struct {
	v *viper.Viper
}

// Option configures Load.
type Option func(*options)

type options struct {
	file     string
	defaults map[string]any
}

// WithFile reads the given file (yaml, json, toml, env) before the
// environment. An empty path is ignored.
func WithFile(pathFile string) Option {
	return func(o *options) {
		o.file = pathFile
	}
}

// WithDefaults sets values used when neither the file nor the environment
// provide the key.
func WithDefaults(defaults map[string]any) Option {
	return func(o *options) {
		for k, v := range defaults {
			o.defaults[k] = v
		}
	}
}

// Load builds a Config from defaults, the optional file and the environment.
func Load(opts ...Option) (*Config, error) {
	o := &options{defaults: map[string]any{}}
	for _, opt := range opts {
		opt(o)
	}

	v := newViper(o.defaults)

	if o.file != "" {
		v.SetConfigFile(o.file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", o.file, err)
		}
	}

	return &Config{v: v}, nil
}

// LoadBytes builds a Config from in-memory data of the given type, still
// overridden by the environment.
func LoadBytes(configType string, data []byte, opts ...Option) (*Config, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, ErrConfigType
	}

	o := &options{defaults: map[string]any{}}
	for _, opt := range opts {
		opt(o)
	}

	v := newViper(o.defaults)
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &Config{v: v}, nil
}

func newViper(defaults map[string]any) *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// String returns the value for key as string.
func (c *Config) String(key string) string {
	return strings.TrimSpace(c.v.GetString(key))
}

// Int returns the value for key as int.
func (c *Config) Int(key string) int {
	return c.v.GetInt(key)
}

// Int64 returns the value for key as int64.
func (c *Config) Int64(key string) int64 {
	return c.v.GetInt64(key)
}

// Bool returns the value for key as bool.
func (c *Config) Bool(key string) bool {
	return c.v.GetBool(key)
}

// Duration returns the value for key parsed as a duration ("10s", "1m").
func (c *Config) Duration(key string) time.Duration {
	return c.v.GetDuration(key)
}

// Strings returns the value for key split by commas, trimmed, without
// empty items. Lists from a config file are returned as is.
func (c *Config) Strings(key string) []string {
	raw := c.v.Get(key)
	var items []string
	switch val := raw.(type) {
	case nil:
		return nil
	case string:
		items = strings.Split(val, ",")
	default:
		items = c.v.GetStringSlice(key)
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

// IsSet reports whether key has a value from any source, defaults included.
func (c *Config) IsSet(key string) bool {
	return c.v.IsSet(key)
}

// File returns the config file in use, if any.
func (c *Config) File() string {
	return c.v.ConfigFileUsed()
}

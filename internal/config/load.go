package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from the given YAML file (optional) and from
// environment variables with the TODO_ prefix. Environment variables take
// precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	// Config file, when one is given
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables: TODO_SERVER_PORT, TODO_STORE_FS_DIR, ...
	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// A YAML "memory:" key with a null value unmarshals to a nil pointer,
	// so the key's presence has to be recovered from viper directly.
	if cfg.Store.Memory == nil && v.InConfig("store.memory") {
		cfg.Store.Memory = &MemoryConfig{}
	}

	// No backend configured means the in-memory store.
	if cfg.Store.Memory == nil && cfg.Store.FS == nil && cfg.Store.SQL == nil {
		cfg.Store.Memory = &MemoryConfig{}
	}

	if err := cfg.Store.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

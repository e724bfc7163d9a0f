package config

import "errors"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig selects the storage backend. Exactly one of the three
// variants may be configured; the selection happens once at startup and
// never changes for the life of the process.
type StoreConfig struct {
	Memory *MemoryConfig `mapstructure:"memory"`
	FS     *FSConfig     `mapstructure:"fs"`
	SQL    *SQLConfig    `mapstructure:"sql"`
}

// MemoryConfig selects the in-memory backend. It carries no settings.
type MemoryConfig struct{}

// FSConfig selects the file-backed backend.
type FSConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// SQLConfig selects the relational backend.
type SQLConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ErrAmbiguousStore is returned when more than one backend variant is
// configured at once.
var ErrAmbiguousStore = errors.New("more than one store backend configured")

// Backend returns the name of the configured backend variant, or an
// empty string when none is set.
func (c *StoreConfig) Backend() string {
	switch {
	case c.Memory != nil:
		return "memory"
	case c.FS != nil:
		return "fs"
	case c.SQL != nil:
		return "sqlite"
	default:
		return ""
	}
}

// Validate checks that at most one backend variant is configured.
func (c *StoreConfig) Validate() error {
	count := 0
	if c.Memory != nil {
		count++
	}
	if c.FS != nil {
		count++
	}
	if c.SQL != nil {
		count++
	}
	if count > 1 {
		return ErrAmbiguousStore
	}
	return nil
}

// Package config handles loading, parsing, and validating application
// configuration from files and environment variables, including the
// startup-time selection of the storage backend.
package config

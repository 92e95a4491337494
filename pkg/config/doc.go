// Package config handles configuration management for eventmgr.
// It layers the embedded defaults, an optional TOML or YAML file,
// EVENTMGR_* environment variables and explicit overrides.
package config

// Package config loads msgq configuration from defaults, an optional JSON
// or YAML file, and MSGQ_* environment variable overlays, in that order of
// precedence.
package config

// Package config loads, normalizes, and validates TOML configuration for the
// tubenote CLI and pipeline.
//
// Load resolves the config path (explicit flag, ~/.config/tubenote/config.toml,
// or ./tubenote.toml), decodes over repository defaults, expands home-relative
// paths, applies environment overrides (GEMINI_API_KEY), and validates the
// result. Callers always receive a fully normalized config or an error.
package config

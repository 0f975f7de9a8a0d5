// Package config loads, normalizes, and validates hdrpress configuration.
//
// Configuration lives in a TOML file (default ~/.config/hdrpress/config.toml)
// and is merged over built-in defaults. Paths supporting "~" are expanded
// during normalization so the rest of the program only ever sees absolute
// paths.
package config

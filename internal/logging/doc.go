// Package logging assembles the structured slog loggers used across
// hdrpress.
//
// It owns the console/JSON handler selection, centralizes level parsing,
// and exposes attr helpers so pipeline code tags log lines consistently
// (run IDs, file paths, subprocess details). It also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging

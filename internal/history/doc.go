// Package history persists the outcome of encode runs in SQLite so past
// invocations can be inspected with `hdrpress history`.
package history

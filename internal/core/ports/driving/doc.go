// Package driving provides interfaces exposed by the application core to
// its callers (primary/inbound ports): the CLI and the directory watcher.
package driving

// Package memory provides in-memory implementations of the storage
// ports. Used in tests and as a fallback when no vector store endpoint
// is configured.
package memory

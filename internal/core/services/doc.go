// Package services contains the retrieval pipeline orchestration:
// document ingest, question answering, document lifecycle and the
// directory watcher. Services depend only on the driven ports and are
// wired to concrete adapters at startup.
package services

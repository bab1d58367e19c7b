// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). The retrieval pipeline depends only on these
// boundaries, never on concrete stores or providers.
package driven

// Package inmemory provides a concurrency-safe [memory.Store] backed by a
// slice. History is lost when the process exits.
package inmemory

// Package cache defines the string-keyed get/put/forget capability the
// session registry and token cache are built on, plus a Redis-backed
// implementation.
//
// The capability deliberately says nothing about persistence, sharding, or
// eviction: those belong to the backing store. Backends that can perform an
// atomic read-modify-write additionally implement [Updater]; callers use it
// when available to avoid lost updates on shared values.
//
// # What this package must NOT do
//
//   - Interpret stored values. Keys map to opaque byte slices.
//   - Import sessionauth or any of its sibling packages.
package cache

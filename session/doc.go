// Package session provides the per-user session registry, the authoritative
// source of session liveness and revocation.
//
// A user's sessions are stored as a single JSON mapping from session ID to
// [Meta] under one cache key. A session is binary: present means live, absent
// means revoked or expired. There is no further state machine.
//
// # Architecture boundaries
//
// This package owns the [Registry] (cache operations and the key scheme) and
// the [Meta] model. It does NOT interpret credentials or decide validation
// outcomes; those responsibilities belong to the Engine.
//
// # What this package must NOT do
//
//   - Import sessionauth, jwt, or tokencache (no upward imports).
//   - Set a TTL on the per-user mapping unless explicitly configured.
package session

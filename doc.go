// Package sessionauth issues, validates, and revokes per-user authentication
// sessions backed by signed credentials and a server-side session registry.
//
// A credential is an HS256-signed token binding a user ID to an opaque session
// ID. The credential itself carries no expiry: validity is governed entirely
// by session liveness, which makes revocation authoritative. Validation runs
// through a two-tier cache: a decoded-token cache that short-circuits
// repeated cryptographic verification, and the session registry, which is the
// sole source of truth for revocation. Revoking all of a user's sessions
// actively evicts that user's decoded-token entries so a still-cached entry
// can never outlive its session.
//
// # Architecture boundaries
//
// sessionauth is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (AuthData, Snapshot, MetricsSnapshot). Mechanism lives in
// subpackages: cache (the key-value capability), session (the registry),
// tokencache (the decoded-token cache), and jwt (the credential codec).
//
// # What this package must NOT do
//
//   - Expose Redis clients or cache encodings in its public API.
//   - Distinguish validation failure causes to callers; every failure mode
//     of [Engine.Validate] surfaces as ErrUnauthorized.
//   - Handle passwords, MFA, rate limiting, or transport security; those
//     belong to collaborators.
//
// Engine methods are safe for concurrent use after [Builder.Build].
package sessionauth

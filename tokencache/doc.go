// Package tokencache provides the global decoded-token cache: a single
// credential-keyed mapping from previously validated credentials to cached
// user snapshots plus an absolute expiry.
//
// The cache exists to short-circuit cryptographic verification on repeat
// validation. It is NOT a revocation authority: logout-everywhere must
// actively evict a user's entries here, because a fresh entry would otherwise
// keep validating after the session registry dropped the session.
//
// Expired entries are purged lazily on the next lookup, never proactively.
//
// # What this package must NOT do
//
//   - Import sessionauth, session, or jwt (no upward imports).
//   - Decide validity beyond entry presence and expiry.
package tokencache

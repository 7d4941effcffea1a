// Package middleware exposes an HTTP adapter for credential enforcement
// built on top of sessionauth.Engine validation.
//
// [Guard] reads the Authorization header, calls Engine.Validate, and injects
// the resolved user snapshot into the request context, where handlers can
// read it back with [SnapshotFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself; all decisions are delegated to
// Engine.Validate.
//
// # What this package must NOT do
//
//   - Parse or create credentials directly (delegates to Engine).
//   - Access the backing cache (Engine handles I/O).
//   - Make authorization decisions beyond pass/reject from Engine.Validate.
package middleware

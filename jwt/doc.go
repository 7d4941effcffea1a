// Package jwt implements the credential codec: HS256-signed tokens binding a
// user ID to a session ID.
//
// Credentials carry no exp claim. Their validity is governed entirely by
// session liveness in the registry, which keeps revocation authoritative
// instead of racing a built-in expiry.
package jwt

package jwt

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Config configures a [Manager]. The signing scheme is fixed to HS256; only
// the symmetric key varies, sourced from process-wide configuration.
type Config struct {
	Key []byte
}

// Manager signs and verifies credentials. It is immutable after
// [NewManager] and safe for concurrent use.
type Manager struct {
	config Config
}

// CredentialClaims is the signed payload: the owning user ID and the opaque
// session ID the credential is bound to. No exp claim is embedded.
type CredentialClaims struct {
	UserID    string `json:"id"`
	SessionID string `json:"session"`
	jwt.RegisteredClaims
}

// NewManager validates cfg and returns a [Manager].
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Key) == 0 {
		return nil, errors.New("hs256 requires signing key")
	}
	return &Manager{config: cfg}, nil
}

// Sign produces a credential over {userID, sessionID}.
func (m *Manager) Sign(userID, sessionID string) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}
	if sessionID == "" {
		return "", errors.New("empty session id")
	}

	claims := CredentialClaims{
		UserID:    userID,
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.config.Key)
}

// Verify checks the credential's signature and returns the bound user and
// session IDs. Malformed tokens, wrong algorithms, and bad signatures all
// fail; callers are expected to collapse every failure to a single invalid
// outcome.
func (m *Manager) Verify(credential string) (string, string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	token, err := parser.ParseWithClaims(credential, &CredentialClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.config.Key, nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(*CredentialClaims)
	if !ok || !token.Valid {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	if claims.UserID == "" || claims.SessionID == "" {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	return claims.UserID, claims.SessionID, nil
}

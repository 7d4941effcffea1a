package internal

import "github.com/google/uuid"

// NewSessionID returns a fresh collision-resistant session identifier.
// Collisions are treated as negligible; no registry-side uniqueness check is
// performed.
func NewSessionID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

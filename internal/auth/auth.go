// Package auth is the identity collaborator: it resolves an opaque bearer
// token to a user id. Registration, sessions, and password handling live
// outside this service.
package auth

import "errors"

// ErrUnauthenticated means the token is missing or unknown.
var ErrUnauthenticated = errors.New("unauthenticated")

// Verifier resolves a bearer token to an owner id.
type Verifier interface {
	Verify(token string) (string, error)
}

type staticVerifier struct {
	tokens map[string]string
}

// NewStatic creates a Verifier over a fixed token-to-user map.
func NewStatic(tokens map[string]string) Verifier {
	return &staticVerifier{tokens: tokens}
}

func (v *staticVerifier) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}
	userID, ok := v.tokens[token]
	if !ok {
		return "", ErrUnauthenticated
	}
	return userID, nil
}

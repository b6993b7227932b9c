package storage

import (
	"context"
	"time"
)

// AuthStorage defines interface for storing the remote credentials on client.
// This is the lowest storage layer - it works with raw data (already encrypted token)
// and doesn't perform any encryption/decryption itself.
type AuthStorage interface {
	// SaveAuth stores credentials as-is (token should already be encrypted)
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored credentials as-is (token will be encrypted)
	// Returns ErrAuthNotFound if nothing is stored
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored credentials (logout)
	DeleteAuth(ctx context.Context) error
}

// AuthData represents the stored GitHub credentials.
// IMPORTANT: Token is plaintext in memory (business logic) and
// encrypted base64 ciphertext in storage (BoltDB).
// The encryption/decryption happens in the auth.Vault layer.
type AuthData struct {
	SavedAt  time.Time `json:"saved_at"`
	Username string    `json:"username"`
	Token    string    `json:"token"`
	Salt     string    `json:"salt"`
}

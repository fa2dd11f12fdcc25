package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"auth-session-svc/src/internal/models"
)

// Store owns all session records, keyed by an opaque token. Handlers never
// keep a record across requests; every request re-resolves it by token.
//
// Get returns (nil, nil) for a token with no live session — absence is a
// normal outcome, not an error. Expired records are treated as absent and
// evicted lazily on access.
type Store interface {
	Create(ctx context.Context, username string) (*models.SessionRecord, error)
	Get(ctx context.Context, token string) (*models.SessionRecord, error)
	SetTheme(ctx context.Context, token, theme string) (*models.SessionRecord, error)
	Destroy(ctx context.Context, token string) error
}

const tokenBytes = 32 // 256 bits

// GenerateToken returns a cryptographically unpredictable session token.
// The token is the sole proof of authentication, so it must not be guessable.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", models.ErrTokenGeneration
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

package credentials

import "context"

// Verifier checks a username/password pair. Implementations must not reveal
// whether the username or the password was wrong — callers only get a
// yes/no answer plus infrastructure errors.
type Verifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

package credentials

import (
	"context"
	"crypto/subtle"
)

// StaticVerifier accepts exactly one configured username/password pair.
// It is the demo default; production deployments swap in a real backing
// store behind the same Verifier interface.
type StaticVerifier struct {
	username string
	password string
}

func NewStaticVerifier(username, password string) *StaticVerifier {
	return &StaticVerifier{
		username: username,
		password: password,
	}
}

func (v *StaticVerifier) Verify(_ context.Context, username, password string) (bool, error) {
	userMatch := subtle.ConstantTimeCompare([]byte(v.username), []byte(username)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(v.password), []byte(password)) == 1
	return userMatch && passMatch, nil
}
